package main

import "github.com/careerlens/careerlens/app/careerlens-cli/cmd"

func main() {
	cmd.Execute()
}
