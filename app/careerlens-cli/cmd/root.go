// Package cmd implements the careerlens command-line client.
package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/careerlens/careerlens/internal/activity"
	"github.com/careerlens/careerlens/internal/client"
	"github.com/careerlens/careerlens/internal/models"
)

var errNotLoggedIn = errors.New("not logged in; run `careerlens login` first")

// cli holds what every command shares once flags are parsed.
type cli struct {
	v       *viper.Viper
	out     io.Writer
	errOut  io.Writer
	in      *bufio.Reader
	api     *client.Client
	tracker *activity.Tracker
}

// NewRootCmd builds the command tree. Flags fall back to CAREERLENS_*
// environment variables.
func NewRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:   "careerlens",
		Short: "Analyze resumes and plan your career from the terminal",
		Long: `careerlens talks to a CareerLens server: it uploads resumes, runs HR and ATS
reviews, skill-gap analyses and career roadmaps, and keeps your progress,
history and badges in a local activity file.

Examples:
  careerlens signup --username asha --name "Asha Rao" --email asha@example.com
  careerlens login --username asha
  careerlens analyze resume.pdf --job-file jd.txt --mode ats
  careerlens stats`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("server", "http://localhost:5000", "CareerLens server URL (or CAREERLENS_SERVER)")
	pf.String("state", "", "activity file (default: <user config dir>/careerlens/activity.json)")
	pf.Bool("json", false, "print JSON output")
	pf.Duration("timeout", client.DefaultTimeout, "request timeout")
	for _, name := range []string{"server", "state", "json", "timeout"} {
		_ = c.v.BindPFlag(name, pf.Lookup(name))
	}
	c.v.SetEnvPrefix("careerlens")
	c.v.AutomaticEnv()

	root.AddCommand(
		c.signupCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.profileCmd(),
		c.analyzeCmd(),
		c.skillGapCmd(),
		c.roadmapCmd(),
		c.statsCmd(),
		c.deleteAccountCmd(),
	)
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (c *cli) setup(cmd *cobra.Command) error {
	c.out = cmd.OutOrStdout()
	c.errOut = cmd.ErrOrStderr()
	c.in = bufio.NewReader(cmd.InOrStdin())
	c.api = client.New(c.v.GetString("server"), client.WithTimeout(c.v.GetDuration("timeout")))

	path := c.v.GetString("state")
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("locate config dir: %w", err)
		}
		path = filepath.Join(dir, "careerlens", "activity.json")
	}
	c.tracker = activity.NewTracker(activity.NewFileStorage(path))
	return nil
}

func (c *cli) jsonOut() bool { return c.v.GetBool("json") }

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *cli) printBadges(badges []activity.Badge) {
	for _, b := range badges {
		c.printf("%s New badge: %s - %s\n", b.Icon, b.Name, b.Description)
	}
}

func (c *cli) currentUser() (*models.PublicUser, error) {
	u, err := c.tracker.CurrentUser()
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errNotLoggedIn
	}
	return u, nil
}

// secret returns flagValue or, when empty, one line read from stdin.
func (c *cli) secret(flagValue, prompt string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(c.errOut, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(prompt), ": "), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
