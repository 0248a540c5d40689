package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/careerlens/careerlens/internal/activity"
	"github.com/careerlens/careerlens/internal/client"
	"github.com/careerlens/careerlens/internal/models"
)

func (c *cli) profileCmd() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show a profile and its completion",
		Long: `Show the logged-in user's profile, or any user's with --username.

Examples:
  careerlens profile
  careerlens profile update --bio "Backend engineer" --image me.png`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" {
				u, err := c.currentUser()
				if err != nil {
					return err
				}
				username = u.Username
			}

			p, err := c.api.GetProfile(cmd.Context(), username)
			if err != nil {
				return err
			}
			completion := activity.ProfileCompletion(p)

			if c.jsonOut() {
				return c.printJSON(map[string]any{"profile": p, "completion": completion})
			}
			printProfile(c, p, completion)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "user to show (default: logged-in user)")
	cmd.AddCommand(c.profileUpdateCmd())
	return cmd
}

var profileFields = []struct {
	flag  string
	usage string
	field func(*models.ProfileUpdate) **string
}{
	{"phone", "phone number", func(u *models.ProfileUpdate) **string { return &u.Phone }},
	{"bio", "short bio", func(u *models.ProfileUpdate) **string { return &u.Bio }},
	{"target-role", "target role", func(u *models.ProfileUpdate) **string { return &u.TargetRole }},
	{"experience", "experience summary", func(u *models.ProfileUpdate) **string { return &u.Experience }},
	{"location", "location", func(u *models.ProfileUpdate) **string { return &u.Location }},
	{"linkedin", "LinkedIn profile URL", func(u *models.ProfileUpdate) **string { return &u.LinkedIn }},
	{"github", "GitHub profile URL", func(u *models.ProfileUpdate) **string { return &u.GitHub }},
}

func (c *cli) profileUpdateCmd() *cobra.Command {
	var imagePath, bannerPath string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields and images",
		Long: `Update the logged-in user's profile. Only the flags you pass are changed;
pass an empty value to clear a field.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := c.currentUser()
			if err != nil {
				return err
			}

			var update models.ProfileUpdate
			for _, pf := range profileFields {
				if !cmd.Flags().Changed(pf.flag) {
					continue
				}
				v, _ := cmd.Flags().GetString(pf.flag)
				*pf.field(&update) = &v
			}

			var images []client.Image
			for _, img := range []struct {
				path   string
				banner bool
			}{{imagePath, false}, {bannerPath, true}} {
				if img.path == "" {
					continue
				}
				f, err := os.Open(img.path)
				if err != nil {
					return fmt.Errorf("open image: %w", err)
				}
				defer f.Close()
				images = append(images, client.Image{Banner: img.banner, Filename: filepath.Base(img.path), Body: f})
			}

			msg, err := c.api.UpdateProfile(cmd.Context(), u.Username, update, images...)
			if err != nil {
				return err
			}
			if c.jsonOut() {
				return c.printJSON(map[string]any{"ok": true, "message": msg})
			}
			c.printf("✓ %s\n", msg)
			return nil
		},
	}
	for _, pf := range profileFields {
		cmd.Flags().String(pf.flag, "", pf.usage)
	}
	cmd.Flags().StringVar(&imagePath, "image", "", "profile image file (max 5MB)")
	cmd.Flags().StringVar(&bannerPath, "banner", "", "banner image file (max 5MB)")
	return cmd
}

func printProfile(c *cli, p *models.ProfileView, completion int) {
	c.printf("%s (@%s)\n", p.Name, p.Username)
	rows := [][2]string{
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"Location", p.Location},
		{"Target role", p.TargetRole},
		{"Experience", p.Experience},
		{"Bio", p.Bio},
		{"LinkedIn", p.LinkedIn},
		{"GitHub", p.GitHub},
		{"Image", p.ProfileImage},
		{"Banner", p.BannerImage},
	}
	for _, r := range rows {
		if r[1] != "" {
			c.printf("  %-12s %s\n", r[0]+":", r[1])
		}
	}
	c.printf("\nProfile completion: %d%%\n", completion)
}
