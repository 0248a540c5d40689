package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/careerlens/careerlens/internal/activity"
)

const (
	recentActivity = 10
	recentResumes  = 5
)

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress, badges and recommended next steps",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.tracker.Load()
			if err != nil {
				return err
			}

			// Completion needs the server; stats still work offline.
			completion := 0
			if u, err := c.tracker.CurrentUser(); err == nil && u != nil {
				if p, err := c.api.GetProfile(cmd.Context(), u.Username); err == nil {
					completion = activity.ProfileCompletion(p)
				} else {
					fmt.Fprintf(c.errOut, "warning: profile unavailable: %v\n", err)
				}
			}
			recs := activity.Recommendations(s, completion)

			if c.jsonOut() {
				return c.printJSON(map[string]any{
					"stats":             s.Stats,
					"averageATSScore":   s.AverageATSScore(),
					"profileCompletion": completion,
					"history":           s.History,
					"resumes":           s.Resumes,
					"skillProgress":     s.SkillProgress,
					"badges":            s.Badges,
					"recommendations":   recs,
				})
			}
			printStats(c, s, completion, recs)
			return nil
		},
	}
}

func printStats(c *cli, s activity.State, completion int, recs []activity.Recommendation) {
	c.printf("Resumes analyzed:   %d\n", s.Stats.ResumesAnalyzed)
	c.printf("Analyses completed: %d\n", s.Stats.AnalysesCompleted)
	c.printf("Average ATS score:  %.0f%%\n", s.AverageATSScore())
	c.printf("Profile completion: %d%%\n", completion)

	if len(s.Badges) > 0 {
		c.printf("\nBadges (%d)\n", len(s.Badges))
		for _, b := range s.Badges {
			c.printf("  %s %s - %s\n", b.Icon, b.Name, b.Description)
		}
	}
	if len(s.Resumes) > 0 {
		c.printf("\nRecent resumes\n")
		for _, r := range s.Resumes[:min(len(s.Resumes), recentResumes)] {
			c.printf("  %-24s %3d%%  %s\n", r.Name, r.ATSScore, r.Timestamp)
		}
	}
	if len(s.SkillProgress) > 0 {
		c.printf("\nSkills\n")
		for _, sp := range s.SkillProgress {
			c.printf("  %-20s %3d%%  %s\n", sp.Name, sp.Progress, sp.Category)
		}
	}
	if len(s.History) > 0 {
		c.printf("\nRecent activity\n")
		for _, e := range s.History[:min(len(s.History), recentActivity)] {
			c.printf("  %s  %s\n", e.Timestamp, e.Description)
		}
	}
	if len(recs) > 0 {
		c.printf("\nRecommended next steps\n")
		for _, r := range recs {
			c.printf("  %s %s: %s\n", r.Icon, r.Title, r.Description)
		}
	}
}
