package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/careerlens/careerlens/internal/activity"
	"github.com/careerlens/careerlens/internal/models"
)

// extract uploads the resume at path and returns its text.
func (c *cli) extract(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open resume: %w", err)
	}
	defer f.Close()

	res, err := c.api.ExtractResume(ctx, filepath.Base(path), f)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (c *cli) analyzeCmd() *cobra.Command {
	var job, jobFile, mode string
	cmd := &cobra.Command{
		Use:   "analyze <resume.pdf|resume.docx>",
		Short: "Review a resume against a job description",
		Long: `Extract a resume and review it against a job description, either as an
HR specialist (--mode hr) or as an ATS scorecard (--mode ats). ATS scores
are added to your local resume history.

Examples:
  careerlens analyze resume.pdf --job-file jd.txt
  careerlens analyze resume.docx --job "Go developer, Kubernetes" --mode hr`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reviewMode := models.ReviewMode(strings.ToLower(mode))
			if reviewMode != models.ModeHR && reviewMode != models.ModeATS {
				return fmt.Errorf("unknown mode %q (want hr or ats)", mode)
			}
			if jobFile != "" {
				b, err := os.ReadFile(jobFile)
				if err != nil {
					return fmt.Errorf("read job description: %w", err)
				}
				job = string(b)
			}
			if strings.TrimSpace(job) == "" {
				return errors.New("a job description is required (--job or --job-file)")
			}

			text, err := c.extract(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := c.api.Review(cmd.Context(), models.ReviewRequest{
				JobDescription: job,
				ResumeText:     text,
				Mode:           reviewMode,
			})
			if err != nil {
				return err
			}

			var score *int
			if reviewMode == models.ModeATS {
				if s, ok := activity.ParseATSScore(out); ok {
					score = &s
				}
			}
			badges, err := c.tracker.Record(activity.ResumeAnalysis(score, filepath.Base(args[0])))
			if err != nil {
				return err
			}

			if c.jsonOut() {
				return c.printJSON(map[string]any{"output": out, "atsScore": score, "newBadges": badges})
			}
			c.printf("%s\n", out)
			if score != nil {
				c.printf("\nATS score recorded: %d%%\n", *score)
			}
			c.printBadges(badges)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&job, "job", "", "job description text")
	f.StringVar(&jobFile, "job-file", "", "file holding the job description")
	f.StringVar(&mode, "mode", string(models.ModeATS), "review mode: hr or ats")
	return cmd
}

func (c *cli) skillGapCmd() *cobra.Command {
	var role, level string
	cmd := &cobra.Command{
		Use:   "skill-gap <resume.pdf|resume.docx>",
		Short: "Find missing skills for a target role with salary impact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := c.extract(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			report, err := c.api.SkillGap(cmd.Context(), models.SkillGapRequest{
				ResumeText:      text,
				JobRole:         role,
				ExperienceLevel: level,
			})
			if err != nil {
				return err
			}
			if report == nil {
				return errors.New("server returned no analysis")
			}

			badges, err := c.tracker.Record(activity.SkillGapAnalysis(role, skillUpdates(report.SkillsAnalysis)...))
			if err != nil {
				return err
			}

			if c.jsonOut() {
				return c.printJSON(map[string]any{"analysis": report, "newBadges": badges})
			}
			printSkillGap(c, report)
			c.printBadges(badges)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&role, "role", "", "target job role")
	f.StringVar(&level, "level", "", "experience level (optional)")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

// skillUpdates turns the analysis buckets into tracked skill progress.
func skillUpdates(a models.SkillsAnalysis) []activity.SkillUpdate {
	var out []activity.SkillUpdate
	add := func(names []string, progress int, category string) {
		for _, n := range names {
			if n = strings.TrimSpace(n); n != "" {
				out = append(out, activity.SkillUpdate{Name: n, Progress: progress, Category: category})
			}
		}
	}
	add(a.MatchingSkills, 100, "Matching")
	add(a.PartialSkills, 50, "Partial")
	add(a.MissingSkills, 0, "Missing")
	return out
}

func printSkillGap(c *cli, r *models.SkillGapReport) {
	c.printf("Current salary:   %s\n", r.CurrentProfile.EstimatedCurrentSalary)
	c.printf("Profile strength: %s\n\n", r.CurrentProfile.OverallProfileStrength)
	c.printf("Matching: %s\n", strings.Join(r.SkillsAnalysis.MatchingSkills, ", "))
	c.printf("Partial:  %s\n", strings.Join(r.SkillsAnalysis.PartialSkills, ", "))
	c.printf("Missing:  %s\n\n", strings.Join(r.SkillsAnalysis.MissingSkills, ", "))
	for _, d := range r.SkillGapDetails {
		c.printf("• %s (+%s%%)\n  %s\n  %s\n", d.Skill, d.EstimatedSalaryIncreasePercent, d.Importance, d.HiringImpact)
	}
	c.printf("\nProjected salary: %s (+%s%%)\n", r.SalaryProjection.ProjectedSalaryRange, r.SalaryProjection.EstimatedTotalHikePercent)
	c.printf("%s\n", r.Disclaimer)
}

func (c *cli) roadmapCmd() *cobra.Command {
	var req models.RoadmapRequest
	var frequency string
	cmd := &cobra.Command{
		Use:   "roadmap",
		Short: "Generate a phased career roadmap",
		Long: `Generate a career roadmap for a target role, split into weekly or monthly
phases.

Example:
  careerlens roadmap --role "Data Engineer" --interest "streaming" --duration 6 --frequency monthly`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Frequency = models.UpdateFrequency(strings.ToLower(frequency))
			roadmap, err := c.api.CareerRoadmap(cmd.Context(), req)
			if err != nil {
				return err
			}
			if roadmap == nil {
				return errors.New("server returned no roadmap")
			}

			badges, err := c.tracker.Record(activity.RoadmapGeneration(req.JobRole))
			if err != nil {
				return err
			}

			if c.jsonOut() {
				return c.printJSON(map[string]any{"roadmap": roadmap, "newBadges": badges})
			}
			printRoadmap(c, roadmap)
			c.printBadges(badges)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.JobRole, "role", "", "target job role")
	f.StringVar(&req.InterestArea, "interest", "", "area of interest")
	f.StringVar(&req.ExperienceLevel, "level", "Beginner", "experience level")
	f.IntVar(&req.DurationMonths, "duration", 6, "roadmap length in months")
	f.StringVar(&frequency, "frequency", string(models.FrequencyMonthly), "phase granularity: weekly or monthly")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func printRoadmap(c *cli, r *models.CareerRoadmap) {
	c.printf("%s\n%s · %s · %s\n\n", r.RoadmapTitle, r.RoadmapTheme, r.Duration, r.Frequency)
	for _, p := range r.Phases {
		c.printf("▸ %s\n", p.Phase)
		c.printf("  Learn:   %s\n", strings.Join(p.SkillsToLearn, ", "))
		c.printf("  Build:   %s\n", strings.Join(p.ProjectsToBuild, "; "))
		c.printf("  Outcome: %s\n", p.Outcome)
		c.printf("  Salary:  %s\n", p.SalaryMilestone)
	}
	fo := r.FinalOutcome
	c.printf("\nReadiness: %s (%s)\nFinal salary: %s\nNext: %s\n", fo.CareerReadiness, fo.ConfidenceLevel, fo.EstimatedFinalSalaryRange, fo.NextSteps)
	c.printf("%s\n", r.Disclaimer)
}
