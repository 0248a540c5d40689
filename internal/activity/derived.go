package activity

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/careerlens/careerlens/internal/models"
)

const maxRecommendations = 3

var (
	atsMarkerPattern  = regexp.MustCompile(`(?i)(?:Score|ATS)[:\s]+(\d+)`)
	atsPercentPattern = regexp.MustCompile(`(\d+)%`)
)

// ParseATSScore reads the score from ATS review text. "Score: NN" and
// "ATS: NN" markers win over bare "NN%" values; within each kind the first
// value in 0-100 is taken.
func ParseATSScore(text string) (int, bool) {
	for _, re := range []*regexp.Regexp{atsMarkerPattern, atsPercentPattern} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			n, err := strconv.Atoi(m[1])
			if err == nil && n >= 0 && n <= 100 {
				return n, true
			}
		}
	}
	return 0, false
}

// ProfileCompletion is the rounded share of the nine profile fields that are
// filled in.
func ProfileCompletion(p *models.ProfileView) int {
	if p == nil {
		return 0
	}
	fields := []string{
		p.Name, p.Email, p.Phone, p.Bio, p.TargetRole,
		p.Location, p.LinkedIn, p.GitHub, p.ProfileImage,
	}
	filled := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			filled++
		}
	}
	return int(math.Round(float64(filled) / float64(len(fields)) * 100))
}

type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Icon        string `json:"icon"`
	Link        string `json:"link"`
}

// Recommendations suggests up to three next steps.
func Recommendations(s State, profileCompletion int) []Recommendation {
	var out []Recommendation

	switch {
	case s.Stats.ResumesAnalyzed == 0:
		out = append(out, Recommendation{
			Title:       "Upload Your First Resume",
			Description: "Get started by analyzing your resume for ATS compatibility",
			Action:      "Analyze Resume",
			Icon:        "📄",
			Link:        "/dashboard",
		})
	case s.AverageATSScore() < 70:
		out = append(out, Recommendation{
			Title:       "Improve Your ATS Score",
			Description: "Your average score is below 70%. Review our optimization tips",
			Action:      "View Tips",
			Icon:        "📈",
			Link:        "/dashboard",
		})
	}
	if !s.hasEvent(RoadmapGenerated) {
		out = append(out, Recommendation{
			Title:       "Generate Your Career Roadmap",
			Description: "Get a personalized plan to reach your career goals",
			Action:      "Create Roadmap",
			Icon:        "🗺️",
			Link:        "/roadmap",
		})
	}
	if !s.hasEvent(SkillGapAnalyzed) {
		out = append(out, Recommendation{
			Title:       "Analyze Your Skill Gaps",
			Description: "Identify missing skills for your target role",
			Action:      "Analyze Skills",
			Icon:        "🎯",
			Link:        "/skill-gap",
		})
	}
	if profileCompletion < 80 {
		out = append(out, Recommendation{
			Title:       "Complete Your Profile",
			Description: "Add more information to make your profile stand out",
			Action:      "Edit Profile",
			Icon:        "✨",
			Link:        "#",
		})
	}

	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}
	return out
}
