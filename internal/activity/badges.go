package activity

import (
	"slices"
	"time"
)

type badgeRule struct {
	id, name, description, icon string
	earned                      func(State) bool
}

var badgeRules = []badgeRule{
	{"first_resume", "First Steps", "Analyzed your first resume", "🎯",
		func(s State) bool { return s.Stats.ResumesAnalyzed >= 1 }},
	{"five_resumes", "Resume Pro", "Analyzed 5 resumes", "📝",
		func(s State) bool { return s.Stats.ResumesAnalyzed >= 5 }},
	{"high_scorer", "High Scorer", "Achieved 90+ ATS score", "⭐",
		func(s State) bool { return s.Stats.ATSScoreCount > 0 && s.AverageATSScore() >= 90 }},
	{"perfect_score", "Perfectionist", "Achieved 100% ATS score", "🏆",
		func(s State) bool {
			return slices.ContainsFunc(s.Resumes, func(r ResumeRecord) bool { return r.ATSScore == 100 })
		}},
	{"dedicated", "Dedicated", "Completed 10 analyses", "💪",
		func(s State) bool { return s.Stats.AnalysesCompleted >= 10 }},
	{"career_planner", "Career Planner", "Generated your first roadmap", "🗺️",
		func(s State) bool { return s.hasEvent(RoadmapGenerated) }},
	{"skill_seeker", "Skill Seeker", "Analyzed skill gaps", "🎓",
		func(s State) bool { return s.hasEvent(SkillGapAnalyzed) }},
}

// newBadges lists rules s satisfies that have not been awarded yet.
func newBadges(s State, at time.Time) []Badge {
	var out []Badge
	for _, r := range badgeRules {
		if s.hasBadge(r.id) || !r.earned(s) {
			continue
		}
		out = append(out, Badge{ID: r.id, Name: r.name, Description: r.description, Icon: r.icon, EarnedAt: at})
	}
	return out
}
