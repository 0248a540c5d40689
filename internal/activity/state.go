// Package activity keeps a user's gamified progress: analysis stats, history,
// skill progress and badges. State changes are pure functions; persistence
// goes through a Storage port.
package activity

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

type EventType string

const (
	ResumeAnalyzed   EventType = "resume_analyzed"
	RoadmapGenerated EventType = "roadmap_generated"
	SkillGapAnalyzed EventType = "skill_gap_analyzed"
)

// TimestampLayout renders display timestamps, ex: "Oct 15, 2026, 03:04 PM".
const TimestampLayout = "Jan 2, 2006, 03:04 PM"

const defaultSkillCategory = "Other"

var (
	ErrUnknownEvent = errors.New("unknown activity event")
	ErrScoreRange   = errors.New("ATS score must be between 0 and 100")
)

type Stats struct {
	ResumesAnalyzed   int `json:"resumesAnalyzed"`
	AnalysesCompleted int `json:"analysesCompleted"`
	TotalATSScore     int `json:"totalATSScore"`
	ATSScoreCount     int `json:"atsScoreCount"`
}

type Entry struct {
	Type        EventType `json:"type"`
	Description string    `json:"description"`
	Timestamp   string    `json:"timestamp"`
}

type ResumeRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ATSScore  int       `json:"atsScore"`
	Timestamp string    `json:"timestamp"`
	Date      time.Time `json:"date"`
}

type SkillProgress struct {
	Name        string `json:"name"`
	Progress    int    `json:"progress"`
	Category    string `json:"category"`
	LastUpdated string `json:"lastUpdated"`
}

type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earnedAt"`
}

// State is everything tracked for one user. Histories are newest first.
type State struct {
	Stats         Stats
	History       []Entry
	Resumes       []ResumeRecord
	SkillProgress []SkillProgress
	Badges        []Badge
}

// SkillUpdate reports a skill's progress from a skill-gap run.
type SkillUpdate struct {
	Name     string
	Progress int
	Category string
}

type Event struct {
	Type        EventType
	Description string
	// ATSScore is set for scored resume analyses.
	ATSScore   *int
	ResumeName string
	Skills     []SkillUpdate
}

func ResumeAnalysis(score *int, resumeName string) Event {
	desc := "Resume analyzed"
	if score != nil {
		desc = fmt.Sprintf("Resume analyzed with ATS score of %d%%", *score)
	}
	return Event{Type: ResumeAnalyzed, Description: desc, ATSScore: score, ResumeName: resumeName}
}

func RoadmapGeneration(role string) Event {
	return Event{Type: RoadmapGenerated, Description: "Generated career roadmap for " + role}
}

func SkillGapAnalysis(role string, skills ...SkillUpdate) Event {
	return Event{Type: SkillGapAnalyzed, Description: "Analyzed skill gaps for " + role, Skills: skills}
}

// Apply returns the state after e, plus the badges e earned. s is not
// modified.
func Apply(s State, e Event, now time.Time) (State, []Badge, error) {
	next := s.clone()
	stamp := now.Format(TimestampLayout)

	switch e.Type {
	case ResumeAnalyzed:
		next.Stats.ResumesAnalyzed++
		next.Stats.AnalysesCompleted++
		if e.ATSScore != nil {
			score := *e.ATSScore
			if score < 0 || score > 100 {
				return s, nil, fmt.Errorf("%w: %d", ErrScoreRange, score)
			}
			next.Stats.TotalATSScore += score
			next.Stats.ATSScoreCount++

			name := e.ResumeName
			if name == "" {
				name = fmt.Sprintf("Resume %d", len(next.Resumes)+1)
			}
			next.Resumes = slices.Insert(next.Resumes, 0, ResumeRecord{
				ID:        now.UnixMilli(),
				Name:      name,
				ATSScore:  score,
				Timestamp: stamp,
				Date:      now.UTC(),
			})
		}
	case RoadmapGenerated:
		next.Stats.AnalysesCompleted++
	case SkillGapAnalyzed:
		next.Stats.AnalysesCompleted++
		next.SkillProgress = mergeSkills(next.SkillProgress, e.Skills, stamp)
	default:
		return s, nil, fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}

	next.History = slices.Insert(next.History, 0, Entry{Type: e.Type, Description: e.Description, Timestamp: stamp})

	earned := newBadges(next, now.UTC())
	next.Badges = append(next.Badges, earned...)
	return next, earned, nil
}

func mergeSkills(cur []SkillProgress, updates []SkillUpdate, stamp string) []SkillProgress {
	for _, u := range updates {
		i := slices.IndexFunc(cur, func(p SkillProgress) bool { return p.Name == u.Name })
		if i >= 0 {
			cur[i].Progress = u.Progress
			cur[i].LastUpdated = stamp
			continue
		}
		category := u.Category
		if category == "" {
			category = defaultSkillCategory
		}
		cur = append(cur, SkillProgress{Name: u.Name, Progress: u.Progress, Category: category, LastUpdated: stamp})
	}
	return cur
}

func (s State) clone() State {
	return State{
		Stats:         s.Stats,
		History:       slices.Clone(s.History),
		Resumes:       slices.Clone(s.Resumes),
		SkillProgress: slices.Clone(s.SkillProgress),
		Badges:        slices.Clone(s.Badges),
	}
}

// AverageATSScore is 0 until a scored analysis exists.
func (s State) AverageATSScore() float64 {
	if s.Stats.ATSScoreCount == 0 {
		return 0
	}
	return float64(s.Stats.TotalATSScore) / float64(s.Stats.ATSScoreCount)
}

func (s State) hasEvent(t EventType) bool {
	return slices.ContainsFunc(s.History, func(e Entry) bool { return e.Type == t })
}

func (s State) hasBadge(id string) bool {
	return slices.ContainsFunc(s.Badges, func(b Badge) bool { return b.ID == id })
}
