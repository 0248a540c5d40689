package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

type ReviewMode string

const (
	ModeHR  ReviewMode = "hr"
	ModeATS ReviewMode = "ats"
)

type UpdateFrequency string

const (
	FrequencyWeekly  UpdateFrequency = "weekly"
	FrequencyMonthly UpdateFrequency = "monthly"
)

type ReviewRequest struct {
	JobDescription string     `json:"jobDescription"`
	ResumeText     string     `json:"resumeText"`
	Mode           ReviewMode `json:"mode"`
}

type SkillGapRequest struct {
	ResumeText      string `json:"resumeText"`
	JobRole         string `json:"jobRole"`
	ExperienceLevel string `json:"experienceLevel,omitempty"`
}

type RoadmapRequest struct {
	JobRole         string          `json:"jobRole"`
	InterestArea    string          `json:"interestArea"`
	ExperienceLevel string          `json:"experienceLevel"`
	DurationMonths  int             `json:"duration"`
	Frequency       UpdateFrequency `json:"frequency"`
}

// ExtractedResume is the outcome of resume text extraction.
type ExtractedResume struct {
	Text           string `json:"text"`
	CharacterCount int    `json:"length"`
	Truncated      bool   `json:"-"`
}

// FlexString holds a value the model may emit as a JSON string or number.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// SkillGapReport is the structured skill-gap analysis.
type SkillGapReport struct {
	CurrentProfile   CurrentProfile   `json:"currentProfile"`
	SkillsAnalysis   SkillsAnalysis   `json:"skillsAnalysis"`
	SkillGapDetails  []SkillGapDetail `json:"skillGapDetails"`
	SalaryProjection SalaryProjection `json:"salaryProjection"`
	Disclaimer       string           `json:"disclaimer"`
}

type CurrentProfile struct {
	EstimatedCurrentSalary string `json:"estimatedCurrentSalary"`
	OverallProfileStrength string `json:"overallProfileStrength"`
}

type SkillsAnalysis struct {
	MatchingSkills []string `json:"matchingSkills"`
	MissingSkills  []string `json:"missingSkills"`
	PartialSkills  []string `json:"partialSkills"`
}

type SkillGapDetail struct {
	Skill                          string     `json:"skill"`
	Importance                     string     `json:"importance"`
	HiringImpact                   string     `json:"hiringImpact"`
	EstimatedSalaryIncreasePercent FlexString `json:"estimatedSalaryIncreasePercent"`
}

type SalaryProjection struct {
	ProjectedSalaryRange      string     `json:"projectedSalaryRange"`
	EstimatedTotalHikePercent FlexString `json:"estimatedTotalHikePercent"`
}

// CareerRoadmap is the structured roadmap plan.
type CareerRoadmap struct {
	RoadmapTitle  string         `json:"roadmapTitle"`
	RoadmapTheme  string         `json:"roadmapTheme"`
	Duration      FlexString     `json:"duration"`
	Frequency     string         `json:"frequency"`
	InterestFocus string         `json:"interestFocus"`
	TargetRole    string         `json:"targetRole"`
	Phases        []RoadmapPhase `json:"phases"`
	FinalOutcome  FinalOutcome   `json:"finalOutcome"`
	Disclaimer    string         `json:"disclaimer"`
}

type RoadmapPhase struct {
	Phase           string   `json:"phase"`
	SkillsToLearn   []string `json:"skillsToLearn"`
	ProjectsToBuild []string `json:"projectsToBuild"`
	Outcome         string   `json:"outcome"`
	SalaryMilestone string   `json:"salaryMilestone"`
}

type FinalOutcome struct {
	CareerReadiness           string `json:"careerReadiness"`
	ConfidenceLevel           string `json:"confidenceLevel"`
	EstimatedFinalSalaryRange string `json:"estimatedFinalSalaryRange"`
	NextSteps                 string `json:"nextSteps"`
}
