// Package analysis turns raw model output into typed analysis results.
package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/careerlens/careerlens/internal/models"
)

var (
	ErrEmpty       = errors.New("empty model response")
	ErrInvalidJSON = errors.New("model response is not valid JSON")
	ErrShape       = errors.New("model response does not match the expected shape")
)

var fenceRe = regexp.MustCompile("```(?:json|JSON)?[ \t]*\r?\n?")

// StripCodeFences removes markdown code fences wherever they appear and
// trims the result.
func StripCodeFences(s string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(s, ""))
}

type field struct {
	path string
	kind gjson.Type
	// array fields use kind gjson.JSON and isArray
	isArray bool
}

var skillGapShape = []field{
	{path: "currentProfile", kind: gjson.JSON},
	{path: "skillsAnalysis", kind: gjson.JSON},
	{path: "skillsAnalysis.matchingSkills", kind: gjson.JSON, isArray: true},
	{path: "skillsAnalysis.missingSkills", kind: gjson.JSON, isArray: true},
	{path: "skillGapDetails", kind: gjson.JSON, isArray: true},
	{path: "salaryProjection", kind: gjson.JSON},
	{path: "disclaimer", kind: gjson.String},
}

var roadmapShape = []field{
	{path: "roadmapTitle", kind: gjson.String},
	{path: "phases", kind: gjson.JSON, isArray: true},
	{path: "finalOutcome", kind: gjson.JSON},
	{path: "disclaimer", kind: gjson.String},
}

// ParseSkillGap validates and decodes a skill-gap report.
func ParseSkillGap(raw string) (*models.SkillGapReport, error) {
	text, err := prepare(raw, skillGapShape)
	if err != nil {
		return nil, err
	}
	var out models.SkillGapReport
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}
	return &out, nil
}

// ParseRoadmap validates and decodes a career roadmap. A roadmap without
// phases is rejected.
func ParseRoadmap(raw string) (*models.CareerRoadmap, error) {
	text, err := prepare(raw, roadmapShape)
	if err != nil {
		return nil, err
	}
	if len(gjson.Get(text, "phases").Array()) == 0 {
		return nil, fmt.Errorf("%w: roadmap has no phases", ErrShape)
	}
	var out models.CareerRoadmap
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}
	return &out, nil
}

func prepare(raw string, shape []field) (string, error) {
	text := StripCodeFences(raw)
	if text == "" {
		return "", ErrEmpty
	}
	if !gjson.Valid(text) {
		return "", ErrInvalidJSON
	}
	root := gjson.Parse(text)
	if !root.IsObject() {
		return "", fmt.Errorf("%w: top level is not an object", ErrShape)
	}
	for _, f := range shape {
		v := root.Get(f.path)
		if !v.Exists() {
			return "", fmt.Errorf("%w: missing %q", ErrShape, f.path)
		}
		if v.Type != f.kind || (f.isArray && !v.IsArray()) || (f.kind == gjson.JSON && !f.isArray && !v.IsObject()) {
			return "", fmt.Errorf("%w: unexpected type for %q", ErrShape, f.path)
		}
	}
	return text, nil
}
