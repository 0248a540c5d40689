package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/careerlens/careerlens/internal/analysis"
	"github.com/careerlens/careerlens/internal/extractor"
	"github.com/careerlens/careerlens/internal/metrics"
	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/prompts"
	"github.com/careerlens/careerlens/internal/providers/llm"
	"github.com/careerlens/careerlens/internal/utils"
)

const (
	defaultRoadmapMonths     = 6
	defaultExperienceLevel   = "Beginner"
	maxRoadmapMonths         = 24
	rawOutputLogLimit        = 500
	defaultGenerationTimeout = 120 * time.Second
)

type AnalysisService interface {
	ExtractResumeText(ctx context.Context, data []byte) (*models.ExtractedResume, error)
	RunReview(ctx context.Context, req models.ReviewRequest) (string, error)
	RunSkillGap(ctx context.Context, req models.SkillGapRequest) (*models.SkillGapReport, error)
	RunCareerRoadmap(ctx context.Context, req models.RoadmapRequest) (*models.CareerRoadmap, error)
}

type analysisService struct {
	provider llm.Provider
	model    string
	timeout  time.Duration
	log      logrus.FieldLogger
}

func NewAnalysisService(provider llm.Provider, model string, timeout time.Duration, log logrus.FieldLogger) AnalysisService {
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	if model == "" {
		model = llm.DefaultModel
	}
	return &analysisService{provider: provider, model: model, timeout: timeout, log: log}
}

func (s *analysisService) ExtractResumeText(ctx context.Context, data []byte) (*models.ExtractedResume, error) {
	const op = "AnalysisService.ExtractResumeText"

	if len(data) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "No file uploaded", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "request cancelled", err)
	}

	res, err := extractor.Extract(data)
	if err != nil {
		var docErr *extractor.DocumentError
		switch {
		case errors.Is(err, extractor.ErrNoText):
			return nil, utils.E(utils.CodeExtraction, op,
				"⚠️ Could not extract text from PDF. This may be a scanned/image-based resume. Please upload a text-based PDF.", err)
		case errors.Is(err, extractor.ErrUnsupported):
			return nil, utils.E(utils.CodeInvalidArgument, op,
				"⚠️ Unsupported file type. Please upload a PDF or DOCX resume.", err)
		case errors.As(err, &docErr):
			return nil, utils.E(utils.CodeExtraction, op,
				fmt.Sprintf("⚠️ Error reading %s: %v", docErr.Kind, docErr.Err), err)
		default:
			return nil, utils.E(utils.CodeInternal, op, "failed to extract resume text", err)
		}
	}
	if res.Truncated {
		s.log.WithField("op", op).Info("resume text truncated")
	}
	return &res, nil
}

func (s *analysisService) RunReview(ctx context.Context, req models.ReviewRequest) (string, error) {
	const op = "AnalysisService.RunReview"

	if strings.TrimSpace(req.JobDescription) == "" || strings.TrimSpace(req.ResumeText) == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "⚠️ Please provide jobDescription and resumeText", nil)
	}
	mode := models.ReviewMode(strings.ToLower(strings.TrimSpace(string(req.Mode))))
	switch mode {
	case "":
		mode = models.ModeATS
	case models.ModeHR, models.ModeATS:
	default:
		return "", utils.E(utils.CodeInvalidArgument, op, `⚠️ Unknown review mode. Use "hr" or "ats".`, nil)
	}

	return s.generate(ctx, op, prompts.Review(mode, req.JobDescription, req.ResumeText))
}

func (s *analysisService) RunSkillGap(ctx context.Context, req models.SkillGapRequest) (*models.SkillGapReport, error) {
	const op = "AnalysisService.RunSkillGap"

	if strings.TrimSpace(req.ResumeText) == "" || strings.TrimSpace(req.JobRole) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "⚠️ Please provide resumeText and jobRole", nil)
	}

	raw, err := s.generate(ctx, op, prompts.SkillGap(req.JobRole, strings.TrimSpace(req.ExperienceLevel), req.ResumeText))
	if err != nil {
		return nil, err
	}
	report, err := analysis.ParseSkillGap(raw)
	if err != nil {
		s.logRaw(op, raw, err)
		return nil, utils.E(utils.CodeParse, op, "⚠️ Error parsing skill gap analysis. Please try again.", err)
	}
	return report, nil
}

func (s *analysisService) RunCareerRoadmap(ctx context.Context, req models.RoadmapRequest) (*models.CareerRoadmap, error) {
	const op = "AnalysisService.RunCareerRoadmap"

	if strings.TrimSpace(req.JobRole) == "" || strings.TrimSpace(req.InterestArea) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "⚠️ Job role and interest area are required", nil)
	}
	req, err := normalizeRoadmap(req)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), nil)
	}

	raw, err := s.generate(ctx, op, prompts.Roadmap(req))
	if err != nil {
		return nil, err
	}
	roadmap, err := analysis.ParseRoadmap(raw)
	if err != nil {
		s.logRaw(op, raw, err)
		return nil, utils.E(utils.CodeParse, op, "⚠️ Failed to parse roadmap data. Please try again.", err)
	}
	return roadmap, nil
}

func normalizeRoadmap(req models.RoadmapRequest) (models.RoadmapRequest, error) {
	req.JobRole = strings.TrimSpace(req.JobRole)
	req.InterestArea = strings.TrimSpace(req.InterestArea)
	req.ExperienceLevel = strings.TrimSpace(req.ExperienceLevel)
	if req.ExperienceLevel == "" {
		req.ExperienceLevel = defaultExperienceLevel
	}
	if req.DurationMonths == 0 {
		req.DurationMonths = defaultRoadmapMonths
	}
	if req.DurationMonths < 1 || req.DurationMonths > maxRoadmapMonths {
		return req, fmt.Errorf("⚠️ Duration must be between 1 and %d months", maxRoadmapMonths)
	}
	switch models.UpdateFrequency(strings.ToLower(strings.TrimSpace(string(req.Frequency)))) {
	case "", models.FrequencyMonthly:
		req.Frequency = models.FrequencyMonthly
	case models.FrequencyWeekly:
		req.Frequency = models.FrequencyWeekly
	default:
		return req, errors.New(`⚠️ Frequency must be "weekly" or "monthly"`)
	}
	return req, nil
}

// generate makes exactly one provider call. The call is detached from the
// caller's cancellation and bounded by the configured timeout.
func (s *analysisService) generate(ctx context.Context, op, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.provider.Generate(ctx, prompt)
	elapsed := time.Since(start)
	entry := s.log.WithFields(logrus.Fields{
		"op":         op,
		"model":      s.model,
		"latency_ms": elapsed.Milliseconds(),
	})
	if err != nil {
		classified := llm.Classify(err)
		var le *llm.Error
		if errors.As(classified, &le) {
			metrics.ObserveModelCall(op, le.Kind.String(), elapsed)
		}
		entry.WithError(err).Warn("model call failed")
		return "", utils.E(utils.CodeProvider, op, llm.UserMessage(err, s.model), classified)
	}
	metrics.ObserveModelCall(op, "ok", elapsed)
	entry.WithField("chars", len(text)).Debug("model call done")
	return text, nil
}

func (s *analysisService) logRaw(op, raw string, err error) {
	r := []rune(raw)
	if len(r) > rawOutputLogLimit {
		r = r[:rawOutputLogLimit]
	}
	s.log.WithFields(logrus.Fields{
		"op":  op,
		"raw": string(r),
	}).WithError(err).Error("model output did not parse")
}
