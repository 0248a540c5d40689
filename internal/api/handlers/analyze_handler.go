package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careerlens/careerlens/internal/extractor"
	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/services"
	"github.com/careerlens/careerlens/internal/utils"
)

// MaxResumeBytes bounds a resume upload.
const MaxResumeBytes = 10 << 20

type AnalyzeHandler struct {
	svc    services.AnalysisService
	tmpDir string
}

// NewAnalyzeHandler spools resume uploads into tmpDir while they are read.
// An empty tmpDir reads uploads straight from the request.
func NewAnalyzeHandler(svc services.AnalysisService, tmpDir string) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc, tmpDir: tmpDir}
}

func (h *AnalyzeHandler) Extract(c *gin.Context) {
	const op = "AnalyzeHandler.Extract"

	fh, err := c.FormFile("resume")
	if err != nil {
		badRequest(c, keyError, op, "No file uploaded", err)
		return
	}
	if fh.Size > MaxResumeBytes {
		badRequest(c, keyError, op, "⚠️ File too large. Maximum size is 10MB.", nil)
		return
	}

	data, err := h.readUpload(c, fh)
	if err != nil {
		writeError(c, keyError, utils.E(utils.CodeInternal, op, "Failed to read uploaded file", err), "")
		return
	}

	res, err := h.svc.ExtractResumeText(c.Request.Context(), data)
	if err != nil {
		writeError(c, keyError, err, "Failed to extract resume text")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "text": res.Text, "length": res.CharacterCount})
}

// readUpload spools the part to a temp file, reads it back, and removes the
// temp file whatever the outcome.
func (h *AnalyzeHandler) readUpload(c *gin.Context, fh *multipart.FileHeader) ([]byte, error) {
	if h.tmpDir == "" {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return extractor.ReadAll(f, MaxResumeBytes)
	}

	path := filepath.Join(h.tmpDir, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	if err := c.SaveUploadedFile(fh, path); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("spool upload: %w", err)
	}
	defer os.Remove(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return extractor.ReadAll(f, MaxResumeBytes)
}

func (h *AnalyzeHandler) Run(c *gin.Context) {
	const op = "AnalyzeHandler.Run"

	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, keyError, op, "⚠️ Please provide jobDescription and resumeText", err)
		return
	}

	out, err := h.svc.RunReview(c.Request.Context(), req)
	if err != nil {
		writeError(c, keyError, err, "⚠️ Analysis failed. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "output": out})
}

func (h *AnalyzeHandler) SkillGap(c *gin.Context) {
	const op = "AnalyzeHandler.SkillGap"

	var req models.SkillGapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, keyError, op, "⚠️ Please provide resumeText and jobRole", err)
		return
	}

	report, err := h.svc.RunSkillGap(c.Request.Context(), req)
	if err != nil {
		writeError(c, keyError, err, "⚠️ Skill gap analysis failed. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "analysis": report})
}

// roadmapBody accepts duration as a JSON number or a numeric string.
type roadmapBody struct {
	JobRole         string                 `json:"jobRole"`
	InterestArea    string                 `json:"interestArea"`
	ExperienceLevel string                 `json:"experienceLevel"`
	Duration        models.FlexString      `json:"duration"`
	Frequency       models.UpdateFrequency `json:"frequency"`
}

func (h *AnalyzeHandler) CareerRoadmap(c *gin.Context) {
	const op = "AnalyzeHandler.CareerRoadmap"

	var body roadmapBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, keyError, op, "⚠️ Job role and interest area are required", err)
		return
	}
	months := 0
	if d := strings.TrimSpace(string(body.Duration)); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil {
			badRequest(c, keyError, op, "⚠️ Duration must be between 1 and 24 months", err)
			return
		}
		months = n
	}

	roadmap, err := h.svc.RunCareerRoadmap(c.Request.Context(), models.RoadmapRequest{
		JobRole:         body.JobRole,
		InterestArea:    body.InterestArea,
		ExperienceLevel: body.ExperienceLevel,
		DurationMonths:  months,
		Frequency:       body.Frequency,
	})
	if err != nil {
		writeError(c, keyError, err, "⚠️ Roadmap generation failed. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "roadmap": roadmap})
}
