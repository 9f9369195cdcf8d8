package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-ai-backend/internal/extract"
	"resume-ai-backend/internal/llm"
	"resume-ai-backend/internal/payments"
	"resume-ai-backend/internal/resumes"
	"resume-ai-backend/internal/shared/server/middleware"
	"resume-ai-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the AI service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches AI routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/enhance-pro-sum", h.enhanceSummary)
	rg.POST("/enhance-job-desc", h.enhanceJobDescription)
	rg.POST("/upload-resume", h.uploadResume)
	rg.POST("/analyze-resume", h.analyzeResume)
}

type enhanceRequest struct {
	UserContent string `json:"userContent"`
}

func (h *Handler) enhanceSummary(c *gin.Context) {
	h.enhance(c, h.Svc.EnhanceSummary)
}

func (h *Handler) enhanceJobDescription(c *gin.Context) {
	h.enhance(c, h.Svc.EnhanceJobDescription)
}

func (h *Handler) enhance(c *gin.Context, fn func(ctx context.Context, content string) (string, error)) {
	var req enhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", nil)
		return
	}
	if strings.TrimSpace(req.UserContent) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", nil)
		return
	}

	enhanced, err := fn(c.Request.Context(), req.UserContent)
	if err != nil {
		h.writeError(c, err)
		return
	}

	respond.OK(c, gin.H{"enhancedContent": enhanced})
}

type uploadResumeRequest struct {
	ResumeText string `json:"resumeText"`
	Title      string `json:"title"`
}

// uploadResume accepts either a JSON body with raw resume text or a
// multipart PDF upload whose text is extracted server-side.
func (h *Handler) uploadResume(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var title, resumeText string
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
		fileHeader, err := c.FormFile("file")
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
			return
		}
		defer file.Close()

		resumeText, err = extract.PDFText(file)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to extract text from file", nil)
			return
		}
		title = strings.TrimSpace(c.PostForm("title"))
	} else {
		var req uploadResumeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", nil)
			return
		}
		resumeText = req.ResumeText
		title = strings.TrimSpace(req.Title)
	}

	if strings.TrimSpace(resumeText) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", nil)
		return
	}

	resume, err := h.Svc.ImportResume(c.Request.Context(), userID, title, resumeText)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Set("resumeId", resume.ID)
	respond.OK(c, gin.H{"resumeId": resume.ID})
}

type analyzeRequest struct {
	ResumeID string `json:"resumeId"`
}

func (h *Handler) analyzeResume(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Resume ID is required", nil)
		return
	}
	if strings.TrimSpace(req.ResumeID) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Resume ID is required", nil)
		return
	}
	c.Set("resumeId", req.ResumeID)

	analysis, err := h.Svc.Analyze(c.Request.Context(), userID, req.ResumeID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	respond.OK(c, gin.H{"analysis": analysis})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingContent):
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", nil)
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Resume not found or you do not have permission to access it.", nil)
	case errors.Is(err, payments.ErrNotEntitled):
		respond.Error(c, http.StatusForbidden, "analysis_not_purchased", "Please purchase the analysis for this resume to get the score and feedback.", nil)
	case errors.Is(err, ErrBadAIResponse):
		respond.Error(c, http.StatusInternalServerError, "llm_parse_error", "Failed to parse AI response. Please try again.", nil)
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusInternalServerError, "llm_unavailable", "An unexpected error occurred.", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "An unexpected error occurred.", nil)
	}
}
