package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-ai-backend/internal/llm"
	"resume-ai-backend/internal/payments"
	"resume-ai-backend/internal/resumes"
	"resume-ai-backend/internal/shared/metrics"
	"resume-ai-backend/internal/shared/telemetry"
)

// Service contains business logic for the AI endpoints.
type Service struct {
	LLM     llm.Client
	Resumes resumes.Repo
}

// EnhanceSummary rewrites a professional summary.
func (s *Service) EnhanceSummary(ctx context.Context, userContent string) (string, error) {
	return s.enhance(ctx, strings.TrimSpace(enhanceSummaryPrompt), userContent)
}

// EnhanceJobDescription rewrites a job description.
func (s *Service) EnhanceJobDescription(ctx context.Context, userContent string) (string, error) {
	return s.enhance(ctx, strings.TrimSpace(enhanceJobDescriptionPrompt), userContent)
}

func (s *Service) enhance(ctx context.Context, systemPrompt, userContent string) (string, error) {
	if strings.TrimSpace(userContent) == "" {
		return "", ErrMissingContent
	}
	enhanced, err := s.LLM.Complete(ctx, llm.Request{
		System: systemPrompt,
		User:   userContent,
	})
	if err != nil {
		return "", err
	}
	metrics.IncEnhancement()
	return enhanced, nil
}

// ImportResume extracts structured data from raw resume text and persists a
// new resume owned by the user.
func (s *Service) ImportResume(ctx context.Context, userID, title, resumeText string) (resumes.Resume, error) {
	if strings.TrimSpace(resumeText) == "" {
		return resumes.Resume{}, ErrMissingContent
	}

	content, err := s.LLM.Complete(ctx, llm.Request{
		System:   extractSystemPrompt,
		User:     extractUserPrompt(resumeText),
		JSONOnly: true,
	})
	if err != nil {
		return resumes.Resume{}, err
	}

	var extracted extractedResume
	if err := json.Unmarshal([]byte(content), &extracted); err != nil {
		telemetry.Error("ai.extract.parse_failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return resumes.Resume{}, fmt.Errorf("%w: %v", ErrBadAIResponse, err)
	}

	now := time.Now().UTC()
	resume := resumes.Resume{
		ID:                  uuid.NewString(),
		UserID:              userID,
		Title:               title,
		ProfessionalSummary: extracted.ProfessionalSummary,
		Skills:              extracted.Skills,
		PersonalInfo:        extracted.PersonalInfo,
		Experience:          extracted.Experience,
		Projects:            extracted.Projects,
		Education:           extracted.Education,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.Resumes.Create(ctx, resume); err != nil {
		return resumes.Resume{}, err
	}

	metrics.IncResumeImported()
	return resume, nil
}

// Analyze produces a scored review for an owned resume. The paid analysis
// must have been unlocked first.
func (s *Service) Analyze(ctx context.Context, userID, resumeID string) (Analysis, error) {
	if strings.TrimSpace(resumeID) == "" {
		return Analysis{}, ErrMissingContent
	}

	resume, err := s.Resumes.GetByOwner(ctx, resumeID, userID)
	if err != nil {
		return Analysis{}, err
	}
	if err := payments.RequireEntitlement(resume); err != nil {
		return Analysis{}, err
	}

	content, err := s.LLM.Complete(ctx, llm.Request{
		System:   strings.TrimSpace(analyzeResumePrompt),
		User:     analyzeUserPrompt(resume),
		JSONOnly: true,
	})
	if err != nil {
		return Analysis{}, err
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		telemetry.Error("ai.analyze.parse_failed", map[string]any{
			"user_id":   userID,
			"resume_id": resumeID,
			"error":     err.Error(),
		})
		return Analysis{}, fmt.Errorf("%w: %v", ErrBadAIResponse, err)
	}

	metrics.IncAnalysis()
	return analysis, nil
}
