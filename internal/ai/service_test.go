package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resume-ai-backend/internal/llm"
	"resume-ai-backend/internal/payments"
	"resume-ai-backend/internal/resumes"
)

type fakeLLM struct {
	lastReq  llm.Request
	response string
	err      error
}

func (f *fakeLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestEnhanceSummary(t *testing.T) {
	client := &fakeLLM{response: "A concise, compelling summary."}
	svc := &Service{LLM: client, Resumes: resumes.NewMemoryRepo()}

	enhanced, err := svc.EnhanceSummary(context.Background(), "i am a developer")
	if err != nil {
		t.Fatalf("EnhanceSummary: %v", err)
	}
	if enhanced != "A concise, compelling summary." {
		t.Fatalf("unexpected content %q", enhanced)
	}
	if client.lastReq.JSONOnly {
		t.Fatalf("enhancement must not request JSON mode")
	}
	if !strings.Contains(client.lastReq.System, "professional summary") {
		t.Fatalf("wrong system prompt: %q", client.lastReq.System)
	}
}

func TestEnhanceRequiresContent(t *testing.T) {
	svc := &Service{LLM: &fakeLLM{}, Resumes: resumes.NewMemoryRepo()}

	if _, err := svc.EnhanceSummary(context.Background(), "  "); !errors.Is(err, ErrMissingContent) {
		t.Fatalf("expected ErrMissingContent, got %v", err)
	}
	if _, err := svc.EnhanceJobDescription(context.Background(), ""); !errors.Is(err, ErrMissingContent) {
		t.Fatalf("expected ErrMissingContent, got %v", err)
	}
}

func TestImportResumePersistsExtractedData(t *testing.T) {
	client := &fakeLLM{response: `{
		"professional_summary": "Backend engineer with 5 years of Go.",
		"skills": ["Go", "Postgres"],
		"personal_info": {"full_name": "Ada Lovelace", "email": "ada@example.com"},
		"experience": [{"company": "Acme", "position": "Engineer", "is_current": true}],
		"project": [{"name": "Ledger", "description": "Double-entry bookkeeping"}],
		"education": [{"institution": "MIT", "degree": "BSc"}]
	}`}
	repo := resumes.NewMemoryRepo()
	svc := &Service{LLM: client, Resumes: repo}

	resume, err := svc.ImportResume(context.Background(), "u1", "My Resume", "raw resume text")
	if err != nil {
		t.Fatalf("ImportResume: %v", err)
	}
	if resume.ID == "" {
		t.Fatalf("expected generated resume id")
	}
	if !client.lastReq.JSONOnly {
		t.Fatalf("extraction must request JSON mode")
	}
	if !strings.Contains(client.lastReq.User, "raw resume text") {
		t.Fatalf("resume text not interpolated into prompt")
	}

	stored, err := repo.GetByOwner(context.Background(), resume.ID, "u1")
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}
	if stored.PersonalInfo.FullName != "Ada Lovelace" {
		t.Fatalf("personal info not stored: %+v", stored.PersonalInfo)
	}
	if len(stored.Projects) != 1 || stored.Projects[0].Name != "Ledger" {
		t.Fatalf("projects not stored from 'project' key: %+v", stored.Projects)
	}
	if stored.AnalysisPurchased {
		t.Fatalf("fresh resume must not be purchased")
	}
}

func TestImportResumeBadJSON(t *testing.T) {
	client := &fakeLLM{response: "Sure! Here is the JSON you asked for: {"}
	svc := &Service{LLM: client, Resumes: resumes.NewMemoryRepo()}

	_, err := svc.ImportResume(context.Background(), "u1", "", "raw resume text")
	if !errors.Is(err, ErrBadAIResponse) {
		t.Fatalf("expected ErrBadAIResponse, got %v", err)
	}
}

func TestAnalyzeRequiresEntitlement(t *testing.T) {
	repo := resumes.NewMemoryRepo()
	if err := repo.Create(context.Background(), resumes.Resume{ID: "r1", UserID: "u1"}); err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	svc := &Service{LLM: &fakeLLM{}, Resumes: repo}

	_, err := svc.Analyze(context.Background(), "u1", "r1")
	if !errors.Is(err, payments.ErrNotEntitled) {
		t.Fatalf("expected ErrNotEntitled, got %v", err)
	}
}

func TestAnalyzeReturnsParsedReview(t *testing.T) {
	repo := resumes.NewMemoryRepo()
	err := repo.Create(context.Background(), resumes.Resume{
		ID:                  "r1",
		UserID:              "u1",
		ProfessionalSummary: "Backend engineer.",
		Skills:              []string{"Go"},
		Experience:          []resumes.Experience{{Company: "Acme", Position: "Engineer", Description: "Built APIs"}},
		AnalysisPurchased:   true,
	})
	if err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	client := &fakeLLM{response: `{
		"score": 85,
		"feedback": {
			"overall": "Strong resume.",
			"clarity": "Clear.",
			"ats_optimization": "Add keywords.",
			"impact": "Quantify results.",
			"completeness": "Comprehensive."
		}
	}`}
	svc := &Service{LLM: client, Resumes: repo}

	analysis, err := svc.Analyze(context.Background(), "u1", "r1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.Score != 85 {
		t.Fatalf("expected score 85, got %d", analysis.Score)
	}
	if analysis.Feedback.ATSOptimization != "Add keywords." {
		t.Fatalf("feedback not decoded: %+v", analysis.Feedback)
	}
	if !strings.Contains(client.lastReq.User, "Engineer at Acme: Built APIs") {
		t.Fatalf("resume not flattened into prompt: %q", client.lastReq.User)
	}
}

func TestAnalyzeNotFoundForForeignResume(t *testing.T) {
	repo := resumes.NewMemoryRepo()
	if err := repo.Create(context.Background(), resumes.Resume{ID: "r1", UserID: "owner", AnalysisPurchased: true}); err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	svc := &Service{LLM: &fakeLLM{}, Resumes: repo}

	_, err := svc.Analyze(context.Background(), "intruder", "r1")
	if !errors.Is(err, resumes.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnalyzeBadJSON(t *testing.T) {
	repo := resumes.NewMemoryRepo()
	if err := repo.Create(context.Background(), resumes.Resume{ID: "r1", UserID: "u1", AnalysisPurchased: true}); err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	client := &fakeLLM{response: "I would rate this resume an 85 out of 100."}
	svc := &Service{LLM: client, Resumes: repo}

	_, err := svc.Analyze(context.Background(), "u1", "r1")
	if !errors.Is(err, ErrBadAIResponse) {
		t.Fatalf("expected ErrBadAIResponse, got %v", err)
	}
}
