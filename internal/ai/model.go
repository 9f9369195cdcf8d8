package ai

import "resume-ai-backend/internal/resumes"

// Analysis is the scored review parsed from the provider's JSON output.
type Analysis struct {
	Score    int      `json:"score"`
	Feedback Feedback `json:"feedback"`
}

// Feedback holds the per-criterion review text.
type Feedback struct {
	Overall         string `json:"overall"`
	Clarity         string `json:"clarity"`
	ATSOptimization string `json:"ats_optimization"`
	Impact          string `json:"impact"`
	Completeness    string `json:"completeness"`
}

// extractedResume mirrors the JSON shape the extraction prompt asks for.
// Note the wire key "project" (singular) from the prompt template.
type extractedResume struct {
	ProfessionalSummary string               `json:"professional_summary"`
	Skills              []string             `json:"skills"`
	PersonalInfo        resumes.PersonalInfo `json:"personal_info"`
	Experience          []resumes.Experience `json:"experience"`
	Projects            []resumes.Project    `json:"project"`
	Education           []resumes.Education  `json:"education"`
}
