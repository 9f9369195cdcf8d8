package resumes

import "time"

// ResumeResponse is the outward-facing representation of a resume.
type ResumeResponse struct {
	ResumeID            string       `json:"resumeId"`
	Title               string       `json:"title"`
	ProfessionalSummary string       `json:"professional_summary"`
	Skills              []string     `json:"skills"`
	PersonalInfo        PersonalInfo `json:"personal_info"`
	Experience          []Experience `json:"experience"`
	Projects            []Project    `json:"project"`
	Education           []Education  `json:"education"`
	AnalysisPurchased   bool         `json:"analysisPurchased"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

func toResponse(resume Resume) ResumeResponse {
	return ResumeResponse{
		ResumeID:            resume.ID,
		Title:               resume.Title,
		ProfessionalSummary: resume.ProfessionalSummary,
		Skills:              resume.Skills,
		PersonalInfo:        resume.PersonalInfo,
		Experience:          resume.Experience,
		Projects:            resume.Projects,
		Education:           resume.Education,
		AnalysisPurchased:   resume.AnalysisPurchased,
		CreatedAt:           resume.CreatedAt,
		UpdatedAt:           resume.UpdatedAt,
	}
}
