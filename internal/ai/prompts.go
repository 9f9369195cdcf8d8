package ai

import (
	_ "embed"
	"fmt"
	"strings"

	"resume-ai-backend/internal/resumes"
)

var (
	//go:embed prompts/enhance_summary.txt
	enhanceSummaryPrompt string
	//go:embed prompts/enhance_job_description.txt
	enhanceJobDescriptionPrompt string
	//go:embed prompts/extract_resume.txt
	extractResumePrompt string
	//go:embed prompts/analyze_resume.txt
	analyzeResumePrompt string
)

const extractSystemPrompt = "You are an expert AI Agent to extract data from resume."

// extractUserPrompt interpolates the raw resume text into the extraction
// template.
func extractUserPrompt(resumeText string) string {
	return fmt.Sprintf(strings.TrimSpace(extractResumePrompt), resumeText)
}

// analyzeUserPrompt flattens the stored resume into the text block the
// analysis prompt expects.
func analyzeUserPrompt(resume resumes.Resume) string {
	var experience []string
	for _, exp := range resume.Experience {
		experience = append(experience, fmt.Sprintf("%s at %s: %s", exp.Position, exp.Company, exp.Description))
	}
	var education []string
	for _, edu := range resume.Education {
		education = append(education, fmt.Sprintf("%s from %s", edu.Degree, edu.Institution))
	}
	var projects []string
	for _, p := range resume.Projects {
		projects = append(projects, fmt.Sprintf("%s: %s", p.Name, p.Description))
	}

	resumeString := fmt.Sprintf(
		"Professional Summary: %s\nSkills: %s\nExperience: %s\nEducation: %s\nProjects: %s",
		resume.ProfessionalSummary,
		strings.Join(resume.Skills, ", "),
		strings.Join(experience, "; "),
		strings.Join(education, "; "),
		strings.Join(projects, "; "),
	)

	return "Please analyze the following resume:\n\n" + resumeString
}
