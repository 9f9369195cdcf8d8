package resumes

import "time"

// Resume is a user-owned resume document.
//
// The content fields mirror what the extraction prompt produces. The
// AnalysisPurchased flag gates the paid analysis feature; it only ever
// transitions false -> true.
type Resume struct {
	ID                  string
	UserID              string
	Title               string
	ProfessionalSummary string
	Skills              []string
	PersonalInfo        PersonalInfo
	Experience          []Experience
	Projects            []Project
	Education           []Education
	AnalysisPurchased   bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// PersonalInfo holds contact details for a resume.
type PersonalInfo struct {
	Image      string `json:"image"`
	FullName   string `json:"full_name"`
	Profession string `json:"profession"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Location   string `json:"location"`
	LinkedIn   string `json:"linkedin"`
	Website    string `json:"website"`
}

// Experience is a single work history entry.
type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	IsCurrent   bool   `json:"is_current"`
}

// Project is a single project entry.
type Project struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Education is a single education entry.
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationDate string `json:"graduation_date"`
	GPA            string `json:"gpa"`
}
