// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PersonalInfo holds contact details and the free-text summary.
// No field is required; empty values render as placeholders downstream.
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
}

// Experience represents a single position held by the candidate.
// Current disables end date editing in the form but never rewrites EndDate.
type Experience struct {
	ID          string `json:"id" validate:"required"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education represents a degree or course of study
type Education struct {
	ID          string `json:"id" validate:"required"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Skill is a named skill with a proficiency level.
// Level is stored as a free string; see SkillLevel for the known values.
type Skill struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name"`
	Level string `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
}

// ResumeData is the aggregate document a user is constructing.
// List order is insertion order and determines rendering order.
type ResumeData struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Experience   []Experience `json:"experience" validate:"dive"`
	Education    []Education  `json:"education" validate:"dive"`
	Skills       []Skill      `json:"skills" validate:"dive"`
}

// NewResumeData returns the all-empty default resume.
func NewResumeData() *ResumeData {
	return &ResumeData{
		Experience: []Experience{},
		Education:  []Education{},
		Skills:     []Skill{},
	}
}

// Normalize replaces nil lists with empty ones so decoded payloads that omit
// a section behave like the default resume.
func (r *ResumeData) Normalize() *ResumeData {
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Skills == nil {
		r.Skills = []Skill{}
	}
	return r
}

// Clone returns a deep copy of the resume.
func (r *ResumeData) Clone() *ResumeData {
	out := &ResumeData{
		PersonalInfo: r.PersonalInfo,
		Experience:   append([]Experience{}, r.Experience...),
		Education:    append([]Education{}, r.Education...),
		Skills:       append([]Skill{}, r.Skills...),
	}
	return out
}

// IsEmpty reports whether the resume carries no user content at all.
func (r *ResumeData) IsEmpty() bool {
	return r.PersonalInfo == (PersonalInfo{}) &&
		len(r.Experience) == 0 &&
		len(r.Education) == 0 &&
		len(r.Skills) == 0
}
