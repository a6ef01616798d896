package domain

import "time"

// Job statuses.
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// ExperienceRequirement names the minimum experience a job asks for.
type ExperienceRequirement struct {
	MinYears float64 `json:"min_years,omitempty"`
}

// Requirements holds the structured requirements of a job posting. Matching
// against candidate fields uses case-insensitive substring containment, not
// exact equality.
type Requirements struct {
	Skills         []string              `json:"skills,omitempty"`
	Experience     ExperienceRequirement `json:"experience,omitempty"`
	Certifications []string              `json:"certifications,omitempty"`
}

// Job is a posted position with the embedding of its combined text.
type Job struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Company      string       `json:"company"`
	Description  string       `json:"description"`
	Requirements string       `json:"requirements"`
	Structured   Requirements `json:"structured_requirements"`
	Location     string       `json:"location,omitempty"`
	Salary       string       `json:"salary,omitempty"`
	Status       string       `json:"status"`
	Embedding    []float32    `json:"embedding,omitempty"`
	CreatedBy    string       `json:"created_by,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// CombinedText returns the text the job embedding is computed from.
func (j *Job) CombinedText() string {
	return j.Title + " " + j.Description + " " + j.Requirements
}
