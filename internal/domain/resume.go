package domain

import "time"

// Chunk is a bounded sub-span of a resume's raw text with its own embedding,
// used for fine-grained evidence. StartChar and EndChar are byte offsets into
// the source text; 0 <= StartChar <= EndChar <= len(source). An empty
// embedding marks the chunk ineligible for similarity scoring.
type Chunk struct {
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding,omitempty"`
	StartChar int       `json:"start_char"`
	EndChar   int       `json:"end_char"`
}

// ExperienceEntry is a single position from a resume's work history.
type ExperienceEntry struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// EducationEntry is a single entry from a resume's education section.
type EducationEntry struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationDate string `json:"graduation_date"`
}

// ParsedData holds the structured fields extracted from a resume.
type ParsedData struct {
	Name           string            `json:"name"`
	Email          string            `json:"email,omitempty"`
	Phone          string            `json:"phone,omitempty"`
	Location       string            `json:"location,omitempty"`
	Summary        string            `json:"summary,omitempty"`
	Skills         []string          `json:"skills,omitempty"`
	Experience     []ExperienceEntry `json:"experience,omitempty"`
	Education      []EducationEntry  `json:"education,omitempty"`
	Certifications []string          `json:"certifications,omitempty"`
	Languages      []string          `json:"languages,omitempty"`
}

// PIIFlags records which kinds of personal data were detected at ingestion.
type PIIFlags struct {
	HasEmail          bool `json:"has_email"`
	HasPhone          bool `json:"has_phone"`
	HasAddress        bool `json:"has_address"`
	HasSocialSecurity bool `json:"has_social_security"`
}

// Resume is an ingested candidate document with its embeddings.
type Resume struct {
	ID         string     `json:"id"`
	Filename   string     `json:"filename"`
	RawText    string     `json:"raw_text"`
	Parsed     ParsedData `json:"parsed_data"`
	PII        PIIFlags   `json:"pii"`
	Embedding  []float32  `json:"embedding,omitempty"`
	Chunks     []Chunk    `json:"chunks,omitempty"`
	UploadedAt time.Time  `json:"uploaded_at"`
}

// HasEmbedding reports whether the resume carries a top-level embedding.
// Only resumes with a non-empty embedding participate in search and match.
func (r *Resume) HasEmbedding() bool {
	return len(r.Embedding) > 0
}

// CandidateName returns the parsed name, or "Unknown" when extraction found none.
func (r *Resume) CandidateName() string {
	if r.Parsed.Name == "" {
		return "Unknown"
	}
	return r.Parsed.Name
}
