package chi

import (
	"time"

	"github.com/akash62835/ResumeRAG/internal/domain"
	"github.com/akash62835/ResumeRAG/internal/evidence"
	"github.com/akash62835/ResumeRAG/internal/redact"
	matchuc "github.com/akash62835/ResumeRAG/internal/usecase/match"
	searchuc "github.com/akash62835/ResumeRAG/internal/usecase/search"
)

// errorCode is a machine-readable error discriminator in error payloads.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeValidationFailed errorCode = "validation_failed"
	codeUnauthorized     errorCode = "unauthorized"
	codeForbidden        errorCode = "forbidden"
	codeResumeNotFound   errorCode = "resume_not_found"
	codeJobNotFound      errorCode = "job_not_found"
	codeEmbeddingError   errorCode = "embedding_provider_error"
	codeExtractionError  errorCode = "extraction_failed"
	codeInternalError    errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// --- /ask ---

type askRequest struct {
	Query string `json:"query"`
	K     *int   `json:"k,omitempty"`
}

type askResult struct {
	ResumeID        string             `json:"resume_id"`
	CandidateName   string             `json:"candidate_name"`
	SimilarityScore float64            `json:"similarity_score"`
	Evidence        []evidence.Snippet `json:"evidence"`
	ParsedData      domain.ParsedData  `json:"parsed_data"`
}

type askResponse struct {
	Query         string      `json:"query"`
	K             int         `json:"k"`
	Results       []askResult `json:"results"`
	TotalSearched int         `json:"total_searched"`
}

func askResponseFrom(query string, k int, resp searchuc.Response, role redact.Role) askResponse {
	results := make([]askResult, len(resp.Results))
	for i, r := range resp.Results {
		results[i] = askResult{
			ResumeID:        r.ResumeID,
			CandidateName:   r.CandidateName,
			SimilarityScore: r.Score,
			Evidence:        r.Evidence,
			ParsedData:      redact.Apply(r.Parsed, role),
		}
	}
	return askResponse{Query: query, K: k, Results: results, TotalSearched: resp.TotalSearched}
}

// --- jobs ---

type experienceRequirementDTO struct {
	MinYears float64 `json:"min_years,omitempty"`
}

type requirementsDTO struct {
	Skills         []string                 `json:"skills,omitempty"`
	Experience     experienceRequirementDTO `json:"experience,omitempty"`
	Certifications []string                 `json:"certifications,omitempty"`
}

type createJobRequest struct {
	Title        string          `json:"title"`
	Company      string          `json:"company"`
	Description  string          `json:"description"`
	Requirements string          `json:"requirements"`
	Structured   requirementsDTO `json:"structured_requirements"`
	Location     string          `json:"location,omitempty"`
	Salary       string          `json:"salary,omitempty"`
}

type jobResponse struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Company      string          `json:"company"`
	Description  string          `json:"description"`
	Requirements string          `json:"requirements"`
	Structured   requirementsDTO `json:"structured_requirements"`
	Location     string          `json:"location,omitempty"`
	Salary       string          `json:"salary,omitempty"`
	Status       string          `json:"status"`
	CreatedBy    string          `json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type jobListResponse struct {
	Jobs   []jobResponse `json:"jobs"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

func requirementsFromDTO(dto requirementsDTO) domain.Requirements {
	return domain.Requirements{
		Skills:         dto.Skills,
		Experience:     domain.ExperienceRequirement{MinYears: dto.Experience.MinYears},
		Certifications: dto.Certifications,
	}
}

func jobToResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:           j.ID,
		Title:        j.Title,
		Company:      j.Company,
		Description:  j.Description,
		Requirements: j.Requirements,
		Structured: requirementsDTO{
			Skills:         j.Structured.Skills,
			Experience:     experienceRequirementDTO{MinYears: j.Structured.Experience.MinYears},
			Certifications: j.Structured.Certifications,
		},
		Location:  j.Location,
		Salary:    j.Salary,
		Status:    j.Status,
		CreatedBy: j.CreatedBy,
		CreatedAt: j.CreatedAt,
	}
}

// --- /jobs/{id}/match ---

type matchJobRequest struct {
	TopN *int `json:"top_n,omitempty"`
}

type scoreBreakdown struct {
	SemanticSimilarity float64 `json:"semantic_similarity"`
	SkillsMatch        float64 `json:"skills_match"`
	ExperienceMatch    float64 `json:"experience_match"`
}

type matchResult struct {
	ResumeID            string                      `json:"resume_id"`
	CandidateName       string                      `json:"candidate_name"`
	OverallScore        float64                     `json:"overall_score"`
	Breakdown           scoreBreakdown              `json:"breakdown"`
	MatchedSkills       []string                    `json:"matched_skills"`
	Evidence            []evidence.Snippet          `json:"evidence"`
	MissingRequirements []domain.MissingRequirement `json:"missing_requirements"`
	ParsedData          domain.ParsedData           `json:"parsed_data"`
}

type matchJobResponse struct {
	JobID           string        `json:"job_id"`
	JobTitle        string        `json:"job_title"`
	TotalCandidates int           `json:"total_candidates"`
	TopN            int           `json:"top_n"`
	Matches         []matchResult `json:"matches"`
}

func matchResponseFrom(topN int, resp matchuc.Response, role redact.Role) matchJobResponse {
	matches := make([]matchResult, len(resp.Matches))
	for i, m := range resp.Matches {
		matches[i] = matchResult{
			ResumeID:      m.ResumeID,
			CandidateName: m.CandidateName,
			OverallScore:  m.Overall,
			Breakdown: scoreBreakdown{
				SemanticSimilarity: m.Breakdown.Semantic,
				SkillsMatch:        m.Breakdown.Skills,
				ExperienceMatch:    m.Breakdown.Experience,
			},
			MatchedSkills:       m.MatchedSkills,
			Evidence:            m.Evidence,
			MissingRequirements: m.Missing,
			ParsedData:          redact.Apply(m.Parsed, role),
		}
	}
	return matchJobResponse{
		JobID:           resp.Job.ID,
		JobTitle:        resp.Job.Title,
		TotalCandidates: resp.TotalCandidates,
		TopN:            topN,
		Matches:         matches,
	}
}

// --- resumes ---

type ingestFile struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

type ingestRequest struct {
	Files []ingestFile `json:"files"`
}

type ingestFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

type ingestResponse struct {
	Processed []resumeSummary `json:"processed"`
	Errors    []ingestFailure `json:"errors,omitempty"`
}

// resumeSummary is the browsing view of a resume. Raw text, embeddings, and
// chunks never leave the service.
type resumeSummary struct {
	ID            string            `json:"id"`
	Filename      string            `json:"filename"`
	CandidateName string            `json:"candidate_name"`
	ParsedData    domain.ParsedData `json:"parsed_data"`
	PII           domain.PIIFlags   `json:"pii"`
	ChunkCount    int               `json:"chunk_count"`
	UploadedAt    time.Time         `json:"uploaded_at"`
}

type resumeListResponse struct {
	Resumes []resumeSummary `json:"resumes"`
	Total   int             `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

func resumeToSummary(r *domain.Resume, role redact.Role) resumeSummary {
	return resumeSummary{
		ID:            r.ID,
		Filename:      r.Filename,
		CandidateName: r.CandidateName(),
		ParsedData:    redact.Apply(r.Parsed, role),
		PII:           r.PII,
		ChunkCount:    len(r.Chunks),
		UploadedAt:    r.UploadedAt,
	}
}

// --- health ---

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
