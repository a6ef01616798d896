// Package chi exposes the resume matching API over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/akash62835/ResumeRAG/internal/domain"
	healthuc "github.com/akash62835/ResumeRAG/internal/usecase/health"
	ingestuc "github.com/akash62835/ResumeRAG/internal/usecase/ingest"
	jobsuc "github.com/akash62835/ResumeRAG/internal/usecase/jobs"
	matchuc "github.com/akash62835/ResumeRAG/internal/usecase/match"
	resumesuc "github.com/akash62835/ResumeRAG/internal/usecase/resumes"
	searchuc "github.com/akash62835/ResumeRAG/internal/usecase/search"
)

const maxIngestBatch = 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Defaults holds operator-tunable values applied when a request omits them.
type Defaults struct {
	SearchK   int
	MatchTopN int
}

// Server routes HTTP requests to the use case services.
type Server struct {
	search        *searchuc.Service
	match         *matchuc.Service
	ingest        *ingestuc.Service
	resumes       *resumesuc.Service
	jobs          *jobsuc.Service
	health        *healthuc.Service
	defaults      Defaults
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. Zero Defaults fields fall back to the
// use case package defaults.
func NewServer(
	search *searchuc.Service,
	match *matchuc.Service,
	ingest *ingestuc.Service,
	resumes *resumesuc.Service,
	jobs *jobsuc.Service,
	health *healthuc.Service,
	defaults Defaults,
	logger *zap.Logger,
) *Server {
	if defaults.SearchK < 1 {
		defaults.SearchK = searchuc.DefaultK
	}
	if defaults.MatchTopN < 1 {
		defaults.MatchTopN = matchuc.DefaultTopN
	}
	s := &Server{
		search:   search,
		match:    match,
		ingest:   ingest,
		resumes:  resumes,
		jobs:     jobs,
		health:   health,
		defaults: defaults,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrResumeNotFound, http.StatusNotFound, codeResumeNotFound),
		sentinelHandler(domain.ErrJobNotFound, http.StatusNotFound, codeJobNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeResumeNotFound),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingError),
		sentinelHandler(domain.ErrExtractionFailed, http.StatusUnprocessableEntity, codeExtractionError),
	}
	return s
}

// Routes registers all endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Post("/ask", s.Ask)

	r.Post("/resumes", s.IngestResumes)
	r.Get("/resumes", s.ListResumes)
	r.Get("/resumes/{id}", s.GetResume)

	r.Post("/jobs", s.CreateJob)
	r.Get("/jobs", s.ListJobs)
	r.Get("/jobs/{id}", s.GetJob)
	r.Post("/jobs/{id}/match", s.MatchJob)
}

// Ask handles POST /ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	k := s.defaults.SearchK
	if req.K != nil {
		k = *req.K
	}

	resp, err := s.search.Search(r.Context(), req.Query, k)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, askResponseFrom(req.Query, k, resp, RoleFromContext(r.Context())))
}

// IngestResumes handles POST /resumes.
func (s *Server) IngestResumes(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Files) == 0 || len(req.Files) > maxIngestBatch {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"files count must be between 1 and "+strconv.Itoa(maxIngestBatch))
		return
	}

	inputs := make([]ingestuc.Input, len(req.Files))
	for i, f := range req.Files {
		inputs[i] = ingestuc.Input{Filename: f.Filename, Text: f.Text}
	}

	processed, failures := s.ingest.IngestAll(r.Context(), inputs)

	role := RoleFromContext(r.Context())
	resp := ingestResponse{Processed: make([]resumeSummary, len(processed))}
	for i := range processed {
		resp.Processed[i] = resumeToSummary(&processed[i], role)
	}
	for _, f := range failures {
		resp.Errors = append(resp.Errors, ingestFailure{Filename: f.Filename, Error: safeDomainMessage(f.Err)})
	}

	status := http.StatusCreated
	if len(processed) == 0 {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, resp)
}

// ListResumes handles GET /resumes.
func (s *Server) ListResumes(w http.ResponseWriter, r *http.Request) {
	req := resumesuc.ListRequest{
		Query:  r.URL.Query().Get("q"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}

	resp, err := s.resumes.List(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	role := RoleFromContext(r.Context())
	out := resumeListResponse{
		Resumes: make([]resumeSummary, len(resp.Resumes)),
		Total:   resp.Total,
		Limit:   resp.Limit,
		Offset:  resp.Offset,
	}
	for i := range resp.Resumes {
		out.Resumes[i] = resumeToSummary(&resp.Resumes[i], role)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetResume handles GET /resumes/{id}.
func (s *Server) GetResume(w http.ResponseWriter, r *http.Request) {
	res, err := s.resumes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resumeToSummary(&res, RoleFromContext(r.Context())))
}

// CreateJob handles POST /jobs. Elevated roles only.
func (s *Server) CreateJob(w http.ResponseWriter, r *http.Request) {
	ident := IdentityFromContext(r.Context())
	if !ident.Role.Elevated() {
		writeError(w, http.StatusForbidden, codeForbidden, "job creation requires a recruiter or admin key")
		return
	}

	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	job, err := s.jobs.Create(r.Context(), jobsuc.CreateInput{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Requirements: req.Requirements,
		Structured:   requirementsFromDTO(req.Structured),
		Location:     req.Location,
		Salary:       req.Salary,
		CreatedBy:    ident.Name,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/jobs/"+job.ID)
	writeJSON(w, http.StatusCreated, jobToResponse(&job))
}

// ListJobs handles GET /jobs.
func (s *Server) ListJobs(w http.ResponseWriter, r *http.Request) {
	resp, err := s.jobs.List(r.Context(), jobsuc.ListRequest{
		Status: r.URL.Query().Get("status"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	out := jobListResponse{
		Jobs:   make([]jobResponse, len(resp.Jobs)),
		Total:  resp.Total,
		Limit:  resp.Limit,
		Offset: resp.Offset,
	}
	for i := range resp.Jobs {
		out.Jobs[i] = jobToResponse(&resp.Jobs[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// GetJob handles GET /jobs/{id}.
func (s *Server) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jobToResponse(&job))
}

// MatchJob handles POST /jobs/{id}/match.
func (s *Server) MatchJob(w http.ResponseWriter, r *http.Request) {
	var req matchJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	topN := s.defaults.MatchTopN
	if req.TopN != nil {
		topN = *req.TopN
	}

	resp, err := s.match.Match(r.Context(), chi.URLParam(r, "id"), topN)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, matchResponseFrom(topN, resp, RoleFromContext(r.Context())))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrResumeNotFound,
		domain.ErrJobNotFound,
		domain.ErrNotFound,
		domain.ErrEmbeddingProviderError,
		domain.ErrExtractionFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
