package chi

// Shared test fixtures: an in-memory corpus behind the repository interfaces,
// a fixed-vector embedder, and a fully wired Server mounted on a chi router.

import (
	"context"
	"net/http/httptest"
	"sync"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/akash62835/ResumeRAG/internal/chunker"
	"github.com/akash62835/ResumeRAG/internal/domain"
	"github.com/akash62835/ResumeRAG/internal/extract"
	healthuc "github.com/akash62835/ResumeRAG/internal/usecase/health"
	ingestuc "github.com/akash62835/ResumeRAG/internal/usecase/ingest"
	jobsuc "github.com/akash62835/ResumeRAG/internal/usecase/jobs"
	matchuc "github.com/akash62835/ResumeRAG/internal/usecase/match"
	resumesuc "github.com/akash62835/ResumeRAG/internal/usecase/resumes"
	searchuc "github.com/akash62835/ResumeRAG/internal/usecase/search"
)

type memCorpus struct {
	mu      sync.Mutex
	resumes map[string]domain.Resume
	jobs    map[string]domain.Job
}

func newMemCorpus() *memCorpus {
	return &memCorpus{
		resumes: make(map[string]domain.Resume),
		jobs:    make(map[string]domain.Job),
	}
}

func (m *memCorpus) Save(_ context.Context, res *domain.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resumes[res.ID] = *res
	return nil
}

func (m *memCorpus) Get(_ context.Context, id string) (domain.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.resumes[id]
	if !ok {
		return domain.Resume{}, domain.ErrResumeNotFound
	}
	return res, nil
}

func (m *memCorpus) List(_ context.Context) ([]domain.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Resume, 0, len(m.resumes))
	for _, r := range m.resumes {
		out = append(out, r)
	}
	return out, nil
}

type memJobs struct{ c *memCorpus }

func (m memJobs) Save(_ context.Context, job *domain.Job) error {
	m.c.mu.Lock()
	defer m.c.mu.Unlock()
	m.c.jobs[job.ID] = *job
	return nil
}

func (m memJobs) Get(_ context.Context, id string) (domain.Job, error) {
	m.c.mu.Lock()
	defer m.c.mu.Unlock()
	job, ok := m.c.jobs[id]
	if !ok {
		return domain.Job{}, domain.ErrJobNotFound
	}
	return job, nil
}

func (m memJobs) List(_ context.Context) ([]domain.Job, error) {
	m.c.mu.Lock()
	defer m.c.mu.Unlock()
	out := make([]domain.Job, 0, len(m.c.jobs))
	for _, j := range m.c.jobs {
		out = append(out, j)
	}
	return out, nil
}

// unitEmbedder always returns the same unit vector, which makes every cosine
// similarity 1 and keeps HTTP-level assertions independent of vector math.
type unitEmbedder struct{}

func (unitEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{Embedding: []float32{1, 0, 0}}, nil
}

type okPinger struct{}

func (okPinger) Ping(_ context.Context) error { return nil }

func newTestServer(corpus *memCorpus) *httptest.Server {
	return newTestServerDefaults(corpus, Defaults{})
}

func newTestServerDefaults(corpus *memCorpus, defaults Defaults) *httptest.Server {
	logger := zap.NewNop()
	embed := unitEmbedder{}
	jobs := memJobs{c: corpus}

	server := NewServer(
		searchuc.New(corpus, embed, nil),
		matchuc.New(jobs, corpus, nil),
		ingestuc.New(corpus, embed, extract.NewRegex(), chunker.New(0, 0), nil, 0, 0, logger),
		resumesuc.New(corpus),
		jobsuc.New(jobs, embed),
		healthuc.New(okPinger{}, nil),
		defaults,
		logger,
	)

	r := chirouter.NewRouter()
	r.Use(BearerAuthMiddleware(testKeys()))
	server.Routes(r)
	return httptest.NewServer(r)
}

func testKeys() []APIKey {
	return []APIKey{
		{Key: "viewer-key", Role: "viewer"},
		{Key: "recruiter-key", Name: "recruiting", Role: "recruiter"},
		{Key: "admin-key", Role: "admin"},
	}
}

func seedResume(corpus *memCorpus, id, name, email string, vec []float32) {
	corpus.resumes[id] = domain.Resume{
		ID:       id,
		Filename: id + ".txt",
		RawText:  name + " resume text",
		Parsed: domain.ParsedData{
			Name:   name,
			Email:  email,
			Skills: []string{"Go", "Docker"},
			Experience: []domain.ExperienceEntry{
				{Company: "Acme", Description: "built things"},
			},
		},
		Embedding:  vec,
		UploadedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func seedJob(corpus *memCorpus, id, title string, vec []float32) {
	corpus.jobs[id] = domain.Job{
		ID:           id,
		Title:        title,
		Company:      "Acme",
		Description:  "Build backend services",
		Requirements: "Go experience",
		Structured: domain.Requirements{
			Skills: []string{"Go"},
		},
		Status:    domain.JobStatusOpen,
		Embedding: vec,
		CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}
