package match

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

type fakeJobs struct {
	job domain.Job
	err error
}

func (f *fakeJobs) Get(_ context.Context, _ string) (domain.Job, error) {
	return f.job, f.err
}

type fakeResumes struct {
	resumes []domain.Resume
	err     error
}

func (f *fakeResumes) List(_ context.Context) ([]domain.Resume, error) {
	return f.resumes, f.err
}

func openJob() domain.Job {
	return domain.Job{
		ID:        "j1",
		Title:     "Backend Engineer",
		Embedding: []float32{1, 0},
		Structured: domain.Requirements{
			Skills:         []string{"Go", "PostgreSQL"},
			Experience:     domain.ExperienceRequirement{MinYears: 4},
			Certifications: []string{"AWS"},
		},
	}
}

func TestMatchCompositeScore(t *testing.T) {
	resumes := []domain.Resume{
		{
			ID:        "r1",
			Embedding: []float32{1, 0}, // semantic 1.0
			Parsed: domain.ParsedData{
				Name:   "Alice",
				Skills: []string{"Golang", "MySQL"}, // Go matches, PostgreSQL missing
				Experience: []domain.ExperienceEntry{
					{Company: "A"}, {Company: "B"}, // 2/4 = 0.5
				},
			},
		},
	}
	svc := New(&fakeJobs{job: openJob()}, &fakeResumes{resumes: resumes}, nil)

	resp, err := svc.Match(context.Background(), "j1", 10)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if resp.TotalCandidates != 1 {
		t.Fatalf("TotalCandidates = %d, want 1", resp.TotalCandidates)
	}

	m := resp.Matches[0]
	// 0.5*1.0 + 0.3*0.5 + 0.2*0.5 = 0.75
	if math.Abs(m.Overall-0.75) > 1e-9 {
		t.Errorf("Overall = %f, want 0.75", m.Overall)
	}
	if m.Breakdown.Semantic < 0.99 || m.Breakdown.Skills != 0.5 || m.Breakdown.Experience != 0.5 {
		t.Errorf("Breakdown = %+v", m.Breakdown)
	}
	if len(m.MatchedSkills) != 1 || m.MatchedSkills[0] != "Go" {
		t.Errorf("MatchedSkills = %v, want [Go]", m.MatchedSkills)
	}
}

func TestMatchMissingRequirements(t *testing.T) {
	resumes := []domain.Resume{
		{ID: "r1", Embedding: []float32{1, 0}, Parsed: domain.ParsedData{Skills: []string{"Go"}}},
	}
	svc := New(&fakeJobs{job: openJob()}, &fakeResumes{resumes: resumes}, nil)

	resp, err := svc.Match(context.Background(), "j1", 10)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}

	missing := resp.Matches[0].Missing
	if len(missing) != 2 {
		t.Fatalf("len(Missing) = %d, want 2: %+v", len(missing), missing)
	}
	if missing[0].Category != "skills" || missing[0].Items[0] != "PostgreSQL" {
		t.Errorf("skills category = %+v", missing[0])
	}
	if missing[1].Category != "certifications" || missing[1].Items[0] != "AWS" {
		t.Errorf("certifications category = %+v", missing[1])
	}
}

func TestMatchOrderingAndTopN(t *testing.T) {
	resumes := []domain.Resume{
		{ID: "low", Embedding: []float32{0, 1}},
		{ID: "high", Embedding: []float32{1, 0}, Parsed: domain.ParsedData{
			Skills:     []string{"Go", "PostgreSQL"},
			Experience: []domain.ExperienceEntry{{}, {}, {}, {}},
		}},
		{ID: "mid", Embedding: []float32{1, 1}},
	}
	svc := New(&fakeJobs{job: openJob()}, &fakeResumes{resumes: resumes}, nil)

	resp, err := svc.Match(context.Background(), "j1", 2)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(resp.Matches) != 2 {
		t.Fatalf("len(Matches) = %d, want 2", len(resp.Matches))
	}
	if resp.Matches[0].ResumeID != "high" || resp.Matches[1].ResumeID != "mid" {
		t.Errorf("order = [%s %s], want [high mid]",
			resp.Matches[0].ResumeID, resp.Matches[1].ResumeID)
	}
	if resp.TotalCandidates != 3 {
		t.Errorf("TotalCandidates = %d, want 3", resp.TotalCandidates)
	}
}

func TestMatchEvidenceThreshold(t *testing.T) {
	resumes := []domain.Resume{
		{
			ID:        "r1",
			Embedding: []float32{1, 0},
			Chunks: []domain.Chunk{
				{Text: "strong match", Embedding: []float32{1, 0}},
				{Text: "weak match", Embedding: []float32{0, 1}},
			},
		},
	}
	svc := New(&fakeJobs{job: openJob()}, &fakeResumes{resumes: resumes}, nil)

	resp, err := svc.Match(context.Background(), "j1", 10)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	ev := resp.Matches[0].Evidence
	if len(ev) != 1 || ev[0].Snippet != "strong match" {
		t.Errorf("Evidence = %+v, want only the above-threshold chunk", ev)
	}
}

func TestMatchUnknownJob(t *testing.T) {
	svc := New(&fakeJobs{err: domain.ErrJobNotFound}, &fakeResumes{}, nil)

	if _, err := svc.Match(context.Background(), "missing", 10); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("err = %v, want ErrJobNotFound", err)
	}
}

func TestMatchValidation(t *testing.T) {
	jobs := &fakeJobs{job: openJob()}
	svc := New(jobs, &fakeResumes{}, nil)

	if _, err := svc.Match(context.Background(), "j1", 0); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("top_n=0: err = %v, want ErrValidation", err)
	}
}
