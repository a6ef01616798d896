// Package match ranks the resume corpus against a job posting using the
// composite semantic/skills/experience score.
package match

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/akash62835/ResumeRAG/internal/domain"
	"github.com/akash62835/ResumeRAG/internal/evidence"
	"github.com/akash62835/ResumeRAG/internal/metrics"
	"github.com/akash62835/ResumeRAG/internal/worker"
)

// DefaultTopN is the number of matches returned when the request does not ask
// for a specific count.
const DefaultTopN = 10

// Breakdown exposes the individual signals behind an overall score.
type Breakdown struct {
	Semantic   float64
	Skills     float64
	Experience float64
}

// Match is one ranked candidate for a job.
type Match struct {
	ResumeID      string
	CandidateName string
	Overall       float64
	Breakdown     Breakdown
	MatchedSkills []string
	Missing       []domain.MissingRequirement
	Evidence      []evidence.Snippet
	Parsed        domain.ParsedData
}

// Response is a ranked candidate list for one job.
type Response struct {
	Job             domain.Job
	TotalCandidates int
	Matches         []Match
}

// Service matches resumes to jobs.
type Service struct {
	jobs    JobReader
	resumes ResumeReader
	pool    *ants.Pool
}

// New creates a match service. pool may be nil, which degrades scoring to a
// sequential scan.
func New(jobs JobReader, resumes ResumeReader, pool *ants.Pool) *Service {
	return &Service{jobs: jobs, resumes: resumes, pool: pool}
}

// Match scores every embedded resume against the job and returns the top n in
// deterministic order.
func (s *Service) Match(ctx context.Context, jobID string, topN int) (Response, error) {
	if topN < 1 {
		return Response{}, fmt.Errorf("%w: top_n must be at least 1", domain.ErrValidation)
	}

	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return Response{}, err
	}

	start := time.Now()
	defer func() {
		metrics.SearchDuration.WithLabelValues("match").Observe(time.Since(start).Seconds())
	}()

	all, err := s.resumes.List(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("list resumes: %w", err)
	}

	eligible := all[:0:0]
	for _, r := range all {
		if r.HasEmbedding() {
			eligible = append(eligible, r)
		}
	}
	metrics.SearchDocumentsScanned.WithLabelValues("match").Add(float64(len(eligible)))

	matches := make([]Match, len(eligible))
	worker.ForEach(s.pool, len(eligible), func(i int) {
		matches[i] = scoreResume(&job, &eligible[i])
	})

	sort.Slice(matches, func(i, j int) bool {
		return domain.RankLess(matches[i].Overall, matches[j].Overall, matches[i].ResumeID, matches[j].ResumeID)
	})
	if len(matches) > topN {
		matches = matches[:topN]
	}

	return Response{Job: job, TotalCandidates: len(eligible), Matches: matches}, nil
}

func scoreResume(job *domain.Job, r *domain.Resume) Match {
	semantic := domain.Cosine(job.Embedding, r.Embedding)

	matchedSkills, missingSkills := domain.MatchTerms(job.Structured.Skills, r.Parsed.Skills)
	skills := domain.SkillsScore(len(matchedSkills), len(job.Structured.Skills))
	experience := domain.ExperienceScore(job.Structured.Experience.MinYears, len(r.Parsed.Experience))

	var missing []domain.MissingRequirement
	if len(missingSkills) > 0 {
		missing = append(missing, domain.MissingRequirement{Category: "skills", Items: missingSkills})
	}
	if _, missingCerts := domain.MatchTerms(job.Structured.Certifications, r.Parsed.Certifications); len(missingCerts) > 0 {
		missing = append(missing, domain.MissingRequirement{Category: "certifications", Items: missingCerts})
	}

	return Match{
		ResumeID:      r.ID,
		CandidateName: r.CandidateName(),
		Overall:       domain.CompositeScore(semantic, skills, experience),
		Breakdown:     Breakdown{Semantic: semantic, Skills: skills, Experience: experience},
		MatchedSkills: matchedSkills,
		Missing:       missing,
		Evidence:      evidence.Extract(job.Embedding, r.Chunks, evidence.MatchThreshold),
		Parsed:        r.Parsed,
	}
}
