// ragctl is an offline companion to the API server: it ingests resume text
// files into a SQLite store and runs searches and job matches against it,
// without requiring Redis or a running server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/akash62835/ResumeRAG/internal/chunker"
	dbSqlite "github.com/akash62835/ResumeRAG/internal/db/sqlite"
	"github.com/akash62835/ResumeRAG/internal/domain"
	"github.com/akash62835/ResumeRAG/internal/embedding"
	"github.com/akash62835/ResumeRAG/internal/extract"
	jobrepo "github.com/akash62835/ResumeRAG/internal/repository/job"
	resumerepo "github.com/akash62835/ResumeRAG/internal/repository/resume"
	openaiTransport "github.com/akash62835/ResumeRAG/internal/transport/openai"
	ingestuc "github.com/akash62835/ResumeRAG/internal/usecase/ingest"
	matchuc "github.com/akash62835/ResumeRAG/internal/usecase/match"
	searchuc "github.com/akash62835/ResumeRAG/internal/usecase/search"
	"github.com/akash62835/ResumeRAG/internal/worker"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "ragctl",
		Usage: "Ingest resumes and query the matching engine from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the SQLite database file",
				Value:   "resumerag.db",
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Embedding provider API key (empty = deterministic local fallback)",
				EnvVars: []string{"RESUMERAG_API_KEY"},
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "Embedding provider base URL",
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "Embedding model name",
				Value: "text-embedding-004",
			},
			&cli.IntFlag{
				Name:  "dimensions",
				Usage: "Embedding vector dimensions",
				Value: domain.DefaultDimensions,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest resume text files",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max-chunks",
						Usage: "Chunk embedding cap per resume",
						Value: ingestuc.DefaultMaxChunks,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Chunk embedding worker pool size",
						Value: 4,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Rank resumes against a free-form query",
				ArgsUsage: "QUERY",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "k",
						Aliases: []string{"n"},
						Usage:   "Number of results",
						Value:   searchuc.DefaultK,
					},
				},
			},
			{
				Name:      "match",
				Usage:     "Rank resumes against a stored job",
				ArgsUsage: "JOB_ID",
				Action:    matchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top-n",
						Usage: "Number of matches",
						Value: matchuc.DefaultTopN,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// env assembles the shared store/embedder plumbing for every command.
type env struct {
	store    *dbSqlite.Store
	embedder domain.Embedder
	resumes  *resumerepo.Repo
	jobs     *jobrepo.Repo
}

func setup(c *cli.Context) (*env, error) {
	store, err := dbSqlite.NewStore(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", c.String("db"), err)
	}

	var provider domain.Embedder
	if key := c.String("api-key"); key != "" {
		provider = openaiTransport.NewEmbedder(&openaiTransport.Config{
			APIKey:     key,
			BaseURL:    c.String("base-url"),
			Model:      c.String("model"),
			Dimensions: c.Int("dimensions"),
			Provider:   "openai",
			Logger:     zap.NewNop(),
		})
	}
	embedder := embedding.NewResilient(provider, c.Int("dimensions"), 0, 30*time.Second, zap.NewNop())

	return &env{
		store:    store,
		embedder: embedder,
		resumes:  resumerepo.New(store, ""),
		jobs:     jobrepo.New(store, ""),
	}, nil
}

func (e *env) close() {
	e.store.Close()
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one resume file is required")
	}

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	pool, err := worker.NewPool(c.Int("pool-size"))
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	svc := ingestuc.New(
		e.resumes, e.embedder, extract.NewRegex(),
		chunker.New(chunker.DefaultWindowSize, chunker.DefaultOverlap),
		pool, c.Int("max-chunks"), 0, zap.NewNop(),
	)

	var inputs []ingestuc.Input
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		inputs = append(inputs, ingestuc.Input{Filename: filepath.Base(path), Text: string(data)})
	}

	processed, failures := svc.IngestAll(context.Background(), inputs)
	for _, res := range processed {
		fmt.Printf("%s  %s  (%s, %d chunks)\n", res.ID, res.Filename, res.CandidateName(), len(res.Chunks))
	}
	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "failed: %s: %v\n", f.Filename, f.Err)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d files failed", len(failures), len(inputs))
	}
	return nil
}

func askCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one query argument is required")
	}

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	svc := searchuc.New(e.resumes, e.embedder, nil)
	resp, err := svc.Search(context.Background(), c.Args().First(), c.Int("k"))
	if err != nil {
		return err
	}

	fmt.Printf("searched %d resumes\n", resp.TotalSearched)
	for i, r := range resp.Results {
		fmt.Printf("%2d. %.4f  %s  %s\n", i+1, r.Score, r.ResumeID, r.CandidateName)
		for _, ev := range r.Evidence {
			fmt.Printf("      [%.4f] %s\n", ev.Score, ev.Snippet)
		}
	}
	return nil
}

func matchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one job id argument is required")
	}

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	svc := matchuc.New(e.jobs, e.resumes, nil)
	resp, err := svc.Match(context.Background(), c.Args().First(), c.Int("top-n"))
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s (%d candidates)\n", resp.Job.ID, resp.Job.Title, resp.TotalCandidates)
	for i, m := range resp.Matches {
		fmt.Printf("%2d. %.4f  %s  %s  (semantic %.2f, skills %.2f, experience %.2f)\n",
			i+1, m.Overall, m.ResumeID, m.CandidateName,
			m.Breakdown.Semantic, m.Breakdown.Skills, m.Breakdown.Experience)
		if len(m.MatchedSkills) > 0 {
			fmt.Printf("      skills: %v\n", m.MatchedSkills)
		}
	}
	return nil
}
