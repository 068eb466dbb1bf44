// Package batch parses many PDB files concurrently.
//
// Parsers share no state, so each file is handled by its own goroutine under
// an errgroup limit. Metrics are the only shared sink.
package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/danmuck/pdbfold/internal/observability"
	"github.com/danmuck/pdbfold/internal/pdb"
)

var ErrNoRegistry = errors.New("batch: registry is nil")

type Options struct {
	Workers  int
	FailFast bool
	Parse    pdb.Options
	Registry *pdb.Registry
}

// Result is the outcome for one input path.
type Result struct {
	Path     string
	File     *pdb.File
	Err      error
	Duration time.Duration
}

type resultWire struct {
	Path       string    `json:"path" yaml:"path"`
	File       *pdb.File `json:"file,omitempty" yaml:"file,omitempty"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`
	DurationMS float64   `json:"duration_ms" yaml:"duration_ms"`
}

func (r Result) wire() resultWire {
	w := resultWire{Path: r.Path, File: r.File, DurationMS: float64(r.Duration.Microseconds()) / 1000}
	if r.Err != nil {
		w.Error = r.Err.Error()
	}
	return w
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

func (r Result) MarshalYAML() (any, error) {
	return r.wire(), nil
}

// Summary collects results in input order.
type Summary struct {
	RunID   string   `json:"run_id" yaml:"run_id"`
	Results []Result `json:"results" yaml:"results"`
	Failed  int      `json:"failed" yaml:"failed"`
}

type Runner struct {
	opts     Options
	readFile func(string) ([]byte, error)
}

func NewRunner(opts Options) (*Runner, error) {
	if opts.Registry == nil {
		return nil, ErrNoRegistry
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Runner{opts: opts, readFile: os.ReadFile}, nil
}

// Run parses every path. Without FailFast each file fails on its own and Run
// only returns an error when ctx ends. With FailFast the first failure cancels
// the files not yet started and is returned.
func (r *Runner) Run(ctx context.Context, paths []string) (Summary, error) {
	sum := Summary{RunID: uuid.NewString(), Results: make([]Result, len(paths))}
	logger := log.With().Str("run_id", sum.RunID).Logger()
	logger.Debug().Int("files", len(paths)).Int("workers", r.opts.Workers).Bool("fail_fast", r.opts.FailFast).Msg("batch start")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			res := r.parseOne(gctx, path, logger)
			sum.Results[i] = res
			if res.Err != nil && r.opts.FailFast {
				return fmt.Errorf("%s: %w", path, res.Err)
			}
			return nil
		})
	}
	err := g.Wait()

	for _, res := range sum.Results {
		if res.Err != nil {
			sum.Failed++
		}
	}
	logger.Info().Int("files", len(paths)).Int("failed", sum.Failed).Msg("batch done")

	if err != nil {
		return sum, err
	}
	return sum, ctx.Err()
}

func (r *Runner) parseOne(ctx context.Context, path string, logger zerolog.Logger) Result {
	res := Result{Path: path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	data, err := r.readFile(path)
	if err != nil {
		res.Err = fmt.Errorf("read: %w", err)
		res.Duration = time.Since(start)
		observability.RecordFile(false, res.Duration)
		return res
	}

	f, err := pdb.Parse(data, r.opts.Registry, r.opts.Parse)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		observability.RecordFile(false, res.Duration)
		logger.Warn().Str("path", path).Err(err).Msg("parse failed")
		return res
	}
	res.File = f

	observability.RecordFile(true, res.Duration)
	for tag, n := range f.Parsed {
		observability.RecordRecords(tag, n)
	}
	observability.RecordTokens(f.Tokens())
	observability.RecordSentinels(f.Substitutions())
	skipped := 0
	for _, n := range f.Skipped {
		skipped += n
	}
	observability.RecordSkipped(skipped)

	logger.Debug().Str("path", path).Dur("took", res.Duration).Int("tokens", f.Tokens()).Msg("parsed")
	return res
}
