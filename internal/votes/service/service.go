// Package service runs one ingestion: concurrent decode of every input file,
// fan-in to a single consumer that aggregates or inserts, then the sinks.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"rollcall/internal/platform/tracing"
	"rollcall/internal/votes/extract"
	"rollcall/internal/votes/metrics"
	"rollcall/internal/votes/models"
	"rollcall/pkg/platform/sentinel"
)

// RunStore is the relational sink. All calls made from the fn passed to InTx
// share one transaction.
type RunStore interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
	StartRun(ctx context.Context, run models.Run) error
	FinishRun(ctx context.Context, run models.Run) error
	WriteRollcall(ctx context.Context, runID string, info models.VoteInfo) error
}

// TreeWriter is the JSON sink.
type TreeWriter interface {
	Write(ctx context.Context, root *models.Root) error
}

// EventPublisher is the optional event sink fed once the tree is written.
type EventPublisher interface {
	PublishTree(ctx context.Context, runID string, root *models.Root) (int, error)
}

type Service struct {
	house     extract.Extractor
	senate    extract.Extractor
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	publisher EventPublisher
	workers   int

	readFile func(name string) ([]byte, error)
	now      func() time.Time
	newRunID func() string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithWorkers bounds the number of files decoded concurrently. Values below
// one are ignored.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithPublisher enables the event sink for JSON runs.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(house, senate extract.Extractor, opts ...Option) (*Service, error) {
	if house == nil {
		return nil, errors.New("house extractor is required")
	}
	if senate == nil {
		return nil, errors.New("senate extractor is required")
	}
	s := &Service{
		house:    house,
		senate:   senate,
		logger:   extract.DiscardLogger(),
		tracer:   tracing.Tracer(nil),
		workers:  runtime.NumCPU(),
		readFile: os.ReadFile,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) extractor(chamber models.Chamber) (extract.Extractor, error) {
	switch chamber {
	case models.ChamberHouse:
		return s.house, nil
	case models.ChamberSenate:
		return s.senate, nil
	default:
		return nil, fmt.Errorf("%w: %q", sentinel.ErrUnknownChamber, chamber)
	}
}

// Input names the documents of one run. Files are paths below Root.
type Input struct {
	Root  string
	Files []string
}

// Report summarises one run.
type Report struct {
	RunID          string
	FilesSeen      int
	FilesProcessed int
	FilesSkipped   int
	Rollcalls      int
	Votes          int
	Members        int
	Published      int
	Duration       time.Duration
}

// run carries the per-run state shared by the consumer callbacks.
type run struct {
	report  Report
	started time.Time
	logger  *slog.Logger
}

func (s *Service) startRun(ctx context.Context, mode string, in Input) *run {
	r := &run{
		report:  Report{RunID: s.newRunID(), FilesSeen: len(in.Files)},
		started: s.now(),
	}
	r.logger = s.logger.With("run_id", r.report.RunID)
	s.metrics.IncrementFilesSeen(len(in.Files))
	r.logger.InfoContext(ctx, "run started", "mode", mode, "root", in.Root, "files", len(in.Files), "workers", s.workers)
	return r
}

func (s *Service) finishRun(ctx context.Context, r *run, err error) {
	r.report.Duration = s.now().Sub(r.started)
	s.metrics.ObserveRunDuration(r.report.Duration)
	attrs := []any{
		"files_processed", r.report.FilesProcessed,
		"files_skipped", r.report.FilesSkipped,
		"votes", r.report.Votes,
		"duration", r.report.Duration,
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "run failed", append(attrs, "error", err)...)
		return
	}
	r.logger.InfoContext(ctx, "run finished", attrs...)
}

func (r *run) model(finished time.Time) models.Run {
	return models.Run{
		ID:             r.report.RunID,
		StartedAt:      r.started,
		FinishedAt:     finished,
		FilesSeen:      r.report.FilesSeen,
		FilesProcessed: r.report.FilesProcessed,
		FilesSkipped:   r.report.FilesSkipped,
	}
}
