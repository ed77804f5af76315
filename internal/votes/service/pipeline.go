package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"rollcall/internal/platform/tracing"
	"rollcall/internal/votes/models"
	"rollcall/internal/votes/source"
	"rollcall/pkg/platform/sentinel"
)

type decoded struct {
	index int
	path  string
	pos   models.Position
	out   *models.Extraction
	err   error
}

// each decodes in.Files on up to s.workers goroutines and hands the results
// to fn one at a time, in input order, on the calling goroutine. The first
// error returned by fn stops the run.
func (s *Service) each(ctx context.Context, in Input, fn func(ctx context.Context, d decoded) error) error {
	decodeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan decoded, s.workers)
	g, gctx := errgroup.WithContext(decodeCtx)
	g.SetLimit(s.workers)

	go func() {
		defer close(results)
		for i, path := range in.Files {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				d := s.decode(gctx, in.Root, path)
				d.index = i
				select {
				case results <- d:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		_ = g.Wait()
	}()

	// Results arrive in completion order; pending holds them until every
	// earlier file has been consumed.
	pending := make(map[int]decoded)
	next := 0
	var err error
	for d := range results {
		if err != nil {
			continue
		}
		pending[d.index] = d
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if err = fn(ctx, r); err != nil {
				cancel()
				break
			}
		}
	}
	if err != nil {
		return err
	}
	if next < len(in.Files) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("decoded %d of %d files", next, len(in.Files))
	}
	return nil
}

func (s *Service) decode(ctx context.Context, root, path string) decoded {
	ctx, span := s.tracer.Start(ctx, "rollcall.decode", trace.WithAttributes(tracing.AttrPath.String(path)))
	d := decoded{path: path}
	defer func() { tracing.End(span, d.err) }()

	d.pos, d.err = source.ParsePath(root, path)
	if d.err != nil {
		return d
	}
	span.SetAttributes(tracing.Position(d.pos)...)

	ext, err := s.extractor(d.pos.Chamber)
	if err != nil {
		d.err = err
		return d
	}
	raw, err := s.readFile(path)
	if err != nil {
		d.err = fmt.Errorf("%w: %s: %w", sentinel.ErrUnreadable, path, err)
		return d
	}
	d.out, d.err = ext.Extract(ctx, d.pos, raw)
	if d.err == nil {
		span.SetAttributes(tracing.AttrVotes.Int(len(d.out.Votes)))
	}
	return d
}

// admit applies the per-file error policy. It reports false for a skipped
// file and returns any error that is not local to the file.
func (s *Service) admit(ctx context.Context, r *run, d decoded) (bool, error) {
	if d.err != nil {
		if !sentinel.IsFileLocal(d.err) {
			return false, d.err
		}
		reason := sentinel.Reason(d.err)
		r.report.FilesSkipped++
		s.metrics.IncrementFilesSkipped(reason)
		r.logger.WarnContext(ctx, "skipping file",
			"path", d.path,
			"reason", reason,
			"error", d.err,
		)
		return false, nil
	}

	r.report.FilesProcessed++
	s.metrics.IncrementFilesProcessed()
	for _, field := range d.out.Degraded {
		s.metrics.IncrementCountDegraded(field)
	}
	return true, nil
}
