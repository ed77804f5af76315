package service

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"rollcall/internal/platform/tracing"
	"rollcall/internal/votes/aggregate"
	"rollcall/internal/votes/models"
)

// BuildTree aggregates every admissible file of in into a fresh tree.
// Per-file failures skip the file; nothing else can fail the build short of
// context cancellation.
func (s *Service) BuildTree(ctx context.Context, in Input) (*models.Root, Report, error) {
	r := s.startRun(ctx, "json", in)
	root, err := s.buildTree(ctx, r, in)
	s.finishRun(ctx, r, err)
	return root, r.report, err
}

func (s *Service) buildTree(ctx context.Context, r *run, in Input) (_ *models.Root, err error) {
	ctx, span := s.tracer.Start(ctx, "rollcall.build_tree", trace.WithAttributes(
		tracing.AttrRunID.String(r.report.RunID),
		tracing.AttrFiles.Int(len(in.Files)),
	))
	defer func() { tracing.End(span, err) }()

	root := models.NewRoot()
	err = s.each(ctx, in, func(ctx context.Context, d decoded) error {
		ok, err := s.admit(ctx, r, d)
		if !ok {
			return err
		}
		for _, v := range d.out.Votes {
			aggregate.Insert(v, root)
		}
		r.report.Votes += len(d.out.Votes)
		s.metrics.AddVotesAggregated(len(d.out.Votes))
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.report.Rollcalls = aggregate.Summarize(root).Rollcalls
	span.SetAttributes(tracing.AttrVotes.Int(r.report.Votes))
	return root, nil
}

// ExportJSON builds the tree, hands it to sink and then, when a publisher is
// configured, publishes every record. Sink and publish failures are fatal.
func (s *Service) ExportJSON(ctx context.Context, in Input, sink TreeWriter) (Report, error) {
	r := s.startRun(ctx, "json", in)
	err := s.exportJSON(ctx, r, in, sink)
	s.finishRun(ctx, r, err)
	return r.report, err
}

func (s *Service) exportJSON(ctx context.Context, r *run, in Input, sink TreeWriter) error {
	root, err := s.buildTree(ctx, r, in)
	if err != nil {
		return err
	}
	if err := sink.Write(ctx, root); err != nil {
		return err
	}
	if s.publisher == nil {
		return nil
	}
	n, err := s.publisher.PublishTree(ctx, r.report.RunID, root)
	r.report.Published = n
	for range n {
		s.metrics.IncrementRecordsPublished()
	}
	return err
}

// IngestSQL writes the relational form of every admissible file inside one
// transaction. Any insertion failure rolls back the whole run.
func (s *Service) IngestSQL(ctx context.Context, in Input, store RunStore) (Report, error) {
	r := s.startRun(ctx, "sql", in)
	err := s.ingestSQL(ctx, r, in, store)
	s.finishRun(ctx, r, err)
	return r.report, err
}

func (s *Service) ingestSQL(ctx context.Context, r *run, in Input, store RunStore) (err error) {
	ctx, span := s.tracer.Start(ctx, "rollcall.ingest_sql", trace.WithAttributes(
		tracing.AttrRunID.String(r.report.RunID),
		tracing.AttrFiles.Int(len(in.Files)),
	))
	defer func() { tracing.End(span, err) }()

	return store.InTx(ctx, func(ctx context.Context) error {
		if err := store.StartRun(ctx, r.model(r.started)); err != nil {
			return err
		}
		err := s.each(ctx, in, func(ctx context.Context, d decoded) error {
			ok, err := s.admit(ctx, r, d)
			if !ok {
				return err
			}
			if err := store.WriteRollcall(ctx, r.report.RunID, d.out.Info); err != nil {
				r.logger.ErrorContext(ctx, "insert failed", "path", d.path, "rollcall", d.pos.Key().String(), "error", err)
				return err
			}
			r.report.Rollcalls++
			r.report.Votes += len(d.out.Votes)
			r.report.Members += len(d.out.Info.Members)
			s.metrics.AddMembersInserted(len(d.out.Info.Members))
			return nil
		})
		if err != nil {
			return err
		}
		return store.FinishRun(ctx, r.model(s.now()))
	})
}
