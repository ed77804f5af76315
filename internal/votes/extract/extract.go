// Package extract holds what the chamber extractors share: the Extractor
// contract and tolerant helpers for loosely typed upstream fields.
package extract

import (
	"context"
	"io"
	"log/slog"

	"rollcall/internal/votes/models"
	"rollcall/internal/votes/polyvalue"
)

// Extractor turns one raw chamber document into normalised vote events and
// the relational form of the rollcall.
type Extractor interface {
	Extract(ctx context.Context, pos models.Position, raw []byte) (*models.Extraction, error)
}

// DiscardLogger is used when no logger is configured.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Count decodes a tally that may arrive as text or integer. Missing values are
// 0. Unparseable values, including leaves no profile accepts such as -1 or
// true, are also 0, but they are logged and recorded in degraded so the
// caller can count them.
func Count(ctx context.Context, logger *slog.Logger, pos models.Position, field string, v polyvalue.Lenient, degraded *[]string) uint32 {
	n, _, err := v.Uint32()
	if err != nil {
		logger.WarnContext(ctx, "count value degraded to 0",
			"rollcall", pos.Key().String(),
			"field", field,
			"value", v.String(),
			"error", err,
		)
		*degraded = append(*degraded, field)
		return 0
	}
	return n
}

// StringOr dereferences s or returns fallback when s is nil.
func StringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
