package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"

	"rollcall/internal/votes/models"
)

func TestPositionAttributes(t *testing.T) {
	attrs := Position(models.Position{Congress: 116, Chamber: models.ChamberHouse, Session: 2, Rollcall: 1})

	assert.Len(t, attrs, 4)
	assert.Equal(t, "house", attrs[0].Value.AsString())
	assert.Equal(t, int64(116), attrs[1].Value.AsInt64())
	assert.Equal(t, int64(1), attrs[3].Value.AsInt64())
}

func TestTracerWithNoopProvider(t *testing.T) {
	tracer := Tracer(noop.NewTracerProvider())
	_, span := tracer.Start(context.Background(), "extract")
	assert.NotPanics(t, func() { End(span, errors.New("boom")) })
}

func TestStartUsesGlobalProvider(t *testing.T) {
	ctx, span := Start(context.Background(), "run", AttrRunID.String("r1"))
	assert.NotNil(t, ctx)
	End(span, nil)
}
