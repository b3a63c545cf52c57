package telemetry_test

import (
	"context"
	"testing"

	"github.com/catering/backend/internal/infrastructure/persistence"
	"github.com/catering/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func TestRegisterGormTracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	db, err := persistence.NewSQLiteDatabase(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, telemetry.RegisterGormTracing(db.DB, tp, telemetry.DBTracingConfig{DBName: "catering"}, zap.NewNop()))

	ctx, parent := tp.Tracer("test").Start(context.Background(), "order.lookup")
	exists, err := persistence.NewGormOrderRepository(db.DB).ExistsByOrderNumber(ctx, "ORD-404")
	parent.End()

	require.NoError(t, err)
	assert.False(t, exists)

	var dbSpans []sdktrace.ReadOnlySpan
	for _, s := range recorder.Ended() {
		if s.Parent().SpanID() == parent.SpanContext().SpanID() {
			dbSpans = append(dbSpans, s)
		}
	}
	require.NotEmpty(t, dbSpans, "query should run in a child span")
	assert.Equal(t, trace.SpanKindClient, dbSpans[0].SpanKind())
	assert.Equal(t, parent.SpanContext().TraceID(), dbSpans[0].SpanContext().TraceID())
}
