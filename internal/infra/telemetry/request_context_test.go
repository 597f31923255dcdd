package telemetry

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestEnsureRequestMetaGeneratesID(t *testing.T) {
	ctx, meta := EnsureRequestMeta(context.Background(), "list_departments")
	require.NotEmpty(t, meta.RequestID)
	require.Equal(t, "list_departments", meta.Tool)

	got, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, meta.RequestID, got)
}

func TestEnsureRequestMetaReusesExistingID(t *testing.T) {
	ctx := WithRequestMeta(context.Background(), RequestMeta{RequestID: "req-123"})
	_, meta := EnsureRequestMeta(ctx, "get_my_profile")
	require.Equal(t, "req-123", meta.RequestID)
	require.Equal(t, "get_my_profile", meta.Tool)
}

func TestTraceSpanFromContext(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("0123456789abcdef")
	require.NoError(t, err)
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	gotTraceID, gotSpanID := TraceSpanFromContext(ctx)
	require.Equal(t, traceID.String(), gotTraceID)
	require.Equal(t, spanID.String(), gotSpanID)

	_, meta := EnsureRequestMeta(ctx, "")
	require.Equal(t, traceID.String(), meta.TraceID)
}

func TestInjectRequestID(t *testing.T) {
	header := http.Header{}
	InjectRequestID(context.Background(), header)
	require.Empty(t, header.Get(RequestIDHeader))

	ctx := WithRequestMeta(context.Background(), RequestMeta{RequestID: "req-9"})
	InjectRequestID(ctx, header)
	require.Equal(t, "req-9", header.Get(RequestIDHeader))
}

func TestRequestFields(t *testing.T) {
	fields := RequestFields(RequestMeta{
		RequestID: "req-1",
		Tool:      "list_users",
		TraceID:   "trace-1",
		SpanID:    "span-1",
	})
	require.Len(t, fields, 4)
	require.Equal(t, FieldRequestID, fields[0].Key)
	require.Equal(t, FieldTool, fields[1].Key)
	require.Equal(t, FieldTraceID, fields[2].Key)
	require.Equal(t, FieldSpanID, fields[3].Key)
}
