package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ToolCallOutcome is the result of a single tool call as reported in metrics.
type ToolCallOutcome string

const (
	ToolCallOutcomeSuccess ToolCallOutcome = "success"
	ToolCallOutcomeError   ToolCallOutcome = "error"
)

// ToolKind tells whether a tool is computed in-process or forwarded to the DeepPath API.
type ToolKind string

const (
	ToolKindLocal  ToolKind = "local"
	ToolKindRemote ToolKind = "remote"
)

// CustomMetrics records the adapter's own metrics.
type CustomMetrics interface {
	RecordToolCall(ctx context.Context, tool string, kind ToolKind, outcome ToolCallOutcome, elapsed time.Duration)
}

type noopCustomMetrics struct{}

// NewNoopCustomMetrics returns a CustomMetrics implementation that records nothing.
func NewNoopCustomMetrics() CustomMetrics {
	return noopCustomMetrics{}
}

func (noopCustomMetrics) RecordToolCall(context.Context, string, ToolKind, ToolCallOutcome, time.Duration) {
}

type otelCustomMetrics struct {
	toolCalls        metric.Int64Counter
	toolCallDuration metric.Float64Histogram
}

// NewOtelCustomMetrics creates the adapter's instruments on the given meter.
func NewOtelCustomMetrics(meter metric.Meter) (CustomMetrics, error) {
	toolCalls, err := meter.Int64Counter(
		"deeppath_tool_calls_total",
		metric.WithDescription("Number of tool calls handled by the adapter"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool call counter: %w", err)
	}

	toolCallDuration, err := meter.Float64Histogram(
		"deeppath_tool_call_duration_seconds",
		metric.WithDescription("Duration of tool calls handled by the adapter"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool call duration histogram: %w", err)
	}

	return &otelCustomMetrics{
		toolCalls:        toolCalls,
		toolCallDuration: toolCallDuration,
	}, nil
}

func (m *otelCustomMetrics) RecordToolCall(
	ctx context.Context, tool string, kind ToolKind, outcome ToolCallOutcome, elapsed time.Duration,
) {
	attrs := metric.WithAttributes(
		attribute.String("tool_name", tool),
		attribute.String("tool_kind", string(kind)),
		attribute.String("outcome", string(outcome)),
	)
	m.toolCalls.Add(ctx, 1, attrs)
	m.toolCallDuration.Record(ctx, elapsed.Seconds(), attrs)
}
