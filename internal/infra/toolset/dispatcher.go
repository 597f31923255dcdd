package toolset

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"yunitemcp/internal/domain"
	"yunitemcp/internal/infra/telemetry"
)

const unknownToolLabel = "unknown"

// Executor performs one authenticated backend request.
type Executor interface {
	Execute(ctx context.Context, method, path string, body any, query url.Values) domain.Result
}

type DispatcherOptions struct {
	Catalog           *Catalog
	Executor          Executor
	ValidateArguments bool
	Metrics           domain.Metrics
	Logger            *zap.Logger
	Clock             func() time.Time
}

// Dispatcher resolves a tool name against the read table, then the write
// table, and forwards the shaped request to the executor.
type Dispatcher struct {
	catalog  *Catalog
	executor Executor
	validate bool
	metrics  domain.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

func NewDispatcher(opts DispatcherOptions) (*Dispatcher, error) {
	if opts.Catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if opts.Executor == nil {
		return nil, errors.New("executor is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Dispatcher{
		catalog:  opts.Catalog,
		executor: opts.Executor,
		validate: opts.ValidateArguments,
		metrics:  metrics,
		logger:   logger.Named("toolset"),
		now:      clock,
	}, nil
}

// Catalog returns the catalogue the dispatcher resolves names against.
func (d *Dispatcher) Catalog() *Catalog {
	return d.catalog
}

// Dispatch runs one tool call. It always returns an envelope; nothing about
// the call is reported through a Go error.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) domain.Result {
	ctx, _ = telemetry.EnsureRequestMeta(ctx, name)
	logger := telemetry.LoggerWithRequest(ctx, d.logger)
	started := d.now()

	item, group, ok := d.resolve(name)
	if !ok {
		logger.Warn("unknown tool", telemetry.EventField(telemetry.EventUnknownTool))
		d.observe(unknownToolLabel, "", domain.OutcomeUnknownTool, started)
		return domain.Failf("Unknown tool: %s", name)
	}

	args = StripNulls(args)
	if d.validate {
		if err := item.resolved.Validate(args); err != nil {
			logger.Info("invalid tool arguments",
				telemetry.EventField(telemetry.EventValidation),
				zap.Error(err),
			)
			d.observe(name, group, domain.OutcomeValidation, started)
			return domain.ValidationFailure(fmt.Sprintf("Invalid arguments for %s: %v", name, err), err.Error())
		}
	}

	req, err := item.build(args)
	if err != nil {
		d.observe(name, group, domain.OutcomeError, started)
		return domain.Fail(errorMessage(err))
	}

	result := d.executor.Execute(ctx, req.Method, req.Path, req.Body, req.Query)
	outcome := result.Outcome()
	d.observe(name, group, outcome, started)
	logger.Info("tool call",
		telemetry.EventField(telemetry.EventToolCall),
		telemetry.GroupField(string(group)),
		telemetry.MethodField(req.Method),
		telemetry.PathField(req.Path),
		telemetry.OutcomeField(string(outcome)),
		telemetry.DurationField(d.now().Sub(started)),
		zap.Any("arguments", telemetry.RedactArguments(args)),
	)
	return result
}

// resolve tries the read table first, then the write table.
func (d *Dispatcher) resolve(name string) (*entry, domain.ToolGroup, bool) {
	for _, group := range domain.ToolGroups {
		if item, ok := d.catalog.lookup(group, name); ok {
			return item, group, true
		}
	}
	return nil, "", false
}

func (d *Dispatcher) observe(tool string, group domain.ToolGroup, outcome domain.CallOutcome, started time.Time) {
	d.metrics.ObserveToolCall(domain.ToolCallMetric{
		Tool:     tool,
		Group:    group,
		Outcome:  outcome,
		Duration: d.now().Sub(started),
	})
}

func errorMessage(err error) string {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		return domainErr.Message
	}
	return err.Error()
}
