// Package extract turns raw field notes into validated records through one
// Anthropic round-trip per note. Every fault is classified into a Failure;
// no error crosses the Normalize boundary.
package extract

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ArturoR1986/roof-report/internal/derive"
	"github.com/ArturoR1986/roof-report/internal/model"
	"github.com/ArturoR1986/roof-report/internal/schema"
	"github.com/ArturoR1986/roof-report/pkg/anthropic"
)

// Orchestrator drives note normalization. One instance is safe for
// concurrent use; batch runs share it across workers.
type Orchestrator struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
	limiter     *rate.Limiter
}

// NewOrchestrator builds an Orchestrator. client may be nil when no API key
// is configured; Normalize then fails its precondition check instead of
// reaching the network. limiter may be nil to disable request pacing.
func NewOrchestrator(client anthropic.Client, model string, maxTokens int64, temperature float64, limiter *rate.Limiter) *Orchestrator {
	return &Orchestrator{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		limiter:     limiter,
	}
}

// Result is the outcome of one normalization attempt. Exactly one of Record
// and Failure is set. RawPayload holds the model's response text whenever
// one was received, including on bad-payload failures, for diagnostics.
type Result struct {
	Record     *model.Record
	RawPayload string
	Failure    *Failure
}

// Normalize converts one raw field note into a validated record with derived
// severity, urgency, and customer narrative.
func (o *Orchestrator) Normalize(ctx context.Context, rawNote string) Result {
	if strings.TrimSpace(rawNote) == "" {
		return Result{Failure: &Failure{
			Kind:    FailurePrecondition,
			Message: "note text is empty; paste or load field notes first",
		}}
	}
	if o.client == nil {
		return Result{Failure: &Failure{
			Kind:    FailurePrecondition,
			Message: "AI normalization is not configured; set the API key or use manual entry",
		}}
	}

	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return Result{Failure: classifyCallFailure(err)}
		}
	}

	temp := o.temperature
	resp, err := o.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       o.model,
		MaxTokens:   o.maxTokens,
		System:      anthropic.BuildCachedSystemBlocks(normalizeSystemPrompt),
		Messages:    []anthropic.Message{{Role: "user", Content: rawNote}},
		Temperature: &temp,
	})
	if err != nil {
		failure := classifyCallFailure(err)
		zap.L().Warn("extract: normalize call failed",
			zap.String("kind", string(failure.Kind)),
			zap.Error(err),
		)
		return Result{Failure: failure}
	}

	resp.Usage.LogCost(o.model, "normalize")

	payload := resp.Text()
	parsed, err := schema.ParseRecordJSON(payload)
	if err != nil {
		zap.L().Warn("extract: response is not recoverable JSON", zap.Error(err))
		return Result{RawPayload: payload, Failure: badPayloadFailure()}
	}

	rec, err := schema.Validate(parsed)
	if err != nil {
		zap.L().Warn("extract: response payload rejected", zap.Error(err))
		return Result{RawPayload: payload, Failure: badPayloadFailure()}
	}

	// The rule engine owns severity, urgency, and priority; extracted grades
	// are advisory only.
	derive.ApplySeverityUrgency(rec, rawNote)

	if !rec.HasCustomerContent() {
		rec.Customer = derive.CustomerNarrative(rec.Internal)
		zap.L().Info("extract: customer report rebuilt from internal report")
	}

	if findings := derive.CustomerConsistency(rec); len(findings) > 0 {
		zap.L().Warn("extract: customer report sentences lack internal support",
			zap.Strings("sentences", findings),
		)
	}

	return Result{Record: rec, RawPayload: payload}
}

// Ready reports whether a client is configured, so callers can decide
// between the extraction and manual paths before building input.
func (o *Orchestrator) Ready() bool {
	return o.client != nil
}

// WarmCache writes the fixed normalization prompt into the prompt cache
// with a single cheap request, so a concurrent fan-out that follows reads
// the cached prompt instead of re-writing it once per worker.
func (o *Orchestrator) WarmCache(ctx context.Context) error {
	if o.client == nil {
		return eris.New("extract: no client configured")
	}
	_, err := anthropic.PrimerRequest(ctx, o.client, anthropic.MessageRequest{
		Model:     o.model,
		MaxTokens: 1,
		System:    anthropic.BuildCachedSystemBlocks(normalizeSystemPrompt),
		Messages:  []anthropic.Message{{Role: "user", Content: "ready"}},
	})
	return err
}

func badPayloadFailure() *Failure {
	return &Failure{
		Kind:    FailureBadPayload,
		Message: "AI returned invalid output. Retry, or use manual entry.",
	}
}
