package anthropic

import "go.uber.org/zap"

// TokenUsage tallies what one API call consumed, including prompt cache
// traffic. It is attached to every MessageResponse.
type TokenUsage struct {
	InputTokens              int64
	OutputTokens             int64
	CacheCreationInputTokens int64
	CacheReadInputTokens     int64
}

// modelRate is list pricing in USD per million tokens. Cache writes bill
// at 1.25x the input rate, cache reads at 0.1x.
type modelRate struct {
	In  float64
	Out float64
}

const (
	cacheWriteMult = 1.25
	cacheReadMult  = 0.10
	perMTok        = 1e6
)

var modelRates = map[string]modelRate{
	"claude-haiku-4-5-20251001":  {In: 0.80, Out: 4.00},
	"claude-sonnet-4-5-20250929": {In: 3.00, Out: 15.00},
	"claude-opus-4-6":            {In: 15.00, Out: 75.00},
}

// EstimateCost prices this usage under the given model's list rates.
// Models missing from the rate table estimate to zero rather than erroring;
// the estimate is advisory and never blocks a pipeline run.
func (u TokenUsage) EstimateCost(model string) float64 {
	rate, ok := modelRates[model]
	if !ok {
		return 0
	}
	cost := float64(u.InputTokens) / perMTok * rate.In
	cost += float64(u.OutputTokens) / perMTok * rate.Out
	cost += float64(u.CacheCreationInputTokens) / perMTok * rate.In * cacheWriteMult
	cost += float64(u.CacheReadInputTokens) / perMTok * rate.In * cacheReadMult
	return cost
}

// LogCost emits the usage and its cost estimate on the global logger, tagged
// with the pipeline phase that spent it.
func (u TokenUsage) LogCost(model, phase string) {
	zap.L().Info("cost attribution",
		zap.String("model", model),
		zap.String("phase", phase),
		zap.Int64("input_tokens", u.InputTokens),
		zap.Int64("output_tokens", u.OutputTokens),
		zap.Int64("cache_write_tokens", u.CacheCreationInputTokens),
		zap.Int64("cache_read_tokens", u.CacheReadInputTokens),
		zap.Float64("estimated_cost_usd", u.EstimateCost(model)),
	)
}
