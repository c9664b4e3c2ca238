package anthropic

import (
	"context"

	"github.com/rotisserie/eris"
)

// SystemBlock is one system prompt block. A non-nil CacheControl marks the
// block as a prompt cache breakpoint.
type SystemBlock struct {
	Text         string
	CacheControl *CacheControl
}

// CacheControl sets the cache lifetime for a block.
type CacheControl struct {
	TTL string // "5m" or "1h"
}

// BuildCachedSystemBlocks wraps the given text in a single system block with
// a 1-hour cache breakpoint. The normalization prompt is identical for every
// note, so everything after the first request reads from the warm cache.
func BuildCachedSystemBlocks(text string) []SystemBlock {
	return []SystemBlock{{
		Text:         text,
		CacheControl: &CacheControl{TTL: "1h"},
	}}
}

// PrimerRequest sends one message to warm the prompt cache before a batch
// fans out. The request should carry system blocks from
// BuildCachedSystemBlocks; the response can be discarded.
func PrimerRequest(ctx context.Context, client Client, req MessageRequest) (*MessageResponse, error) {
	resp, err := client.CreateMessage(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "anthropic: primer request")
	}
	return resp, nil
}
