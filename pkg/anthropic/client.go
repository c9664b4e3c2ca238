// Package anthropic wraps the official SDK behind a one-method client
// interface. Callers hold plain request/response structs, never SDK types,
// which keeps the extraction layer mockable with testify.
package anthropic

import (
	"context"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Client is the slice of the Anthropic API the note pipeline uses: one
// synchronous message call per note.
type Client interface {
	CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error)
}

// MessageRequest describes a single Messages API call. A nil Temperature
// leaves the model default in place.
type MessageRequest struct {
	Model       string
	MaxTokens   int64
	System      []SystemBlock
	Messages    []Message
	Temperature *float64
}

// Message is one conversational turn.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// MessageResponse mirrors the Messages API response shape without exposing
// SDK types to callers.
type MessageResponse struct {
	ID           string
	Model        string
	Content      []ContentBlock
	StopReason   string
	Usage        TokenUsage
	StopSequence string
}

// ContentBlock is one block of response content.
type ContentBlock struct {
	Type string
	Text string
}

// Text concatenates the response's text blocks, skipping any other block type.
func (r *MessageResponse) Text() string {
	var out string
	for _, b := range r.Content {
		if b.Type == "text" {
			out += b.Text
		}
	}
	return out
}

type sdkClient struct {
	client sdk.Client
}

// NewClient returns a Client backed by the official anthropic-sdk-go.
func NewClient(apiKey string) Client {
	return &sdkClient{client: sdk.NewClient(option.WithAPIKey(apiKey))}
}

func (c *sdkClient) CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(req.Model),
		MaxTokens: req.MaxTokens,
		Messages:  sdkMessages(req.Messages),
	}
	if len(req.System) > 0 {
		params.System = sdkSystemBlocks(req.System)
	}
	if req.Temperature != nil {
		params.Temperature = sdk.Float(*req.Temperature)
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, wrapAPIError(err, "anthropic: create message")
	}
	return responseFromSDK(msg), nil
}

// sdkMessages converts turns to SDK params. Unrecognized roles are sent as
// user turns.
func sdkMessages(msgs []Message) []sdk.MessageParam {
	out := make([]sdk.MessageParam, len(msgs))
	for i, m := range msgs {
		block := sdk.NewTextBlock(m.Content)
		if m.Role == "assistant" {
			out[i] = sdk.NewAssistantMessage(block)
			continue
		}
		out[i] = sdk.NewUserMessage(block)
	}
	return out
}

func sdkSystemBlocks(blocks []SystemBlock) []sdk.TextBlockParam {
	out := make([]sdk.TextBlockParam, len(blocks))
	for i, b := range blocks {
		out[i] = sdk.TextBlockParam{Text: b.Text}
		if b.CacheControl == nil {
			continue
		}
		cc := sdk.NewCacheControlEphemeralParam()
		if ttl := b.CacheControl.TTL; ttl != "" {
			cc.TTL = sdk.CacheControlEphemeralTTL(ttl)
		}
		out[i].CacheControl = cc
	}
	return out
}

func responseFromSDK(msg *sdk.Message) *MessageResponse {
	blocks := make([]ContentBlock, len(msg.Content))
	for i, b := range msg.Content {
		blocks[i] = ContentBlock{Type: b.Type, Text: b.Text}
	}
	return &MessageResponse{
		ID:           msg.ID,
		Model:        string(msg.Model),
		Content:      blocks,
		StopReason:   string(msg.StopReason),
		StopSequence: msg.StopSequence,
		Usage: TokenUsage{
			InputTokens:              msg.Usage.InputTokens,
			OutputTokens:             msg.Usage.OutputTokens,
			CacheCreationInputTokens: msg.Usage.CacheCreationInputTokens,
			CacheReadInputTokens:     msg.Usage.CacheReadInputTokens,
		},
	}
}
