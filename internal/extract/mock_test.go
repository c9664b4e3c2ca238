package extract

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ArturoR1986/roof-report/pkg/anthropic"
)

// mockAnthropicClient stands in for the API so orchestrator tests can
// script responses and failures.
type mockAnthropicClient struct {
	mock.Mock
}

var _ anthropic.Client = (*mockAnthropicClient)(nil)

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

// textResponse wraps text in a single-block response with token usage.
func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		ID:         "msg_test",
		Model:      "claude-sonnet-4-5-20250929",
		StopReason: "end_turn",
		Content:    []anthropic.ContentBlock{{Type: "text", Text: text}},
		Usage: anthropic.TokenUsage{
			InputTokens:  250,
			OutputTokens: 180,
		},
	}
}
