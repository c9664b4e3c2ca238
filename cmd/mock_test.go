package main

import (
	"context"
	"sync/atomic"

	"github.com/ArturoR1986/roof-report/internal/extract"
	"github.com/ArturoR1986/roof-report/pkg/anthropic"
)

// stubClient answers every CreateMessage with the configured text or error
// and counts calls.
type stubClient struct {
	text  string
	err   error
	calls atomic.Int64
}

var _ anthropic.Client = (*stubClient)(nil)

func (s *stubClient) CreateMessage(context.Context, anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &anthropic.MessageResponse{
		StopReason: "end_turn",
		Content:    []anthropic.ContentBlock{{Type: "text", Text: s.text}},
	}, nil
}

const dualReportPayload = `{
  "internal_report": {
    "service_summary": "Investigated reported leak at northeast corner",
    "roof_system": "TPO",
    "primary_issue": "Active leak",
    "location": "Northeast corner near HVAC curb",
    "active_leak_reported": true,
    "observations": ["Membrane separation at curb flashing"],
    "recommended_next_steps": ["Open flashing at curb and inspect"]
  },
  "customer_report": {
    "what_we_found": "We found a leak near the rooftop HVAC unit.",
    "why_this_matters": "Water staining shows water is getting inside.",
    "recommended_next_steps": ["Open flashing at curb and inspect"]
  }
}`

func stubOrchestrator(client anthropic.Client) *extract.Orchestrator {
	return extract.NewOrchestrator(client, "claude-sonnet-4-5-20250929", 2048, 0.2, nil)
}
