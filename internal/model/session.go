package model

import "time"

// Session holds the state of one editing session: the current record and the
// raw extractor payload that produced it. A session holds at most one record;
// every new normalization or manual entry replaces the whole slot.
type Session struct {
	ID         string    `json:"id"`
	Record     *Record   `json:"record,omitempty"`
	RawPayload string    `json:"raw_payload,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}
