// Package store persists the per-session record slot. A session holds at
// most one current record plus the last raw payload; writes replace the
// whole slot.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/ArturoR1986/roof-report/internal/model"
)

// ErrNotFound is returned by Get and Clear when no session exists for the id.
var ErrNotFound = eris.New("store: session not found")

// Store defines the persistence interface for session slots.
type Store interface {
	// Put replaces the session slot. The record is never partially updated.
	Put(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Clear(ctx context.Context, id string) error
	Close() error
}
