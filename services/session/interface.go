// File: services/session/interface.go
package session

import (
	"context"

	"schedulo/models"
)

// Store persists one ConversationState per session between turns.
// Get on an unknown session returns a fresh initial-stage state, never an
// error, so the chat handler does not special-case first contact.
type Store interface {
	Get(ctx context.Context, sessionID string) (*models.ConversationState, error)
	Set(ctx context.Context, sessionID string, state *models.ConversationState) error
	Clear(ctx context.Context, sessionID string) error
}
