package kafka

import (
	"context"
	"encoding/json"
	"log"
)

// MessageHandler processes one consumed record.
// shouldMark reports whether the offset may be committed; returning false
// leaves the record to be redelivered.
type MessageHandler interface {
	HandleMessage(ctx context.Context, message []byte) (shouldMark bool, err error)
}

// TypedMessageHandler decodes JSON records into T before handing them on
type TypedMessageHandler[T any] struct {
	// Validate rejects records that should not be processed
	Validate func(msg *T) bool
	// Process handles a decoded, valid record
	Process func(ctx context.Context, msg *T) error
	// AlwaysMark marks undecodable and invalid records so they are skipped
	AlwaysMark bool
}

// HandleMessage implements MessageHandler
func (h *TypedMessageHandler[T]) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var msg T
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("❌ Failed to unmarshal message: %v", err)
		return h.AlwaysMark, nil
	}

	if h.Validate != nil && !h.Validate(&msg) {
		return h.AlwaysMark, nil
	}

	if err := h.Process(ctx, &msg); err != nil {
		return false, err
	}
	return true, nil
}
