package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Broadcaster fans one message out to registered users, best-effort and
// at-most-once: a failed recipient is logged and skipped, never retried.
type Broadcaster struct {
	sender Sender
}

func NewBroadcaster(sender Sender) *Broadcaster {
	return &Broadcaster{sender: sender}
}

// Payload is the broadcast content: plain text, or an attachment with an
// optional caption, same precedence rule as category forwarding.
type Payload struct {
	Text       string
	Attachment *Attachment
}

// Broadcast delivers the payload to every recipient except exclude.
// Returns the number of successful deliveries.
func (b *Broadcaster) Broadcast(ctx context.Context, payload Payload, recipients []int64, exclude int64) int {
	runID := uuid.NewString()
	delivered, failed := 0, 0

	for _, uid := range recipients {
		if uid == exclude {
			continue
		}
		var err error
		if payload.Attachment != nil {
			err = payload.Attachment.send(ctx, b.sender, uid, payload.Text)
		} else {
			err = b.sender.SendMessage(ctx, uid, firstNonEmpty(payload.Text, placeholderNoText), nil)
		}
		if err != nil {
			failed++
			log.Warn().Err(err).Str("run_id", runID).Int64("user_id", uid).Msg("broadcast delivery failed")
			continue
		}
		delivered++
	}

	log.Info().Str("run_id", runID).Int("delivered", delivered).Int("failed", failed).Msg("broadcast finished")
	return delivered
}
