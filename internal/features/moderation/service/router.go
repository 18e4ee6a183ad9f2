package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"school-report-bot/internal/features/moderation/models"
)

// Router resolves a report category to its destination chat and relays the
// message body with sender metadata prepended.
type Router struct {
	sender Sender
	chats  map[models.Category]int64
	now    func() time.Time
}

func NewRouter(sender Sender, chats map[models.Category]int64) *Router {
	return &Router{
		sender: sender,
		chats:  chats,
		now:    time.Now,
	}
}

// Route forwards a categorized report. Delivery and configuration failures
// are contained here: the result is a boolean, never an error to the
// caller.
func (r *Router) Route(ctx context.Context, senderID int64, senderName string, category models.Category, text, caption string, att *Attachment) bool {
	chatID, ok := r.chats[category]
	if !ok {
		log.Error().Str("category", string(category)).Msg("invalid category")
		return false
	}

	header := fmt.Sprintf("От: %s (id: %d)\nВремя: %s",
		senderName, senderID, r.now().UTC().Format("2006-01-02 15:04:05 UTC"))

	var err error
	if att != nil {
		body := firstNonEmpty(caption, text, att.placeholder())
		err = att.send(ctx, r.sender, chatID, header+"\n\n"+body)
	} else {
		body := firstNonEmpty(text, placeholderNoText)
		err = r.sender.SendMessage(ctx, chatID, header+"\n\n"+body, nil)
	}
	if err != nil {
		log.Error().Err(err).Str("category", string(category)).Int64("sender_id", senderID).Msg("failed to forward report")
		return false
	}
	return true
}
