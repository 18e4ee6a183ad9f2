// Package telegram consumes Bot API updates and feeds them into the
// moderation pipeline. One goroutine long-polls and processes updates
// sequentially, so per-message pipeline runs never interleave.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"school-report-bot/internal/features/moderation/service"
	"school-report-bot/internal/features/moderation/store"
	"school-report-bot/internal/platform/telegram"
)

// Updater is the inbound side of the transport, satisfied by
// *telegram.Client.
type Updater interface {
	GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]telegram.Update, error)
}

type Handler struct {
	updater     Updater
	sender      service.Sender
	pipeline    *service.Pipeline
	store       *store.Store
	adminID     int64
	pollTimeout int
}

func NewHandler(updater Updater, sender service.Sender, pipeline *service.Pipeline, st *store.Store, adminID int64, pollTimeoutSec int) *Handler {
	return &Handler{
		updater:     updater,
		sender:      sender,
		pipeline:    pipeline,
		store:       st,
		adminID:     adminID,
		pollTimeout: pollTimeoutSec,
	}
}

// Run polls for updates until ctx is cancelled.
func (h *Handler) Run(ctx context.Context) {
	log.Info().Msg("Starting update poller...")
	var offset int64

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Stopping update poller...")
			return
		default:
		}

		updates, err := h.updater.GetUpdates(ctx, offset, h.pollTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				continue
			}
			log.Error().Err(err).Msg("failed to get updates")
			time.Sleep(time.Second) // backoff on error
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			h.HandleUpdate(ctx, upd)
		}
	}
}

// HandleUpdate dispatches a single update: bot-originated messages are
// dropped, /start takes the greeting path, everything else runs the
// moderation pipeline.
func (h *Handler) HandleUpdate(ctx context.Context, upd telegram.Update) {
	msg := upd.Message
	if msg == nil || msg.From == nil || msg.From.IsBot {
		return
	}

	if strings.HasPrefix(msg.Text, "/start") {
		h.handleStart(ctx, msg)
		return
	}
	h.pipeline.Handle(ctx, msg)
}

// handleStart registers the user and shows the role menu. It deliberately
// skips the block/spam/profanity stages: a blocked user can still see the
// greeting.
func (h *Handler) handleStart(ctx context.Context, msg *telegram.Message) {
	userID := msg.From.ID
	h.store.GetOrCreate(userID, msg.From.FullName())
	log.Info().Int64("user_id", userID).Bool("is_admin", userID == h.adminID).Msg("/start")

	if userID == h.adminID {
		h.send(ctx, msg.Chat.ID, "Привет, админ! Выберите действие:", service.AdminKeyboard())
		return
	}
	welcome := fmt.Sprintf(
		"Привет, %s! 👋\n\n"+
			"Я — школьный бот, и я помогу тебе быстро сообщить о любых событиях в школе или поделиться идеями.\n\n"+
			"%s\n%s\n%s\n\n"+
			"Просто нажми на соответствующую кнопку.",
		msg.From.FirstName,
		service.ButtonReportHooligan, service.ButtonSuggestIdea, service.ButtonReportProblem,
	)
	h.send(ctx, msg.Chat.ID, welcome, service.UserKeyboard())
}

func (h *Handler) send(ctx context.Context, chatID int64, text string, kb *telegram.ReplyKeyboardMarkup) {
	if err := h.sender.SendMessage(ctx, chatID, text, kb); err != nil {
		log.Warn().Err(err).Int64("chat_id", chatID).Msg("failed to send reply")
	}
}
