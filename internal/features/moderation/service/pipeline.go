package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"school-report-bot/internal/features/moderation/filter"
	"school-report-bot/internal/features/moderation/models"
	"school-report-bot/internal/features/moderation/store"
	"school-report-bot/internal/platform/telegram"
)

// Pipeline runs the ordered moderation sequence for every inbound message:
// block check, rate limit, profanity screening, admin pending-action
// dispatch, menu routing, category submission, fallback. The first matching
// stage consumes the message; later stages are never evaluated.
//
// Handle is called from a single goroutine, so the stages of one message
// are atomic with respect to the sender's record.
type Pipeline struct {
	store       *store.Store
	sender      Sender
	router      *Router
	broadcaster *Broadcaster
	adminID     int64
	now         func() time.Time
}

func NewPipeline(st *store.Store, sender Sender, router *Router, broadcaster *Broadcaster, adminID int64) *Pipeline {
	return &Pipeline{
		store:       st,
		sender:      sender,
		router:      router,
		broadcaster: broadcaster,
		adminID:     adminID,
		now:         time.Now,
	}
}

func (p *Pipeline) Handle(ctx context.Context, msg *telegram.Message) {
	userID := msg.From.ID
	u := p.store.GetOrCreate(userID, msg.From.FullName())
	now := p.now().UTC()
	text := strings.TrimSpace(firstNonEmpty(msg.Text, msg.Caption))

	log.Debug().
		Int64("user_id", userID).
		Str("text", text).
		Int("warnings", u.Warnings).
		Bool("permanent_block", u.PermanentBlock).
		Msg("handling message")

	// 1-2. Блокировки.
	if u.PermanentBlock {
		p.reply(ctx, msg.Chat.ID, replyPermanentBlock, nil)
		return
	}
	if u.TempBlocked(now) {
		remaining := int(u.TempBlock.Sub(now).Seconds())
		p.reply(ctx, msg.Chat.ID, fmt.Sprintf("Вы временно заблокированы. Осталось %d секунд.", remaining), nil)
		return
	}

	// 3. Антиспам.
	if u.LastMessage != nil && now.Sub(*u.LastMessage) < SpamInterval {
		p.reply(ctx, msg.Chat.ID, fmt.Sprintf("Слишком много сообщений! Подождите %d секунд.", int(SpamInterval.Seconds())), nil)
		return
	}
	p.store.Mutate(userID, "", func(u *models.UserRecord) {
		t := now
		u.LastMessage = &t
		u.MessagesCount++
	})

	// 4. Фильтр мата.
	if filter.ContainsProfanity(text) {
		var blocked bool
		var warnings int
		p.store.Mutate(userID, "", func(u *models.UserRecord) {
			u.Warnings++
			warnings = u.Warnings
			if u.Warnings >= WarningLimit {
				t := now.Add(TempBlockDuration)
				u.TempBlock = &t
				blocked = true
			}
		})
		if blocked {
			p.reply(ctx, msg.Chat.ID, replyTempBlockApplied, nil)
		} else {
			p.reply(ctx, msg.Chat.ID, fmt.Sprintf("Предупреждение %d/%d за мат.", warnings, WarningLimit), nil)
		}
		return
	}

	// 5. Админ: ожидаемый ввод.
	if userID == p.adminID && u.Pending != models.PendingNone {
		p.handlePending(ctx, msg, u.Pending, text)
		return
	}

	// 6. Кнопки меню.
	if userID == p.adminID && p.handleAdminMenu(ctx, msg, text, now) {
		return
	}
	if p.handleUserMenu(ctx, msg, text) {
		return
	}

	// 7. Сообщение в выбранную категорию.
	if u.Category != models.CategoryNone {
		category := u.Category
		p.store.Mutate(userID, "", func(u *models.UserRecord) {
			u.Category = models.CategoryNone
		})
		if p.router.Route(ctx, userID, u.Name, category, msg.Text, msg.Caption, AttachmentOf(msg)) {
			p.reply(ctx, msg.Chat.ID, replyForwarded, nil)
		} else {
			p.reply(ctx, msg.Chat.ID, replyForwardFailed, nil)
		}
		return
	}

	// 8. Нераспознанное — показать меню роли.
	if userID == p.adminID {
		p.reply(ctx, msg.Chat.ID, replyChooseAction, AdminKeyboard())
	} else {
		p.reply(ctx, msg.Chat.ID, replyChooseCategory, UserKeyboard())
	}
}

// handlePending consumes the admin's message as the structured input the
// pending action is waiting for. The flag is always cleared, even on
// malformed input.
func (p *Pipeline) handlePending(ctx context.Context, msg *telegram.Message, pending models.PendingAction, text string) {
	p.store.Mutate(p.adminID, "", func(u *models.UserRecord) {
		u.Pending = models.PendingNone
	})

	switch pending {
	case models.PendingBroadcast:
		payload := Payload{Attachment: AttachmentOf(msg)}
		if payload.Attachment != nil {
			payload.Text = firstNonEmpty(msg.Caption, msg.Text)
		} else {
			payload.Text = msg.Text
		}
		p.broadcaster.Broadcast(ctx, payload, p.store.RegisteredIDs(), p.adminID)
		p.reply(ctx, msg.Chat.ID, replyBroadcastDone, nil)

	case models.PendingBlock:
		target, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			log.Error().Str("input", text).Msg("invalid user id for block")
			p.reply(ctx, msg.Chat.ID, replyInvalidUserID, nil)
			return
		}
		p.store.Mutate(target, "", func(u *models.UserRecord) {
			u.PermanentBlock = true
		})
		log.Info().Int64("admin_id", p.adminID).Int64("user_id", target).Msg("user blocked")
		p.reply(ctx, msg.Chat.ID, fmt.Sprintf("Пользователь %d заблокирован навсегда.", target), nil)

	case models.PendingUnblock:
		target, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			log.Error().Str("input", text).Msg("invalid user id for unblock")
			p.reply(ctx, msg.Chat.ID, replyInvalidUserID, nil)
			return
		}
		p.store.Mutate(target, "", func(u *models.UserRecord) {
			u.PermanentBlock = false
			u.TempBlock = nil
			u.Warnings = 0
		})
		log.Info().Int64("admin_id", p.adminID).Int64("user_id", target).Msg("user unblocked")
		p.reply(ctx, msg.Chat.ID, fmt.Sprintf("Пользователь %d разблокирован.", target), nil)
	}
}

func (p *Pipeline) handleAdminMenu(ctx context.Context, msg *telegram.Message, text string, now time.Time) bool {
	switch text {
	case ButtonBroadcast:
		p.setPending(models.PendingBroadcast)
		p.reply(ctx, msg.Chat.ID, replyBroadcastPrompt, nil)
	case ButtonStats:
		p.reply(ctx, msg.Chat.ID, p.formatStats(now), nil)
	case ButtonSettings:
		p.reply(ctx, msg.Chat.ID, replySettings, nil)
	case ButtonBlock:
		p.setPending(models.PendingBlock)
		p.reply(ctx, msg.Chat.ID, replyBlockPrompt, nil)
	case ButtonUnblock:
		p.setPending(models.PendingUnblock)
		p.reply(ctx, msg.Chat.ID, replyUnblockPrompt, nil)
	default:
		return false
	}
	return true
}

func (p *Pipeline) handleUserMenu(ctx context.Context, msg *telegram.Message, text string) bool {
	var category models.Category
	var prompt string
	switch text {
	case ButtonReportHooligan:
		category, prompt = models.CategoryHooligan, replyHooliganPrompt
	case ButtonSuggestIdea:
		category, prompt = models.CategoryIdea, replyIdeaPrompt
	case ButtonReportProblem:
		category, prompt = models.CategoryProblem, replyProblemPrompt
	default:
		return false
	}
	p.store.Mutate(msg.From.ID, "", func(u *models.UserRecord) {
		u.Category = category
	})
	p.reply(ctx, msg.Chat.ID, prompt, nil)
	return true
}

func (p *Pipeline) setPending(action models.PendingAction) {
	p.store.Mutate(p.adminID, "", func(u *models.UserRecord) {
		u.Pending = action
	})
}

func (p *Pipeline) formatStats(now time.Time) string {
	st := p.store.Stats(now)
	lines := make([]string, 0, len(st.Top))
	for _, tu := range st.Top {
		lines = append(lines, fmt.Sprintf("%s (%d): %d", tu.Name, tu.ID, tu.Messages))
	}
	top := strings.Join(lines, "\n")
	if top == "" {
		top = replyNoActivity
	}
	return fmt.Sprintf("📊 Статистика\nВсего пользователей: %d\nЗаблокировано: %d\n\nТоп активных:\n%s",
		st.Total, st.Blocked, top)
}

func (p *Pipeline) reply(ctx context.Context, chatID int64, text string, kb *telegram.ReplyKeyboardMarkup) {
	if err := p.sender.SendMessage(ctx, chatID, text, kb); err != nil {
		log.Warn().Err(err).Int64("chat_id", chatID).Msg("failed to send reply")
	}
}
