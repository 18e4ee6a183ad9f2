package telegram

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-report-bot/internal/features/moderation/models"
	"school-report-bot/internal/features/moderation/service"
	"school-report-bot/internal/features/moderation/store"
	"school-report-bot/internal/platform/telegram"
)

const testAdminID = int64(99)

type sentMessage struct {
	chatID int64
	text   string
	kb     *telegram.ReplyKeyboardMarkup
}

type fakeSender struct {
	messages []sentMessage
}

func (f *fakeSender) SendMessage(_ context.Context, chatID int64, text string, kb *telegram.ReplyKeyboardMarkup) error {
	f.messages = append(f.messages, sentMessage{chatID: chatID, text: text, kb: kb})
	return nil
}

func (f *fakeSender) SendPhoto(context.Context, int64, string, string) error    { return nil }
func (f *fakeSender) SendVideo(context.Context, int64, string, string) error    { return nil }
func (f *fakeSender) SendDocument(context.Context, int64, string, string) error { return nil }

func newTestHandler() (*Handler, *fakeSender, *store.Store) {
	sender := &fakeSender{}
	st := store.New()
	router := service.NewRouter(sender, map[models.Category]int64{models.CategoryHooligan: -100})
	pipeline := service.NewPipeline(st, sender, router, service.NewBroadcaster(sender), testAdminID)
	h := NewHandler(nil, sender, pipeline, st, testAdminID, 30)
	return h, sender, st
}

func update(userID int64, text string, isBot bool) telegram.Update {
	return telegram.Update{
		UpdateID: 1,
		Message: &telegram.Message{
			From: &telegram.User{ID: userID, FirstName: "Маша", IsBot: isBot},
			Chat: telegram.Chat{ID: userID},
			Text: text,
		},
	}
}

func TestStartShowsUserMenu(t *testing.T) {
	h, sender, st := newTestHandler()

	h.HandleUpdate(context.Background(), update(5, "/start", false))

	require.Len(t, sender.messages, 1)
	got := sender.messages[0]
	assert.True(t, strings.HasPrefix(got.text, "Привет, Маша! 👋"))
	require.NotNil(t, got.kb)
	assert.Equal(t, service.ButtonReportHooligan, got.kb.Keyboard[0][0].Text)

	// /start только регистрирует: блокировки и антиспам не участвуют.
	assert.Equal(t, []int64{5}, st.RegisteredIDs())
	assert.Equal(t, 0, st.GetOrCreate(5, "").MessagesCount)
}

func TestStartShowsAdminMenu(t *testing.T) {
	h, sender, _ := newTestHandler()

	h.HandleUpdate(context.Background(), update(testAdminID, "/start", false))

	require.Len(t, sender.messages, 1)
	got := sender.messages[0]
	assert.Equal(t, "Привет, админ! Выберите действие:", got.text)
	require.NotNil(t, got.kb)
	assert.Equal(t, service.ButtonBroadcast, got.kb.Keyboard[0][0].Text)
}

func TestStartBypassesBlocks(t *testing.T) {
	h, sender, st := newTestHandler()
	st.Mutate(5, "", func(u *models.UserRecord) {
		u.PermanentBlock = true
	})

	h.HandleUpdate(context.Background(), update(5, "/start", false))

	require.Len(t, sender.messages, 1)
	assert.True(t, strings.HasPrefix(sender.messages[0].text, "Привет, Маша!"))
}

func TestBotMessagesIgnored(t *testing.T) {
	h, sender, st := newTestHandler()

	h.HandleUpdate(context.Background(), update(5, "привет", true))
	h.HandleUpdate(context.Background(), telegram.Update{UpdateID: 2})

	assert.Empty(t, sender.messages)
	assert.Empty(t, st.RegisteredIDs())
}

func TestRegularMessageRunsPipeline(t *testing.T) {
	h, sender, _ := newTestHandler()

	h.HandleUpdate(context.Background(), update(5, "что-то", false))

	require.Len(t, sender.messages, 1)
	assert.Equal(t, "Выберите категорию с помощью кнопок ниже.", sender.messages[0].text)
}
