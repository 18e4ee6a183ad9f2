package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubServer(t *testing.T, handler func(method string, form map[string]string) (string, bool)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form := make(map[string]string, len(r.PostForm))
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		// Путь вида /bot<token>/<method>.
		method := r.URL.Path[len("/bottest-token/"):]
		result, ok := handler(method, form)
		if !ok {
			_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":` + result + `}`))
	}))
}

func TestSendMessage(t *testing.T) {
	var gotForm map[string]string
	srv := newStubServer(t, func(method string, form map[string]string) (string, bool) {
		assert.Equal(t, "sendMessage", method)
		gotForm = form
		return `{}`, true
	})
	defer srv.Close()

	c := NewClientWithBaseURL("test-token", srv.URL)
	kb := testKeyboard()
	require.NoError(t, c.SendMessage(context.Background(), 42, "привет", kb))

	assert.Equal(t, "42", gotForm["chat_id"])
	assert.Equal(t, "привет", gotForm["text"])
	assert.Equal(t, "HTML", gotForm["parse_mode"])

	var markup ReplyKeyboardMarkup
	require.NoError(t, json.Unmarshal([]byte(gotForm["reply_markup"]), &markup))
	assert.True(t, markup.ResizeKeyboard)
	assert.Equal(t, "кнопка", markup.Keyboard[0][0].Text)
}

func testKeyboard() *ReplyKeyboardMarkup {
	return &ReplyKeyboardMarkup{
		Keyboard:       [][]KeyboardButton{{{Text: "кнопка"}}},
		ResizeKeyboard: true,
	}
}

func TestSendMessageAPIError(t *testing.T) {
	srv := newStubServer(t, func(string, map[string]string) (string, bool) {
		return "", false
	})
	defer srv.Close()

	c := NewClientWithBaseURL("test-token", srv.URL)
	err := c.SendMessage(context.Background(), 42, "привет", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestGetUpdates(t *testing.T) {
	srv := newStubServer(t, func(method string, form map[string]string) (string, bool) {
		assert.Equal(t, "getUpdates", method)
		assert.Equal(t, "7", form["offset"])
		assert.Equal(t, "30", form["timeout"])
		return `[{"update_id":7,"message":{"message_id":1,"from":{"id":5,"first_name":"Маша"},"chat":{"id":5},"text":"привет"}}]`, true
	})
	defer srv.Close()

	c := NewClientWithBaseURL("test-token", srv.URL)
	updates, err := c.GetUpdates(context.Background(), 7, 30)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	require.NotNil(t, updates[0].Message)
	assert.Equal(t, int64(5), updates[0].Message.From.ID)
	assert.Equal(t, "привет", updates[0].Message.Text)
}

func TestSendPhoto(t *testing.T) {
	var gotForm map[string]string
	srv := newStubServer(t, func(method string, form map[string]string) (string, bool) {
		assert.Equal(t, "sendPhoto", method)
		gotForm = form
		return `{}`, true
	})
	defer srv.Close()

	c := NewClientWithBaseURL("test-token", srv.URL)
	require.NoError(t, c.SendPhoto(context.Background(), -100, "file-1", "подпись"))
	assert.Equal(t, "file-1", gotForm["photo"])
	assert.Equal(t, "подпись", gotForm["caption"])
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Иван Петров", (&User{FirstName: "Иван", LastName: "Петров"}).FullName())
	assert.Equal(t, "Иван", (&User{FirstName: "Иван"}).FullName())
	assert.Equal(t, "", (*User)(nil).FullName())
}
