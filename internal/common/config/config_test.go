package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_ID", "99")

	cfg := Load()

	assert.Equal(t, "123:abc", cfg.Telegram.BotToken)
	assert.Equal(t, int64(99), cfg.Telegram.AdminID)
	assert.Equal(t, 30, cfg.Telegram.PollTimeoutSec)
	assert.Equal(t, int64(-4854123470), cfg.Chats.Hooligans)
	assert.Equal(t, int64(-4882835148), cfg.Chats.Ideas)
	assert.Equal(t, int64(-4927386342), cfg.Chats.Problems)
	assert.Equal(t, "data.json", cfg.Storage.DataFile)
	assert.Equal(t, "", cfg.Storage.RedisAddr)
	assert.Equal(t, "moderation:snapshot", cfg.Storage.RedisKey)
	assert.Equal(t, "", cfg.Server.Addr)
	assert.False(t, cfg.Debug)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_ID", "99")
	t.Setenv("HOOLIGANS_CHAT_ID", "-1")
	t.Setenv("DATA_FILE", "/var/lib/bot/state.json")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("DEBUG", "true")

	cfg := Load()

	assert.Equal(t, int64(-1), cfg.Chats.Hooligans)
	assert.Equal(t, "/var/lib/bot/state.json", cfg.Storage.DataFile)
	assert.Equal(t, "localhost:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Debug)
}

func TestLoadInvalidAdminID(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_ID", "not-a-number")

	assert.Panics(t, func() { Load() })
}
