package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		// Опциональный ops-сервер (/health, /api/v1/stats). Пустой адрес — выключен.
		Addr   string `env:"HTTP_ADDR" envDefault:""`
		Origin string `env:"ORIGIN" envDefault:"*"`
	}

	Telegram struct {
		BotToken       string `env:"BOT_TOKEN,required"`
		AdminID        int64  `env:"ADMIN_ID,required"`
		PollTimeoutSec int    `env:"POLL_TIMEOUT_SEC" envDefault:"30"`
	}

	// Чаты-получатели пересланных обращений, по одному на категорию.
	Chats struct {
		Hooligans int64 `env:"HOOLIGANS_CHAT_ID" envDefault:"-4854123470"`
		Ideas     int64 `env:"IDEAS_CHAT_ID" envDefault:"-4882835148"`
		Problems  int64 `env:"PROBLEMS_CHAT_ID" envDefault:"-4927386342"`
	}

	Storage struct {
		DataFile string `env:"DATA_FILE" envDefault:"data.json"`

		// Если REDIS_ADDR задан, снапшот хранится в Redis вместо файла.
		RedisAddr     string `env:"REDIS_ADDR" envDefault:""`
		RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
		RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
		RedisKey      string `env:"REDIS_SNAPSHOT_KEY" envDefault:"moderation:snapshot"`
	}
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// Игнорируем ошибку, если .env файл не найден
		// В production окружении переменные могут быть установлены напрямую
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
