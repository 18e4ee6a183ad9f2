// Package logger configures the process-wide zerolog logger.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets up console logging for the whole process. With debug enabled
// the level drops to debug and every event carries its caller location.
func Init(serviceName string, debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	ctx := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName)
	if debug {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	log.Info().Msg("Logger initialized")
}
