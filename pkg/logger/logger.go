// Package logger holds the process-wide zerolog instance shared by the
// API server and the simcli binary.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Log is the global logger instance.
var Log zerolog.Logger

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}

	Log = zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Caller().
		Str("app", "inventory-sim").
		Logger()
}

// SetLevel adjusts verbosity from the configured server mode: debug mode
// logs at debug, release and test run at info. Plain zerolog level names
// are accepted too, so SERVER_MODE=trace works for local digging.
func SetLevel(mode string) {
	level := zerolog.InfoLevel
	switch mode {
	case "debug":
		level = zerolog.DebugLevel
	case "release", "test", "":
	default:
		parsed, err := zerolog.ParseLevel(mode)
		if err != nil {
			Log.Warn().Str("mode", mode).Msg("unknown log level, defaulting to info")
		} else {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)
	Log = Log.Level(level)
}
