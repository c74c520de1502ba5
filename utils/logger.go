package utils

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a console logger for development and a JSON logger otherwise
func NewLogger(env string) zerolog.Logger {
	return newLogger(os.Stdout, IsDev(env))
}

func newLogger(out io.Writer, dev bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if dev {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
		}).With().Timestamp().Logger()
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

// IsDev reports whether env names a development environment
func IsDev(env string) bool {
	return env == "" || env == "dev" || env == "development"
}
