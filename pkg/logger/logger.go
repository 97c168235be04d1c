package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger zerolog.Logger

// Config represents logger configuration
type Config struct {
	// Level is one of debug, info, warn, error. Anything else means info.
	Level string
	// Pretty enables human-readable console output
	Pretty bool
	// Output defaults to os.Stdout
	Output io.Writer
}

// Configure replaces the package logger and the zerolog global logger.
func Configure(config Config) {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(strings.ToLower(config.Level))
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var writer io.Writer = config.Output
	if config.Pretty {
		writer = zerolog.ConsoleWriter{
			Out:        config.Output,
			TimeFormat: time.RFC3339,
		}
	}

	defaultLogger = zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = defaultLogger
}

func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

func Info() *zerolog.Event {
	return defaultLogger.Info()
}

func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// Fatal logs and then exits the process.
func Fatal() *zerolog.Event {
	return defaultLogger.Fatal()
}

func init() {
	Configure(Config{Level: "info", Pretty: true})
}
