package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds a zerolog logger. Format is "json" or "console"; level is one of
// debug, info, warn, error and defaults to info.
func New(w io.Writer, level, format string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Adapter exposes a zerolog logger through the engine's printf-style Logger interface
type Adapter struct {
	log zerolog.Logger
}

// NewAdapter wraps l, tagging every entry with component
func NewAdapter(l zerolog.Logger, component string) *Adapter {
	if component != "" {
		l = l.With().Str("component", component).Logger()
	}
	return &Adapter{log: l}
}

func (a *Adapter) Debugf(format string, args ...any) { a.log.Debug().Msg(fmt.Sprintf(format, args...)) }
func (a *Adapter) Infof(format string, args ...any)  { a.log.Info().Msg(fmt.Sprintf(format, args...)) }
func (a *Adapter) Warnf(format string, args ...any)  { a.log.Warn().Msg(fmt.Sprintf(format, args...)) }
func (a *Adapter) Errorf(format string, args ...any) { a.log.Error().Msg(fmt.Sprintf(format, args...)) }
