package diagnostics

import (
	"fmt"

	"github.com/rs/zerolog"
)

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

const (
	CodeDangling     = "FRAME.DANGLING"
	CodeAddressRange = "FRAME.ADDRESS_RANGE"
)

type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Code     string         `json:"code"`
	Summary  string         `json:"summary"`
	Evidence map[string]any `json:"evidence,omitempty"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Code, d.Summary)
}

// Level maps the severity onto a zerolog level.
func (d Diagnostic) Level() zerolog.Level {
	switch d.Severity {
	case Err:
		return zerolog.ErrorLevel
	case Warn:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// Log writes d to l at its severity's level.
func (d Diagnostic) Log(l zerolog.Logger) {
	ev := l.WithLevel(d.Level()).Str("code", d.Code)
	for k, v := range d.Evidence {
		ev = ev.Interface(k, v)
	}
	ev.Msg(d.Summary)
}
