// Package diag collects non-fatal diagnostics produced while parsing and
// resolving a schema so the CLI layer can print them with the INFO/WARNING
// prefixes the tool has always used, independent of where in the parse
// pipeline they were raised.
package diag

import (
	"fmt"
	"io"
)

// Level classifies a diagnostic message.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Message is a single recorded diagnostic.
type Message struct {
	Level Level
	Text  string
}

func (m Message) String() string {
	return fmt.Sprintf("%s: %s", m.Level, m.Text)
}

// Sink accumulates diagnostics raised during parse/resolve. It does not
// abort anything itself; warnings are informational per spec §7, only a
// returned error aborts a phase.
type Sink struct {
	messages []Message
}

// NewSink returns an empty diagnostics sink.
func NewSink() *Sink {
	return &Sink{}
}

// Info records an informational diagnostic, e.g. a forced-version downshift.
func (s *Sink) Info(format string, args ...any) {
	s.messages = append(s.messages, Message{LevelInfo, fmt.Sprintf(format, args...)})
}

// Warning records a non-fatal diagnostic, e.g. an unrecognized top-level
// element or a deprecated-before-introduced element.
func (s *Sink) Warning(format string, args ...any) {
	s.messages = append(s.messages, Message{LevelWarning, fmt.Sprintf(format, args...)})
}

// Error records a diagnostic alongside an error return; it does not by
// itself cause a failure, the caller's returned error does that.
func (s *Sink) Error(format string, args ...any) {
	s.messages = append(s.messages, Message{LevelError, fmt.Sprintf(format, args...)})
}

// Messages returns all recorded diagnostics in emission order.
func (s *Sink) Messages() []Message {
	return s.messages
}

// HasErrors reports whether any Error-level diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, m := range s.messages {
		if m.Level == LevelError {
			return true
		}
	}
	return false
}

// WriteTo prints every recorded diagnostic to w, one per line.
func (s *Sink) WriteTo(w io.Writer) {
	for _, m := range s.messages {
		fmt.Fprintln(w, m.String())
	}
}
