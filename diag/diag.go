// Package diag carries diagnostics from the generator to the user: the
// error taxonomy of structural failures and the reporters that deliver them.
package diag

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Location points at the declaration a diagnostic is about.
type Location struct {
	// Symbol is the qualified name of the class or property.
	Symbol string
	File   string
	Line   int
}

// IsZero reports whether the location is empty.
func (l Location) IsZero() bool {
	return l.Symbol == "" && l.File == "" && l.Line == 0
}

// String formats the location as file:line (symbol).
func (l Location) String() string {
	switch {
	case l.File != "" && l.Line > 0:
		return fmt.Sprintf("%s:%d (%s)", l.File, l.Line, l.Symbol)
	case l.File != "":
		return fmt.Sprintf("%s (%s)", l.File, l.Symbol)
	default:
		return l.Symbol
	}
}

// Diagnostic is one reported issue.
type Diagnostic struct {
	Severity Severity

	// Code is a machine-readable identifier, e.g. "not_public".
	Code string

	Message  string
	Location *Location
}

func (d Diagnostic) String() string {
	if d.Location == nil || d.Location.IsZero() {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Location, d.Severity, d.Message)
}

// Reporter receives diagnostics.
type Reporter interface {
	Report(d Diagnostic)
}

// Collector stores diagnostics in report order.
// It is safe for concurrent use.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// Report records d.
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, d)
}

// Diagnostics returns a copy of everything reported so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

// Count returns the number of diagnostics with the given severity.
func (c *Collector) Count(s Severity) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.diags {
		if d.Severity == s {
			n++
		}
	}
	return n
}

// SlogReporter logs diagnostics.
type SlogReporter struct {
	// Logger receives the records. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Report logs d at error or warn level.
func (r *SlogReporter) Report(d Diagnostic) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelWarn
	if d.Severity == SeverityError {
		level = slog.LevelError
	}
	attrs := []slog.Attr{slog.String("code", d.Code)}
	if d.Location != nil {
		if d.Location.Symbol != "" {
			attrs = append(attrs, slog.String("symbol", d.Location.Symbol))
		}
		if d.Location.File != "" {
			attrs = append(attrs, slog.String("file", d.Location.File))
		}
		if d.Location.Line > 0 {
			attrs = append(attrs, slog.Int("line", d.Location.Line))
		}
	}
	logger.LogAttrs(context.Background(), level, d.Message, attrs...)
}

// Multi fans diagnostics out to several reporters.
type Multi []Reporter

// Report forwards d to every reporter.
func (m Multi) Report(d Diagnostic) {
	for _, r := range m {
		if r != nil {
			r.Report(d)
		}
	}
}

// Discard drops every diagnostic.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(Diagnostic) {}
