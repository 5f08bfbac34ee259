package testlogging

import (
	"context"
	"strconv"
)

// Logger is the leveled, scope-aware logging facade implemented by every
// logger in this package. Log returns an error instead of panicking so that
// argument and output failures surface in the calling test.
type Logger interface {
	Log(ctx context.Context, level Level, eventID EventID, state any, err error, formatter MessageFormatter) error
	IsEnabled(level Level) bool

	// BeginScope opens a nested scope carrying state. The returned context
	// carries the scope and must be used for log calls made inside it.
	BeginScope(ctx context.Context, state any) (context.Context, Scope)
}

// Scope is an open logging scope. Close ends it; calling Close more than once
// is a no-op.
type Scope interface {
	Close() error
}

// EventID identifies a log event. The zero value is the valid id 0.
type EventID struct {
	ID   int
	Name string
}

// String renders the numeric id. Id 0 is rendered like any other id.
func (e EventID) String() string {
	return strconv.Itoa(e.ID)
}

// MessageFormatter renders the message of a single log call from its state
// and error.
type MessageFormatter func(state State, err error) string

// Formatter renders an accepted log call into the text written to the test
// output.
type Formatter interface {
	Format(scopeDepth int, categoryName string, level Level, eventID EventID, message string, err error) string
}

// FormatterFunc adapts a plain function to Formatter.
type FormatterFunc func(scopeDepth int, categoryName string, level Level, eventID EventID, message string, err error) string

func (f FormatterFunc) Format(scopeDepth int, categoryName string, level Level, eventID EventID, message string, err error) string {
	return f(scopeDepth, categoryName, level, eventID, message, err)
}

// Output is the test framework's captured output channel.
type Output interface {
	WriteLine(line string) error
}

// OutputFunc adapts a plain function to Output.
type OutputFunc func(line string) error

func (f OutputFunc) WriteLine(line string) error {
	return f(line)
}
