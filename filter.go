package testlogging

import (
	"context"

	smerrors "github.com/Station-Manager/errors"
)

// Record is a log call that passed filtering.
type Record struct {
	Level     Level
	EventID   EventID
	State     State
	Message   string
	Err       error
	Formatter MessageFormatter
}

// WriteFunc performs the side effect of an accepted log call.
type WriteFunc func(ctx context.Context, rec Record) error

// FilterLogger is the single funnel every log call passes through. It decides
// whether a call is written at all and leaves the writing to a WriteFunc, so
// every concrete logger shares the same filtering rules.
type FilterLogger struct {
	enabled       func(Level) bool
	write         WriteFunc
	contentFilter func(message string, err error) bool
}

// FilterOption customises a FilterLogger.
type FilterOption func(*FilterLogger)

// WithContentFilter adds a secondary suppression test evaluated after the
// empty-message test. Calls for which fn returns true are dropped.
func WithContentFilter(fn func(message string, err error) bool) FilterOption {
	return func(f *FilterLogger) {
		f.contentFilter = fn
	}
}

// NewFilterLogger returns a FilterLogger that consults enabled before
// formatting and hands accepted calls to write.
func NewFilterLogger(enabled func(Level) bool, write WriteFunc, opts ...FilterOption) *FilterLogger {
	f := &FilterLogger{
		enabled: enabled,
		write:   write,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Log formats and filters a log call. A nil formatter is rejected before
// anything else. Disabled levels return nil without side effects. A call with
// no error and a blank message is swallowed.
func (f *FilterLogger) Log(ctx context.Context, level Level, eventID EventID, state any, err error, formatter MessageFormatter) error {
	const op smerrors.Op = "testlogging.FilterLogger.Log"
	if formatter == nil {
		return invalidArgument(op, errMsgNilFormatter)
	}

	if !f.IsEnabled(level) {
		return nil
	}

	s := NewState(state)
	message := formatter(s, err)

	if f.ShouldFilter(message, err) {
		return nil
	}

	if f.write == nil {
		return nil
	}
	return f.write(ctx, Record{
		Level:     level,
		EventID:   eventID,
		State:     s,
		Message:   message,
		Err:       err,
		Formatter: formatter,
	})
}

// IsEnabled reports whether level would be written.
func (f *FilterLogger) IsEnabled(level Level) bool {
	if f.enabled == nil {
		return true
	}
	return f.enabled(level)
}

// ShouldFilter reports whether a formatted call is dropped: blank message with
// no error, or rejected by the content filter.
func (f *FilterLogger) ShouldFilter(message string, err error) bool {
	if err == nil && isBlank(message) {
		return true
	}
	if f.contentFilter != nil {
		return f.contentFilter(message, err)
	}
	return false
}

// FormatMessage renders state with formatter, rejecting a nil formatter.
func FormatMessage(state any, err error, formatter MessageFormatter) (string, error) {
	const op smerrors.Op = "testlogging.FormatMessage"
	if formatter == nil {
		return emptyString, invalidArgument(op, errMsgNilFormatter)
	}
	return formatter(NewState(state), err), nil
}
