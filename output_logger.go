package testlogging

import (
	"context"

	smerrors "github.com/Station-Manager/errors"
	"github.com/hashicorp/go-multierror"
)

// OutputLogger writes log calls to a test's output, one WriteLine per
// accepted call, indented by the depth of the open scopes.
type OutputLogger struct {
	name   string
	output Output
	config *Config
	scopes *ScopeStack
	filter *FilterLogger
}

var _ Logger = (*OutputLogger)(nil)

// NewOutputLogger returns a logger for category name writing to output. A nil
// cfg uses NewConfig.
func NewOutputLogger(name string, output Output, cfg *Config, opts ...FilterOption) (*OutputLogger, error) {
	return newOutputLogger(name, output, cfg, NewScopeStack(), opts...)
}

func newOutputLogger(name string, output Output, cfg *Config, scopes *ScopeStack, opts ...FilterOption) (*OutputLogger, error) {
	const op smerrors.Op = "testlogging.NewOutputLogger"
	if isBlank(name) {
		return nil, invalidArgument(op, errMsgBlankCategory)
	}
	if output == nil {
		return nil, invalidArgument(op, errMsgNilOutput)
	}
	if cfg == nil {
		cfg = NewConfig()
	}

	l := &OutputLogger{
		name:   name,
		output: output,
		config: cfg,
		scopes: scopes,
	}
	l.filter = NewFilterLogger(l.IsEnabled, l.writeLogEntry, opts...)
	return l, nil
}

// Name returns the category name of the logger.
func (l *OutputLogger) Name() string {
	return l.name
}

// Log writes the call when it passes filtering.
func (l *OutputLogger) Log(ctx context.Context, level Level, eventID EventID, state any, err error, formatter MessageFormatter) error {
	return l.filter.Log(ctx, level, eventID, state, err, formatter)
}

// IsEnabled reports whether level is at or above the configured minimum. None
// is never enabled.
func (l *OutputLogger) IsEnabled(level Level) bool {
	return enabledFor(level, l.config.MinLevel())
}

// BeginScope writes an opening scope marker and returns a scope that writes
// the closing marker when closed. Failures writing the opening marker are
// returned by Close.
func (l *OutputLogger) BeginScope(ctx context.Context, state any) (context.Context, Scope) {
	if ctx == nil {
		ctx = context.Background()
	}
	w := newScopeWriter(l, state, l.scopes.Depth(ctx))
	startErr := w.start()

	return l.scopes.Begin(ctx, state, nil, func(int) error {
		if err := w.end(); err != nil {
			return multierror.Append(startErr, err)
		}
		return startErr
	})
}

func (l *OutputLogger) writeLogEntry(ctx context.Context, rec Record) error {
	depth := l.scopes.Depth(ctx)
	text := l.config.Formatter().Format(depth, l.name, rec.Level, rec.EventID, rec.Message, rec.Err)
	return l.writeLine(text)
}

// writeLine sends text as a single write. Empty text is skipped. Test
// boundary failures are discarded when the config asks for it.
func (l *OutputLogger) writeLine(text string) error {
	if text == emptyString {
		return nil
	}
	err := l.output.WriteLine(text)
	if err != nil && l.config.IgnoreTestBoundaryException() && IsTestBoundary(err) {
		return nil
	}
	return err
}
