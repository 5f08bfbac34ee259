package testlogging

import (
	"context"

	"github.com/rs/zerolog"
)

// ZerologLogger forwards log calls to a zerolog.Logger as structured events.
//
// Every event carries the event id, the state pairs as fields, the error with
// its cause chain and the open scopes. Critical is written at zerolog's fatal
// level through WithLevel, so nothing exits.
type ZerologLogger struct {
	logger zerolog.Logger
	config *Config
	scopes *ScopeStack
	filter *FilterLogger
}

var _ Logger = (*ZerologLogger)(nil)

// NewZerologLogger wraps logger. A nil cfg uses NewConfig.
func NewZerologLogger(logger zerolog.Logger, cfg *Config, opts ...FilterOption) *ZerologLogger {
	if cfg == nil {
		cfg = NewConfig()
	}
	l := &ZerologLogger{
		logger: logger,
		config: cfg,
		scopes: NewScopeStack(),
	}
	l.filter = NewFilterLogger(l.IsEnabled, l.writeEvent, opts...)
	return l
}

func (l *ZerologLogger) Log(ctx context.Context, level Level, eventID EventID, state any, err error, formatter MessageFormatter) error {
	return l.filter.Log(ctx, level, eventID, state, err, formatter)
}

// IsEnabled checks the configured minimum as well as the level of the
// wrapped logger and zerolog's global level.
func (l *ZerologLogger) IsEnabled(level Level) bool {
	if !enabledFor(level, l.config.MinLevel()) {
		return false
	}
	zl := level.zerologLevel()
	return zl >= l.logger.GetLevel() && zl >= zerolog.GlobalLevel()
}

func (l *ZerologLogger) BeginScope(ctx context.Context, state any) (context.Context, Scope) {
	return l.scopes.Begin(ctx, state, nil, nil)
}

func (l *ZerologLogger) writeEvent(ctx context.Context, rec Record) error {
	e := l.logger.WithLevel(rec.Level.zerologLevel())
	if e == nil {
		return nil
	}

	e.Int(fieldEventID, rec.EventID.ID)
	if rec.EventID.Name != emptyString {
		e.Str(fieldEventName, rec.EventID.Name)
	}
	for _, kv := range rec.State {
		if kv.Key == OriginalFormatKey {
			e.Interface(fieldTemplate, kv.Value)
			continue
		}
		e.Interface(kv.Key, stateValue(kv.Value, l.config))
	}
	if labels := scopeLabels(l.scopes.Snapshot(ctx), l.config); labels != nil {
		e.Strs(fieldScopes, labels)
	}
	if rec.Err != nil {
		d := newErrorDetails(rec.Err, l.config)
		e.Str(fieldError, d.text)
		if len(d.chain) > 0 {
			e.Strs(fieldErrorChain, d.chain)
			e.Str(fieldErrorRoot, d.root)
			e.Str(fieldErrorHistory, d.history)
			e.Strs(fieldErrorOps, d.ops)
			if d.rootOp != emptyString {
				e.Str(fieldErrorRootOp, d.rootOp)
			}
		}
	}

	e.Msg(l.config.Redact(rec.Message))
	return nil
}
