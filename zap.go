package testlogging

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger forwards log calls to a *zap.Logger using the same field layout
// as ZerologLogger. Entries are written straight to the logger's core, so
// Critical (zap's fatal level) never exits and never panics.
type ZapLogger struct {
	logger *zap.Logger
	config *Config
	scopes *ScopeStack
	filter *FilterLogger
}

var _ Logger = (*ZapLogger)(nil)

// NewZapLogger wraps logger. A nil logger is replaced by zap.NewNop and a nil
// cfg by NewConfig.
func NewZapLogger(logger *zap.Logger, cfg *Config, opts ...FilterOption) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = NewConfig()
	}
	l := &ZapLogger{
		logger: logger,
		config: cfg,
		scopes: NewScopeStack(),
	}
	l.filter = NewFilterLogger(l.IsEnabled, l.writeEntry, opts...)
	return l
}

func (l *ZapLogger) Log(ctx context.Context, level Level, eventID EventID, state any, err error, formatter MessageFormatter) error {
	return l.filter.Log(ctx, level, eventID, state, err, formatter)
}

func (l *ZapLogger) IsEnabled(level Level) bool {
	if !enabledFor(level, l.config.MinLevel()) {
		return false
	}
	return l.logger.Core().Enabled(zapLevel(level))
}

func (l *ZapLogger) BeginScope(ctx context.Context, state any) (context.Context, Scope) {
	return l.scopes.Begin(ctx, state, nil, nil)
}

func (l *ZapLogger) writeEntry(ctx context.Context, rec Record) error {
	entry := zapcore.Entry{
		Level:      zapLevel(rec.Level),
		Time:       time.Now(),
		LoggerName: l.logger.Name(),
		Message:    l.config.Redact(rec.Message),
	}
	ce := l.logger.Core().Check(entry, nil)
	if ce == nil {
		return nil
	}

	fields := make([]zap.Field, 0, len(rec.State)+8)
	fields = append(fields, zap.Int(fieldEventID, rec.EventID.ID))
	if rec.EventID.Name != emptyString {
		fields = append(fields, zap.String(fieldEventName, rec.EventID.Name))
	}
	for _, kv := range rec.State {
		if kv.Key == OriginalFormatKey {
			fields = append(fields, zap.Any(fieldTemplate, kv.Value))
			continue
		}
		fields = append(fields, zap.Any(kv.Key, stateValue(kv.Value, l.config)))
	}
	if labels := scopeLabels(l.scopes.Snapshot(ctx), l.config); labels != nil {
		fields = append(fields, zap.Strings(fieldScopes, labels))
	}
	if rec.Err != nil {
		d := newErrorDetails(rec.Err, l.config)
		fields = append(fields, zap.String(fieldError, d.text))
		if len(d.chain) > 0 {
			fields = append(fields,
				zap.Strings(fieldErrorChain, d.chain),
				zap.String(fieldErrorRoot, d.root),
				zap.String(fieldErrorHistory, d.history),
				zap.Strings(fieldErrorOps, d.ops),
			)
			if d.rootOp != emptyString {
				fields = append(fields, zap.String(fieldErrorRootOp, d.rootOp))
			}
		}
	}

	ce.Write(fields...)
	return nil
}

func zapLevel(level Level) zapcore.Level {
	switch level {
	case Trace, Debug:
		return zapcore.DebugLevel
	case Information:
		return zapcore.InfoLevel
	case Warning:
		return zapcore.WarnLevel
	case Error:
		return zapcore.ErrorLevel
	default:
		return zapcore.FatalLevel
	}
}
