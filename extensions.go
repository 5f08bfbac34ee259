package testlogging

import "context"

// LogTrace logs a message template at Trace level.
func LogTrace(ctx context.Context, l Logger, format string, args ...any) error {
	return LogErr(ctx, l, Trace, nil, format, args...)
}

// LogDebug logs a message template at Debug level.
func LogDebug(ctx context.Context, l Logger, format string, args ...any) error {
	return LogErr(ctx, l, Debug, nil, format, args...)
}

// LogInformation logs a message template at Information level.
func LogInformation(ctx context.Context, l Logger, format string, args ...any) error {
	return LogErr(ctx, l, Information, nil, format, args...)
}

// LogWarning logs a message template at Warning level.
func LogWarning(ctx context.Context, l Logger, format string, args ...any) error {
	return LogErr(ctx, l, Warning, nil, format, args...)
}

// LogError logs a message template at Error level.
func LogError(ctx context.Context, l Logger, format string, args ...any) error {
	return LogErr(ctx, l, Error, nil, format, args...)
}

// LogCritical logs a message template at Critical level.
func LogCritical(ctx context.Context, l Logger, format string, args ...any) error {
	return LogErr(ctx, l, Critical, nil, format, args...)
}

// LogErr logs err together with a message template at level. Template holes
// such as "{OrderID}" are bound to args in order and kept in the entry state.
func LogErr(ctx context.Context, l Logger, level Level, err error, format string, args ...any) error {
	return LogEvent(ctx, l, level, EventID{}, err, format, args...)
}

// LogEvent is LogErr with an explicit event id.
func LogEvent(ctx context.Context, l Logger, level Level, eventID EventID, err error, format string, args ...any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.Log(ctx, level, eventID, NewTemplateState(format, args...), err, TemplateFormatter)
}
