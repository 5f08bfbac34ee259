package testlogging

import (
	"context"
	"io"
	"sync"

	smerrors "github.com/Station-Manager/errors"
	"go.uber.org/atomic"
)

// CacheLogger records every accepted log call so tests can assert on them.
// It can stand alone, wrap another Logger (which still receives every call)
// or additionally own the factory that produced the wrapped logger.
type CacheLogger struct {
	filter  *FilterLogger
	logger  Logger
	factory io.Closer
	scopes  *ScopeStack
	cache   entryCache

	// mu is held for reading while an entry is written and for writing by
	// Close, so Close waits for in-flight writes.
	mu     sync.RWMutex
	closed atomic.Bool
}

var _ Logger = (*CacheLogger)(nil)

// NewCacheLogger returns a standalone CacheLogger. Every level is enabled.
func NewCacheLogger(opts ...FilterOption) *CacheLogger {
	return newCacheLogger(nil, nil, opts...)
}

// WrapLogger returns a CacheLogger that records calls and forwards them to
// logger. The wrapped logger is not closed by the CacheLogger.
func WrapLogger(logger Logger, opts ...FilterOption) (*CacheLogger, error) {
	const op smerrors.Op = "testlogging.WrapLogger"
	if logger == nil {
		return nil, invalidArgument(op, errMsgNilLogger)
	}
	return newCacheLogger(logger, nil, opts...), nil
}

// WithCache returns a CacheLogger that wraps logger and owns factory. Closing
// the CacheLogger closes the factory.
func WithCache(logger Logger, factory io.Closer, opts ...FilterOption) (*CacheLogger, error) {
	const op smerrors.Op = "testlogging.WithCache"
	if logger == nil {
		return nil, invalidArgument(op, errMsgNilLogger)
	}
	if factory == nil {
		return nil, invalidArgument(op, errMsgNilFactory)
	}
	return newCacheLogger(logger, factory, opts...), nil
}

func newCacheLogger(logger Logger, factory io.Closer, opts ...FilterOption) *CacheLogger {
	c := &CacheLogger{
		logger:  logger,
		factory: factory,
		scopes:  NewScopeStack(),
	}
	c.filter = NewFilterLogger(c.IsEnabled, c.writeLogEntry, opts...)
	return c
}

// Log records the call when it passes filtering and forwards it to the
// wrapped logger. It returns ErrLoggerClosed once the logger is closed.
func (c *CacheLogger) Log(ctx context.Context, level Level, eventID EventID, state any, err error, formatter MessageFormatter) error {
	const op smerrors.Op = "testlogging.CacheLogger.Log"
	if formatter != nil && c.closed.Load() {
		return smerrors.New(op).Err(ErrLoggerClosed).Msg(errMsgLoggerClosed)
	}
	return c.filter.Log(ctx, level, eventID, state, err, formatter)
}

// IsEnabled delegates to the wrapped logger, or reports true when there is
// none.
func (c *CacheLogger) IsEnabled(level Level) bool {
	if c.logger == nil {
		return true
	}
	return c.logger.IsEnabled(level)
}

// BeginScope opens a scope on the wrapped logger, if any, and records state
// for the snapshots of entries logged inside the scope.
func (c *CacheLogger) BeginScope(ctx context.Context, state any) (context.Context, Scope) {
	if ctx == nil {
		ctx = context.Background()
	}
	var inner Scope
	if c.logger != nil {
		var innerCtx context.Context
		innerCtx, inner = c.logger.BeginScope(ctx, state)
		if innerCtx != nil {
			ctx = innerCtx
		}
	}
	return c.scopes.Begin(ctx, state, inner, nil)
}

func (c *CacheLogger) writeLogEntry(ctx context.Context, rec Record) error {
	const op smerrors.Op = "testlogging.CacheLogger.writeLogEntry"

	c.mu.RLock()
	defer c.mu.RUnlock()

	// Close may have completed between Log and acquiring the lock
	if c.closed.Load() {
		return smerrors.New(op).Err(ErrLoggerClosed).Msg(errMsgLoggerClosed)
	}

	c.cache.add(newLogEntry(rec, c.scopes.Snapshot(ctx)))

	if c.logger == nil {
		return nil
	}
	return c.logger.Log(ctx, rec.Level, rec.EventID, rec.State, rec.Err, rec.Formatter)
}

// Count returns the number of recorded entries.
func (c *CacheLogger) Count() int {
	return c.cache.count()
}

// Entries returns the recorded entries in logging order.
func (c *CacheLogger) Entries() []*LogEntry {
	return c.cache.all()
}

// Last returns the most recent entry, or nil when nothing has been recorded.
func (c *CacheLogger) Last() *LogEntry {
	return c.cache.last()
}

// ClearEntries discards all recorded entries. Configuration and the wrapped
// logger are unaffected.
func (c *CacheLogger) ClearEntries() {
	c.cache.clear()
}

// Close closes the owned factory, if any, after in-flight writes finish. The
// wrapped logger is not closed. It is safe to call Close multiple times.
func (c *CacheLogger) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.factory == nil {
		return nil
	}
	return c.factory.Close()
}
