package testlogging

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeCounter struct {
	mu     sync.Mutex
	closes int
	err    error
}

func (c *closeCounter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return c.err
}

func (c *closeCounter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closes
}

// nilScopeLogger accepts everything and opens no scopes of its own.
type nilScopeLogger struct{}

func (nilScopeLogger) Log(context.Context, Level, EventID, any, error, MessageFormatter) error {
	return nil
}

func (nilScopeLogger) IsEnabled(Level) bool { return true }

func (nilScopeLogger) BeginScope(context.Context, any) (context.Context, Scope) {
	return nil, nil
}

func TestCacheLogger_RecordsEntries(t *testing.T) {
	ctx := context.Background()
	c := NewCacheLogger()
	assert.Nil(t, c.Last())
	assert.Zero(t, c.Count())
	assert.True(t, c.IsEnabled(Trace))

	boom := errors.New("boom")
	require.NoError(t, c.Log(ctx, Information, EventID{ID: 1}, "first", nil, DefaultMessageFormatter))
	require.NoError(t, c.Log(ctx, Error, EventID{ID: 2, Name: "second"}, nil, boom, blankFormatter))
	require.NoError(t, c.Log(ctx, Information, EventID{}, nil, nil, blankFormatter))

	require.Equal(t, 2, c.Count())
	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Message)
	assert.Equal(t, Information, entries[0].Level)
	assert.Equal(t, "first", entries[0].State.Value())

	last := c.Last()
	require.NotNil(t, last)
	assert.Same(t, entries[1], last)
	assert.Equal(t, Error, last.Level)
	assert.Equal(t, EventID{ID: 2, Name: "second"}, last.EventID)
	assert.Same(t, boom, last.Err)
	assert.Empty(t, last.Message)

	c.ClearEntries()
	assert.Zero(t, c.Count())
	assert.Nil(t, c.Last())
	assert.Len(t, entries, 2, "earlier snapshots are unaffected by clearing")

	require.NoError(t, c.Log(ctx, Warning, EventID{ID: 3}, "third", nil, DefaultMessageFormatter))
	assert.Equal(t, 1, c.Count())
	last = c.Last()
	require.NotNil(t, last)
	assert.Equal(t, "third", last.Message)
	assert.Equal(t, Warning, last.Level)
}

func TestCacheLogger_NilFormatter(t *testing.T) {
	c := NewCacheLogger()
	err := c.Log(context.Background(), Information, EventID{}, "x", nil, nil)
	assert.True(t, IsInvalidArgument(err))
	assert.Zero(t, c.Count())
}

func TestCacheLogger_EntriesAreImmutable(t *testing.T) {
	c := NewCacheLogger()
	state := State{{Key: "k", Value: "v"}}
	require.NoError(t, c.Log(context.Background(), Information, EventID{}, state, nil, DefaultMessageFormatter))
	state[0].Value = "changed"

	last := c.Last()
	require.NotNil(t, last)
	assert.Equal(t, "v", last.State[0].Value)
	assert.Equal(t, "k=v", last.Message)
}

func TestCacheLogger_ScopeSnapshots(t *testing.T) {
	c := NewCacheLogger()
	ctxA, a := c.BeginScope(context.Background(), "A")
	ctxB, b := c.BeginScope(ctxA, "B")

	require.NoError(t, LogInformation(ctxB, c, "inside both"))
	require.NoError(t, b.Close())
	require.NoError(t, LogInformation(ctxB, c, "inside A"))
	require.NoError(t, a.Close())
	require.NoError(t, LogInformation(ctxB, c, "outside"))

	entries := c.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, []any{"B", "A"}, entries[0].Scopes())
	assert.Equal(t, []any{"A"}, entries[1].Scopes())
	assert.Empty(t, entries[2].Scopes())

	scopes := entries[0].Scopes()
	scopes[0] = "mutated"
	assert.Equal(t, []any{"B", "A"}, entries[0].Scopes())
}

func TestCacheLogger_ConcurrentLogging(t *testing.T) {
	c := NewCacheLogger()

	const total = 1000
	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx, s := c.BeginScope(context.Background(), i)
			defer func() { _ = s.Close() }()
			assert.NoError(t, LogDebug(ctx, c, "message {Index}", i))
		}(i)
	}
	wg.Wait()

	require.Equal(t, total, c.Count())
	for _, e := range c.Entries() {
		index, ok := e.State.Get("Index")
		require.True(t, ok)
		assert.Equal(t, []any{index}, e.Scopes(), "scope snapshot belongs to the logging goroutine")
	}
}

func TestCacheLogger_WrapsLogger(t *testing.T) {
	cfg := NewConfig()
	cfg.SetMinLevel(Information)
	inner, out := newTestOutputLogger(t, cfg)

	_, err := WrapLogger(nil)
	assert.True(t, IsInvalidArgument(err))

	c, err := WrapLogger(inner)
	require.NoError(t, err)

	assert.False(t, c.IsEnabled(Debug))
	assert.True(t, c.IsEnabled(Warning))

	ctx, s := c.BeginScope(context.Background(), "job")
	require.NoError(t, c.Log(ctx, Debug, EventID{}, "hidden", nil, DefaultMessageFormatter))
	require.NoError(t, c.Log(ctx, Warning, EventID{ID: 4}, "visible", nil, DefaultMessageFormatter))
	require.NoError(t, s.Close())

	require.Equal(t, 1, c.Count())
	assert.Equal(t, []any{"job"}, c.Last().Scopes())
	assert.Equal(t, []string{
		"<Scope: job>",
		"   Warning [4]: visible",
		"</Scope: job>",
	}, out.Lines())

	require.NoError(t, c.Close())
	assert.NoError(t, inner.Log(context.Background(), Error, EventID{}, "inner still open", nil, DefaultMessageFormatter))
}

func TestCacheLogger_WrappedErrorsAreReturned(t *testing.T) {
	pipe := errors.New("broken pipe")
	inner, err := NewOutputLogger("orders", &recordingOutput{err: pipe}, nil)
	require.NoError(t, err)
	c, err := WrapLogger(inner)
	require.NoError(t, err)

	assert.ErrorIs(t, c.Log(context.Background(), Information, EventID{}, "x", nil, DefaultMessageFormatter), pipe)
	assert.Equal(t, 1, c.Count())
}

func TestWithCache(t *testing.T) {
	inner, _ := newTestOutputLogger(t, nil)

	_, err := WithCache(nil, &closeCounter{})
	assert.True(t, IsInvalidArgument(err))
	_, err = WithCache(inner, nil)
	assert.True(t, IsInvalidArgument(err))

	factory := &closeCounter{}
	c, err := WithCache(inner, factory)
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, factory.count())
}

func TestCacheLogger_Close(t *testing.T) {
	ctx := context.Background()
	c := NewCacheLogger()
	require.NoError(t, c.Log(ctx, Information, EventID{}, "before", nil, DefaultMessageFormatter))
	require.NoError(t, c.Close())

	err := c.Log(ctx, Information, EventID{}, "after", nil, DefaultMessageFormatter)
	require.Error(t, err)
	assert.True(t, causedBy(err, ErrLoggerClosed))
	assert.True(t, IsInvalidArgument(c.Log(ctx, Information, EventID{}, "after", nil, nil)))
	assert.Equal(t, 1, c.Count(), "entries stay readable after close")

	factoryErr := errors.New("close failed")
	inner, _ := newTestOutputLogger(t, nil)
	owned, err := WithCache(inner, &closeCounter{err: factoryErr})
	require.NoError(t, err)
	assert.ErrorIs(t, owned.Close(), factoryErr)
}

func TestCacheLogger_CloseWhileLogging(t *testing.T) {
	c := NewCacheLogger()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := c.Log(context.Background(), Information, EventID{}, "racing", nil, DefaultMessageFormatter)
			if err != nil {
				assert.True(t, causedBy(err, ErrLoggerClosed))
			}
		}()
	}
	require.NoError(t, c.Close())
	wg.Wait()
	assert.LessOrEqual(t, c.Count(), 50)
}

func TestCacheLogger_NilInnerScope(t *testing.T) {
	c, err := WrapLogger(nilScopeLogger{})
	require.NoError(t, err)

	ctx, s := c.BeginScope(context.Background(), "A")
	require.NotNil(t, ctx)
	require.NotNil(t, s)
	require.NoError(t, LogInformation(ctx, c, "inside"))

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, []any{"A"}, entries[0].Scopes())

	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
	assert.Empty(t, c.scopes.Snapshot(ctx))
}
