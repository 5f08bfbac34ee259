package testlogging

import (
	"errors"
	"fmt"
	"testing"

	smerrors "github.com/Station-Manager/errors"
	"github.com/stretchr/testify/assert"
)

func TestDefaultFormatter_Format(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		depth   int
		level   Level
		eventID EventID
		message string
		err     error
		want    string
	}{
		{"error only", 0, Error, EventID{ID: 7}, "", boom, "Error [7]: boom"},
		{"message only", 0, Information, EventID{}, "hello", nil, "Information [0]: hello"},
		{"message and error", 0, Warning, EventID{ID: 3, Name: "named"}, "hello", boom, "Warning [3]: hello\nWarning [3]: boom"},
		{"padded", 2, Debug, EventID{ID: 1}, "nested", nil, "      Debug [1]: nested"},
		{"blank message", 0, Trace, EventID{}, "   ", nil, ""},
	}
	f := NewDefaultFormatter(NewConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(tt.depth, "category", tt.level, tt.eventID, tt.message, tt.err))
		})
	}
}

func TestDefaultFormatter_Redaction(t *testing.T) {
	cfg := NewConfig()
	cfg.AddSensitiveValues("secret")
	f := NewDefaultFormatter(cfg)

	got := f.Format(0, "category", Information, EventID{}, "this secret message", errors.New("failed with secret"))
	assert.Contains(t, got, "this **** message")
	assert.Contains(t, got, "failed with ****")
	assert.NotContains(t, got, "secret")

	// values added later apply to later calls
	cfg.AddSensitiveValues("message")
	assert.Equal(t, "Information [0]: this **** ****", f.Format(0, "category", Information, EventID{}, "this secret message", nil))
}

func TestDefaultFormatter_ReadsConfigLive(t *testing.T) {
	cfg := NewConfig()
	f := NewDefaultFormatter(cfg)
	cfg.SetScopePaddingSpaces(1)
	assert.Equal(t, "  Trace [0]: x", f.Format(2, "category", Trace, EventID{}, "x", nil))
}

func TestDefaultFormatter_ErrorChain(t *testing.T) {
	f := NewDefaultFormatter(nil)

	inner := smerrors.New("db.Connect").Msg("connection refused")
	outer := smerrors.New("server.Start").Err(inner).Msg("startup failed")
	assert.Equal(t, "Error [0]: startup failed -> connection refused", f.Format(0, "c", Error, EventID{}, "", outer))

	wrapped := fmt.Errorf("outer: %w", errors.New("inner"))
	assert.Equal(t, "Error [0]: outer: inner", f.Format(0, "c", Error, EventID{}, "", wrapped))
}

func TestDefaultScopeFormatter_Format(t *testing.T) {
	cfg := NewConfig()
	cfg.AddSensitiveValues("hidden")
	f := NewDefaultScopeFormatter(cfg)

	assert.Equal(t, "<Scope: a>", f.Format(0, "c", Information, EventID{}, "<Scope: a>", nil))
	assert.Equal(t, "   <Scope: ****>", f.Format(1, "c", Critical, EventID{ID: 9}, "<Scope: hidden>", nil))
	assert.Equal(t, "   x\n   boom", f.Format(1, "c", Information, EventID{}, "x", errors.New("boom")))
	assert.Empty(t, f.Format(1, "c", Information, EventID{}, "", nil))
}
