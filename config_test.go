package testlogging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, Trace, cfg.MinLevel())
	assert.Equal(t, DefaultScopePaddingSpaces, cfg.ScopePaddingSpaces())
	assert.False(t, cfg.IgnoreTestBoundaryException())
	assert.Empty(t, cfg.SensitiveValues())
	assert.IsType(t, &DefaultFormatter{}, cfg.Formatter())
	assert.IsType(t, &DefaultScopeFormatter{}, cfg.ScopeFormatter())
	require.NoError(t, cfg.Validate())
}

func TestConfig_SetFormatter(t *testing.T) {
	cfg := NewConfig()
	custom := FormatterFunc(func(int, string, Level, EventID, string, error) string { return "custom" })

	cfg.SetFormatter(custom)
	assert.Equal(t, "custom", cfg.Formatter().Format(0, "c", Information, EventID{}, "m", nil))

	cfg.SetFormatter(nil)
	require.NotNil(t, cfg.Formatter())
	assert.IsType(t, &DefaultFormatter{}, cfg.Formatter())

	cfg.SetScopeFormatter(custom)
	assert.Equal(t, "custom", cfg.ScopeFormatter().Format(0, "c", Information, EventID{}, "m", nil))
	cfg.SetScopeFormatter(nil)
	assert.IsType(t, &DefaultScopeFormatter{}, cfg.ScopeFormatter())
}

func TestConfig_Validate(t *testing.T) {
	t.Run("negative padding", func(t *testing.T) {
		cfg := NewConfig()
		cfg.SetScopePaddingSpaces(-1)
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, causedBy(err, ErrConfigInvalid))
		assert.Contains(t, err.Error(), errMsgConfigInvalid)
	})

	t.Run("unknown level", func(t *testing.T) {
		cfg := NewConfig()
		cfg.SetMinLevel(Level(9))
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, causedBy(err, ErrConfigInvalid))
	})

	t.Run("nil config", func(t *testing.T) {
		var cfg *Config
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, IsInvalidArgument(err))
	})
}

func TestConfig_SensitiveValues(t *testing.T) {
	cfg := NewConfig()
	cfg.AddSensitiveValues("secret", "", "secret", "token")
	assert.Equal(t, []string{"secret", "token"}, cfg.SensitiveValues())

	values := cfg.SensitiveValues()
	values[0] = "changed"
	assert.Equal(t, []string{"secret", "token"}, cfg.SensitiveValues(), "returned slice is a copy")

	assert.Equal(t, "a **** and a ****", cfg.Redact("a secret and a token"))

	cfg.RemoveSensitiveValue("token")
	assert.Equal(t, "a **** and a token", cfg.Redact("a secret and a token"))
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("reads every variable", func(t *testing.T) {
		t.Setenv("TESTLOG_LEVEL", "warn")
		t.Setenv("TESTLOG_SCOPE_PADDING", "2")
		t.Setenv("TESTLOG_IGNORE_TEST_BOUNDARY", "true")
		t.Setenv("TESTLOG_SENSITIVE_VALUES", "alpha,beta")

		cfg, err := ConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, Warning, cfg.MinLevel())
		assert.Equal(t, 2, cfg.ScopePaddingSpaces())
		assert.True(t, cfg.IgnoreTestBoundaryException())
		assert.Equal(t, []string{"alpha", "beta"}, cfg.SensitiveValues())
	})

	t.Run("bad level", func(t *testing.T) {
		t.Setenv("TESTLOG_LEVEL", "chatty")
		_, err := ConfigFromEnv()
		require.Error(t, err)
		assert.True(t, IsInvalidArgument(err))
		assert.Contains(t, err.Error(), errMsgConfigEnv)
	})

	t.Run("padding out of range", func(t *testing.T) {
		t.Setenv("TESTLOG_LEVEL", "debug")
		t.Setenv("TESTLOG_SCOPE_PADDING", "99")
		_, err := ConfigFromEnv()
		require.Error(t, err)
		assert.True(t, causedBy(err, ErrConfigInvalid))
	})
}
