package testlogging

import (
	"slices"
	"sync"

	smerrors "github.com/Station-Manager/errors"
	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/atomic"
)

// Config controls how loggers filter, format and write. Loggers hold a
// reference and read it on every call, so changes made after construction
// apply to subsequent log calls. All accessors are safe for concurrent use.
type Config struct {
	minLevel             atomic.Int64
	scopePaddingSpaces   atomic.Int64
	ignoreBoundaryErrors atomic.Bool

	mu              sync.RWMutex
	formatter       Formatter
	scopeFormatter  Formatter
	sensitiveValues []string
}

// envConfig is the environment surface read by ConfigFromEnv.
type envConfig struct {
	Level                       string   `env:"TESTLOG_LEVEL" env-default:"Trace"`
	ScopePaddingSpaces          int      `env:"TESTLOG_SCOPE_PADDING" env-default:"3"`
	IgnoreTestBoundaryException bool     `env:"TESTLOG_IGNORE_TEST_BOUNDARY" env-default:"false"`
	SensitiveValues             []string `env:"TESTLOG_SENSITIVE_VALUES" env-separator:","`
}

// NewConfig returns a Config with the default formatters, Trace as the
// minimum level and DefaultScopePaddingSpaces.
func NewConfig() *Config {
	c := &Config{}
	c.SetMinLevel(Trace)
	c.SetScopePaddingSpaces(DefaultScopePaddingSpaces)
	return c
}

// Clone returns an independent copy of c.
func (c *Config) Clone() *Config {
	clone := &Config{}
	clone.SetMinLevel(c.MinLevel())
	clone.SetScopePaddingSpaces(c.ScopePaddingSpaces())
	clone.SetIgnoreTestBoundaryException(c.IgnoreTestBoundaryException())

	c.mu.RLock()
	clone.formatter = c.formatter
	clone.scopeFormatter = c.scopeFormatter
	clone.sensitiveValues = slices.Clone(c.sensitiveValues)
	c.mu.RUnlock()
	return clone
}

// MinLevel is the lowest level written. Defaults to Trace.
func (c *Config) MinLevel() Level {
	return Level(c.minLevel.Load())
}

func (c *Config) SetMinLevel(level Level) {
	c.minLevel.Store(int64(level))
}

// ScopePaddingSpaces is the indentation width of one scope level.
func (c *Config) ScopePaddingSpaces() int {
	return int(c.scopePaddingSpaces.Load())
}

func (c *Config) SetScopePaddingSpaces(spaces int) {
	c.scopePaddingSpaces.Store(int64(spaces))
}

// IgnoreTestBoundaryException reports whether ErrTestBoundary failures raised
// by the output, when logging races the end of a test, are discarded.
func (c *Config) IgnoreTestBoundaryException() bool {
	return c.ignoreBoundaryErrors.Load()
}

func (c *Config) SetIgnoreTestBoundaryException(ignore bool) {
	c.ignoreBoundaryErrors.Store(ignore)
}

// ConfigFromEnv builds a validated Config from TESTLOG_* environment variables.
func ConfigFromEnv() (*Config, error) {
	const op smerrors.Op = "testlogging.ConfigFromEnv"

	var env envConfig
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, smerrors.New(op).Err(err).Msg(errMsgConfigEnv)
	}

	level, err := ParseLevel(env.Level)
	if err != nil {
		return nil, smerrors.New(op).Err(err).Msg(errMsgConfigEnv)
	}

	cfg := NewConfig()
	cfg.SetMinLevel(level)
	cfg.SetScopePaddingSpaces(env.ScopePaddingSpaces)
	cfg.SetIgnoreTestBoundaryException(env.IgnoreTestBoundaryException)
	cfg.AddSensitiveValues(env.SensitiveValues...)

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the exported settings.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// Formatter returns the line formatter. It is never nil.
func (c *Config) Formatter() Formatter {
	c.mu.RLock()
	f := c.formatter
	c.mu.RUnlock()
	if f == nil {
		return NewDefaultFormatter(c)
	}
	return f
}

// SetFormatter replaces the line formatter. A nil formatter restores the
// default one.
func (c *Config) SetFormatter(f Formatter) {
	c.mu.Lock()
	c.formatter = f
	c.mu.Unlock()
}

// ScopeFormatter returns the formatter used for scope boundary markers. It is
// never nil.
func (c *Config) ScopeFormatter() Formatter {
	c.mu.RLock()
	f := c.scopeFormatter
	c.mu.RUnlock()
	if f == nil {
		return NewDefaultScopeFormatter(c)
	}
	return f
}

// SetScopeFormatter replaces the scope formatter. A nil formatter restores the
// default one.
func (c *Config) SetScopeFormatter(f Formatter) {
	c.mu.Lock()
	c.scopeFormatter = f
	c.mu.Unlock()
}

// AddSensitiveValues registers values that are masked in all formatted output.
func (c *Config) AddSensitiveValues(values ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, v := range values {
		if v == emptyString || slices.Contains(c.sensitiveValues, v) {
			continue
		}
		c.sensitiveValues = append(c.sensitiveValues, v)
	}
}

// RemoveSensitiveValue stops masking value.
func (c *Config) RemoveSensitiveValue(value string) {
	c.mu.Lock()
	c.sensitiveValues = slices.DeleteFunc(c.sensitiveValues, func(v string) bool { return v == value })
	c.mu.Unlock()
}

// SensitiveValues returns a copy of the registered sensitive values.
func (c *Config) SensitiveValues() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.sensitiveValues)
}

// Redact masks the registered sensitive values in text.
func (c *Config) Redact(text string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return redact(text, c.sensitiveValues)
}

func (c *Config) paddingFor(depth int) int {
	spaces := c.ScopePaddingSpaces()
	if depth <= 0 || spaces <= 0 {
		return 0
	}
	return depth * spaces
}
