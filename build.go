package testlogging

import (
	"reflect"
	"testing"

	smerrors "github.com/Station-Manager/errors"
)

type buildOptions struct {
	config    *Config
	minLevel  *Level
	category  string
	providers []Provider
}

// BuildOption customises BuildLogger.
type BuildOption func(*buildOptions)

// WithConfig uses cfg for the test output logger.
func WithConfig(cfg *Config) BuildOption {
	return func(o *buildOptions) {
		o.config = cfg
	}
}

// WithMinLevel overrides the minimum level. A config passed with WithConfig
// is copied first and the copy is used.
func WithMinLevel(level Level) BuildOption {
	return func(o *buildOptions) {
		o.minLevel = &level
	}
}

// WithCategory overrides the category name, which defaults to tb.Name().
func WithCategory(category string) BuildOption {
	return func(o *buildOptions) {
		o.category = category
	}
}

// WithProvider adds another provider next to the test output provider.
func WithProvider(p Provider) BuildOption {
	return func(o *buildOptions) {
		o.providers = append(o.providers, p)
	}
}

// BuildLogger returns a CacheLogger that records every entry and writes it to
// the output of tb. The logger owns its factory and is closed by tb.Cleanup.
// Construction failures fail the test.
func BuildLogger(tb testing.TB, opts ...BuildOption) *CacheLogger {
	const op smerrors.Op = "testlogging.BuildLogger"
	if tb == nil {
		panic(invalidArgument(op, errMsgNilTB))
	}
	tb.Helper()

	o := buildOptions{category: tb.Name()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	cfg := o.config
	if cfg == nil {
		cfg = NewConfig()
	}
	if o.minLevel != nil {
		// leave a caller's config untouched, it may be shared
		cfg = cfg.Clone()
		cfg.SetMinLevel(*o.minLevel)
	}
	if err := cfg.Validate(); err != nil {
		tb.Fatalf("%s: %v", op, err)
		return nil
	}

	output, err := NewOutputProvider(TestOutput(tb), cfg)
	if err != nil {
		tb.Fatalf("%s: %v", op, err)
		return nil
	}

	factory := NewFactory(append([]Provider{output}, o.providers...)...)
	logger, err := factory.CreateLogger(o.category)
	if err != nil {
		_ = factory.Close()
		tb.Fatalf("%s: %v", op, err)
		return nil
	}

	cache, err := WithCache(logger, factory)
	if err != nil {
		_ = factory.Close()
		tb.Fatalf("%s: %v", op, err)
		return nil
	}
	tb.Cleanup(func() { _ = cache.Close() })
	return cache
}

// BuildLoggerFor is BuildLogger with the category named after T.
func BuildLoggerFor[T any](tb testing.TB, opts ...BuildOption) *CacheLogger {
	if tb != nil {
		tb.Helper()
	}
	return BuildLogger(tb, append([]BuildOption{WithCategory(CategoryFor[T]())}, opts...)...)
}

// CategoryFor returns the category name used for T: its package path and
// type name. Pointer types are named after the type they point to.
func CategoryFor[T any]() string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == emptyString || t.Name() == emptyString {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
