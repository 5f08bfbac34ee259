package testlogging

import (
	"context"
	"sync"

	smerrors "github.com/Station-Manager/errors"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/atomic"
)

// Provider creates loggers for category names. A Provider is closed by the
// Factory it is registered with.
type Provider interface {
	CreateLogger(category string) (Logger, error)
	Close() error
}

// OutputProvider creates OutputLoggers over one Output and Config. All of its
// loggers share one ScopeStack so scopes opened through one category indent
// the output of every other.
type OutputProvider struct {
	output Output
	config *Config
	scopes *ScopeStack
}

// NewOutputProvider returns a provider writing to output. A nil cfg uses
// NewConfig.
func NewOutputProvider(output Output, cfg *Config) (*OutputProvider, error) {
	const op smerrors.Op = "testlogging.NewOutputProvider"
	if output == nil {
		return nil, invalidArgument(op, errMsgNilOutput)
	}
	if cfg == nil {
		cfg = NewConfig()
	}
	return &OutputProvider{
		output: output,
		config: cfg,
		scopes: NewScopeStack(),
	}, nil
}

func (p *OutputProvider) CreateLogger(category string) (Logger, error) {
	l, err := newOutputLogger(category, p.output, p.config, p.scopes)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (p *OutputProvider) Close() error {
	return nil
}

// CacheProvider creates one standalone CacheLogger per category and keeps it
// for later inspection.
type CacheProvider struct {
	mu      sync.Mutex
	loggers map[string]*CacheLogger
}

// NewCacheProvider returns an empty CacheProvider.
func NewCacheProvider() *CacheProvider {
	return &CacheProvider{loggers: make(map[string]*CacheLogger)}
}

func (p *CacheProvider) CreateLogger(category string) (Logger, error) {
	const op smerrors.Op = "testlogging.CacheProvider.CreateLogger"
	if isBlank(category) {
		return nil, invalidArgument(op, errMsgBlankCategory)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.loggers[category]; ok {
		return l, nil
	}
	l := NewCacheLogger()
	p.loggers[category] = l
	return l, nil
}

// Logger returns the cache logger created for category, if any.
func (p *CacheProvider) Logger(category string) (*CacheLogger, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.loggers[category]
	return l, ok
}

func (p *CacheProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var result *multierror.Error
	for _, l := range p.loggers {
		if err := l.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Factory combines providers. A logger created by the factory fans every call
// out to one logger per provider.
type Factory struct {
	mu        sync.RWMutex
	providers []Provider
	closed    atomic.Bool
}

// NewFactory returns a Factory over providers. Nil providers are ignored.
func NewFactory(providers ...Provider) *Factory {
	f := &Factory{}
	for _, p := range providers {
		if p != nil {
			f.providers = append(f.providers, p)
		}
	}
	return f
}

// AddProvider registers p. Loggers created earlier do not use it.
func (f *Factory) AddProvider(p Provider) error {
	const op smerrors.Op = "testlogging.Factory.AddProvider"
	if p == nil {
		return invalidArgument(op, errMsgNilProvider)
	}
	if f.closed.Load() {
		return smerrors.New(op).Err(ErrLoggerClosed).Msg(errMsgFactoryClosed)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	// Close may have completed before the lock was taken
	if f.closed.Load() {
		return smerrors.New(op).Err(ErrLoggerClosed).Msg(errMsgFactoryClosed)
	}
	f.providers = append(f.providers, p)
	return nil
}

// CreateLogger returns a logger for category backed by every provider.
func (f *Factory) CreateLogger(category string) (Logger, error) {
	const op smerrors.Op = "testlogging.Factory.CreateLogger"
	if isBlank(category) {
		return nil, invalidArgument(op, errMsgBlankCategory)
	}
	if f.closed.Load() {
		return nil, smerrors.New(op).Err(ErrLoggerClosed).Msg(errMsgFactoryClosed)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	loggers := make([]Logger, 0, len(f.providers))
	for _, p := range f.providers {
		l, err := p.CreateLogger(category)
		if err != nil {
			return nil, smerrors.New(op).Err(err).Msg(errMsgProviderFailed)
		}
		loggers = append(loggers, l)
	}
	return &multiLogger{loggers: loggers}, nil
}

// Close closes every provider. It is safe to call Close multiple times.
func (f *Factory) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var result *multierror.Error
	for _, p := range f.providers {
		if err := p.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// multiLogger fans calls out to several loggers.
type multiLogger struct {
	loggers []Logger
}

func (m *multiLogger) Log(ctx context.Context, level Level, eventID EventID, state any, err error, formatter MessageFormatter) error {
	const op smerrors.Op = "testlogging.multiLogger.Log"
	if formatter == nil {
		return invalidArgument(op, errMsgNilFormatter)
	}

	var result *multierror.Error
	for _, l := range m.loggers {
		if !l.IsEnabled(level) {
			continue
		}
		if logErr := l.Log(ctx, level, eventID, state, err, formatter); logErr != nil {
			result = multierror.Append(result, logErr)
		}
	}
	return result.ErrorOrNil()
}

func (m *multiLogger) IsEnabled(level Level) bool {
	for _, l := range m.loggers {
		if l.IsEnabled(level) {
			return true
		}
	}
	return false
}

func (m *multiLogger) BeginScope(ctx context.Context, state any) (context.Context, Scope) {
	if ctx == nil {
		ctx = context.Background()
	}
	scopes := make(multiScope, 0, len(m.loggers))
	for _, l := range m.loggers {
		next, s := l.BeginScope(ctx, state)
		if next != nil {
			ctx = next
		}
		if s != nil {
			scopes = append(scopes, s)
		}
	}
	return ctx, scopes
}

// multiScope closes its scopes in reverse order of opening.
type multiScope []Scope

func (m multiScope) Close() error {
	var result *multierror.Error
	for i := len(m) - 1; i >= 0; i-- {
		if err := m[i].Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
