package testlogging

import (
	"strings"
)

// DefaultFormatter renders log lines as
//
//	<padding><Level> [<EventID>]: <message>
//	<padding><Level> [<EventID>]: <error>
//
// The error line is only written when an error is present and the message
// line only when the message is not blank. Event id 0 is rendered as "[0]".
// The category name is not written. Sensitive values registered on the
// Config are masked in both lines.
type DefaultFormatter struct {
	config *Config
}

// NewDefaultFormatter returns a DefaultFormatter reading padding and
// sensitive values from cfg. A nil cfg uses NewConfig.
func NewDefaultFormatter(cfg *Config) *DefaultFormatter {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &DefaultFormatter{config: cfg}
}

func (f *DefaultFormatter) Format(scopeDepth int, _ string, level Level, eventID EventID, message string, err error) string {
	padding := strings.Repeat(" ", f.config.paddingFor(scopeDepth))
	prefix := padding + level.String() + " [" + eventID.String() + "]: "

	parts := make([]string, 0, 2)
	if !isBlank(message) {
		parts = append(parts, prefix+f.config.Redact(message))
	}
	if err != nil {
		parts = append(parts, prefix+f.config.Redact(renderError(err)))
	}
	return strings.Join(parts, lineBreak)
}

// DefaultScopeFormatter renders scope boundary text as "<padding><message>"
// with an optional "<padding><error>" line. Level and event id are not
// written.
type DefaultScopeFormatter struct {
	config *Config
}

// NewDefaultScopeFormatter returns a DefaultScopeFormatter over cfg. A nil cfg
// uses NewConfig.
func NewDefaultScopeFormatter(cfg *Config) *DefaultScopeFormatter {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &DefaultScopeFormatter{config: cfg}
}

func (f *DefaultScopeFormatter) Format(scopeDepth int, _ string, _ Level, _ EventID, message string, err error) string {
	padding := strings.Repeat(" ", f.config.paddingFor(scopeDepth))

	parts := make([]string, 0, 2)
	if !isBlank(message) {
		parts = append(parts, padding+f.config.Redact(message))
	}
	if err != nil {
		parts = append(parts, padding+f.config.Redact(renderError(err)))
	}
	return strings.Join(parts, lineBreak)
}
