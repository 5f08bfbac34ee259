package testlogging

const (
	// DefaultScopePaddingSpaces is the number of spaces used to indent each scope level.
	DefaultScopePaddingSpaces = 3
	// RedactedValue replaces every sensitive value found in formatted output.
	RedactedValue = "****"
	// StateKey is the synthetic key used when a log state is a single opaque value.
	StateKey = "State"
	// OriginalFormatKey holds the raw message template of a template state.
	OriginalFormatKey = "{OriginalFormat}"

	emptyString = ""
	lineBreak   = "\n"
)

const (
	errMsgNilFormatter     = "Message formatter is nil."
	errMsgBlankCategory    = "Category name is empty or whitespace."
	errMsgNilOutput        = "Test output is nil."
	errMsgNilLogger        = "Source logger is nil."
	errMsgNilFactory       = "Logger factory is nil."
	errMsgNilProvider      = "Logger provider is nil."
	errMsgNilTB            = "Test handle is nil."
	errMsgConfigInvalid    = "Logging configuration is invalid."
	errMsgConfigEnv        = "Logging configuration could not be read from the environment."
	errMsgTestBoundary     = "Test output was written after the owning test completed."
	errMsgLoggerClosed     = "Logger has been closed."
	errMsgFactoryClosed    = "Logger factory has been closed."
	errMsgUnknownLevel     = "Unknown log level."
	errMsgProviderFailed   = "Logger provider failed to create a logger."
	errMsgScopeWriteFailed = "Scope boundary could not be written."
)
