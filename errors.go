package testlogging

import (
	stderrs "errors"

	smerrors "github.com/Station-Manager/errors"
)

var (
	// ErrInvalidArgument marks programmer errors such as a nil formatter or a
	// blank category name. It is never suppressed.
	ErrInvalidArgument = stderrs.New("invalid argument")

	// ErrTestBoundary marks an output write that was rejected because the
	// owning test had already completed.
	ErrTestBoundary = stderrs.New("write outside of test boundary")

	// ErrLoggerClosed is returned when logging through a closed CacheLogger.
	ErrLoggerClosed = stderrs.New("logger closed")

	// ErrConfigInvalid is returned when a Config fails validation.
	ErrConfigInvalid = stderrs.New("invalid logging configuration")
)

// IsInvalidArgument reports whether err was caused by ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	return causedBy(err, ErrInvalidArgument)
}

// IsTestBoundary reports whether err was caused by ErrTestBoundary.
func IsTestBoundary(err error) bool {
	return causedBy(err, ErrTestBoundary)
}

// causedBy walks the cause chain of err the same way buildErrorChain does and
// reports whether target appears anywhere in it.
func causedBy(err, target error) bool {
	const maxDepth = 50

	for i := 0; err != nil && i < maxDepth; i++ {
		if stderrs.Is(err, target) {
			return true
		}
		if dErr, ok := smerrors.AsDetailedError(err); ok && dErr != nil {
			err = dErr.Cause()
			continue
		}
		err = stderrs.Unwrap(err)
	}
	return false
}

func invalidArgument(op smerrors.Op, msg string) error {
	return smerrors.New(op).Err(ErrInvalidArgument).Msg(msg)
}
