package testlogging

import (
	"strconv"
	"strings"

	smerrors "github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
)

// Level is the severity of a log call. None is a sentinel that disables logging
// rather than a severity above Critical.
type Level int

const (
	Trace Level = iota
	Debug
	Information
	Warning
	Error
	Critical
	None
)

var levelNames = [...]string{
	Trace:       "Trace",
	Debug:       "Debug",
	Information: "Information",
	Warning:     "Warning",
	Error:       "Error",
	Critical:    "Critical",
	None:        "None",
}

func (l Level) String() string {
	if l < Trace || l > None {
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
	return levelNames[l]
}

// Valid reports whether l is one of the defined levels, None included.
func (l Level) Valid() bool {
	return l >= Trace && l <= None
}

// ParseLevel parses a level name. Both the names used by this package
// ("Information", "warning", ...) and the zerolog names ("info", "warn",
// "fatal", "disabled", ...) are accepted.
func ParseLevel(s string) (Level, error) {
	const op smerrors.Op = "testlogging.ParseLevel"

	name := strings.TrimSpace(s)
	for i, n := range levelNames {
		if strings.EqualFold(n, name) {
			return Level(i), nil
		}
	}

	// zerolog also accepts its own numeric levels, which do not match ours
	if _, err := strconv.Atoi(name); err == nil {
		return None, smerrors.New(op).Err(ErrInvalidArgument).Msg(errMsgUnknownLevel + " " + s)
	}

	zl, err := parseLevel(strings.ToLower(name))
	if err != nil || name == emptyString {
		return None, smerrors.New(op).Err(ErrInvalidArgument).Msg(errMsgUnknownLevel + " " + s)
	}
	return fromZerologLevel(zl), nil
}

// zerologLevel maps a level onto the zerolog scale. Critical maps to
// zerolog.FatalLevel; callers must write it with WithLevel so nothing exits.
func (l Level) zerologLevel() zerolog.Level {
	switch l {
	case Trace:
		return zerolog.TraceLevel
	case Debug:
		return zerolog.DebugLevel
	case Information:
		return zerolog.InfoLevel
	case Warning:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	case Critical:
		return zerolog.FatalLevel
	default:
		return zerolog.Disabled
	}
}

func fromZerologLevel(l zerolog.Level) Level {
	switch l {
	case zerolog.TraceLevel:
		return Trace
	case zerolog.DebugLevel:
		return Debug
	case zerolog.InfoLevel, zerolog.NoLevel:
		return Information
	case zerolog.WarnLevel:
		return Warning
	case zerolog.ErrorLevel:
		return Error
	case zerolog.FatalLevel, zerolog.PanicLevel:
		return Critical
	default:
		return None
	}
}

// enabledFor reports whether level passes min. None is never enabled.
func enabledFor(level, min Level) bool {
	if level == None || !level.Valid() {
		return false
	}
	return level >= min
}
