package testlogging

import (
	"fmt"
	"strconv"
	"strings"

	smerrors "github.com/Station-Manager/errors"
)

// scopeWriter writes the boundary markers of one OutputLogger scope.
//
// Inline states (strings, primitives and values that render themselves) are
// written as "<Scope: text>" and "</Scope: text>". Nil or blank states are
// written as "<Scope N>" where N is the 1-based depth. Structured states are
// written as "<Scope N>", followed by the dumped value one level deeper, and
// "</Scope N>".
type scopeWriter struct {
	logger     *OutputLogger
	depth      int
	inline     string
	structured []string
}

func newScopeWriter(l *OutputLogger, state any, depth int) *scopeWriter {
	w := &scopeWriter{logger: l, depth: depth}
	w.inline, w.structured = describeScopeState(state)
	return w
}

// describeScopeState returns the inline text of state, or the dumped lines
// when state is structured. User methods that panic produce diagnostic text.
func describeScopeState(state any) (inline string, structured []string) {
	defer func() {
		if r := recover(); r != nil {
			inline = fmt.Sprintf("<failed to render scope state: %v>", r)
			structured = nil
		}
	}()

	switch s := state.(type) {
	case nil:
		return emptyString, nil
	case string:
		return s, nil
	}

	if isStructured(state) {
		return emptyString, dumpState(state)
	}
	if text, ok := selfRendered(state); ok {
		return text, nil
	}
	return fmt.Sprint(state), nil
}

func (w *scopeWriter) marker(end bool) string {
	slash := emptyString
	if end {
		slash = "/"
	}
	if w.structured != nil || isBlank(w.inline) {
		return "<" + slash + "Scope " + strconv.Itoa(w.depth+1) + ">"
	}
	return "<" + slash + "Scope: " + w.inline + ">"
}

func (w *scopeWriter) start() error {
	if err := w.write(w.depth, w.marker(false)); err != nil {
		return err
	}
	if len(w.structured) == 0 {
		return nil
	}

	formatter := w.logger.config.ScopeFormatter()
	lines := make([]string, 0, len(w.structured))
	for _, line := range w.structured {
		if text := formatter.Format(w.depth+1, w.logger.name, Information, EventID{}, line, nil); text != emptyString {
			lines = append(lines, text)
		}
	}
	return w.logger.writeLine(strings.Join(lines, lineBreak))
}

func (w *scopeWriter) end() error {
	return w.write(w.depth, w.marker(true))
}

func (w *scopeWriter) write(depth int, message string) error {
	const op smerrors.Op = "testlogging.scopeWriter.write"

	text := w.logger.config.ScopeFormatter().Format(depth, w.logger.name, Information, EventID{}, message, nil)
	if err := w.logger.writeLine(text); err != nil {
		return smerrors.New(op).Err(err).Msg(errMsgScopeWriteFailed)
	}
	return nil
}
