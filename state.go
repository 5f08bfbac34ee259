package testlogging

import (
	"fmt"
	"sort"
	"strings"
)

// KeyValue is one named value of a log state.
type KeyValue struct {
	Key   string
	Value any
}

// State is the structured payload of a log call: an ordered sequence of
// key/value pairs. A single opaque value is held under StateKey.
type State []KeyValue

// NewState normalises an arbitrary log payload into a State. State and
// []KeyValue values are used as they are, map[string]any becomes pairs sorted
// by key and anything else, nil included, is wrapped under StateKey.
func NewState(v any) State {
	switch s := v.(type) {
	case State:
		return s
	case []KeyValue:
		return State(s)
	case map[string]any:
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		state := make(State, 0, len(keys))
		for _, k := range keys {
			state = append(state, KeyValue{Key: k, Value: s[k]})
		}
		return state
	default:
		return State{{Key: StateKey, Value: v}}
	}
}

// Get returns the value stored under key.
func (s State) Get(key string) (any, bool) {
	for _, kv := range s {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// Value returns the opaque value of a single-value state, or nil.
func (s State) Value() any {
	if len(s) != 1 || s[0].Key != StateKey {
		return nil
	}
	return s[0].Value
}

// Map copies the pairs into a map. Later duplicates win.
func (s State) Map() map[string]any {
	m := make(map[string]any, len(s))
	for _, kv := range s {
		m[kv.Key] = kv.Value
	}
	return m
}

// String renders the state. A single-value state renders its value and a
// template state renders its message.
func (s State) String() string {
	if format, ok := s.Get(OriginalFormatKey); ok {
		if f, isString := format.(string); isString {
			return renderTemplate(f, s)
		}
	}
	if len(s) == 1 && s[0].Key == StateKey {
		return formatValue(s[0].Value)
	}

	var b strings.Builder
	for i, kv := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(formatValue(kv.Value))
	}
	return b.String()
}

// DefaultMessageFormatter renders the state with State.String.
func DefaultMessageFormatter(state State, _ error) string {
	return state.String()
}

// NewTemplateState binds the named holes of a message template such as
// "Order {OrderID} shipped to {City}" to args in order. The raw template is
// kept under OriginalFormatKey as the last pair.
func NewTemplateState(format string, args ...any) State {
	names := templateHoles(format)
	state := make(State, 0, len(names)+1)
	for i, name := range names {
		if i >= len(args) {
			break
		}
		state = append(state, KeyValue{Key: name, Value: args[i]})
	}
	return append(state, KeyValue{Key: OriginalFormatKey, Value: format})
}

// TemplateFormatter renders a template state built by NewTemplateState. Other
// states render through State.String.
func TemplateFormatter(state State, _ error) string {
	return state.String()
}

// templateHoles returns the hole names of format in order of appearance.
func templateHoles(format string) []string {
	var names []string
	scanTemplate(format, func(literal string) {}, func(name string, _ string) {
		names = append(names, name)
	})
	return names
}

// renderTemplate substitutes the holes of format with the values bound in
// state. A hole with no bound value is written verbatim.
func renderTemplate(format string, state State) string {
	var b strings.Builder
	index := 0
	scanTemplate(format, func(literal string) {
		b.WriteString(literal)
	}, func(name string, raw string) {
		// holes are bound positionally, so a repeated name still consumes a slot
		if index < len(state)-1 && state[index].Key == name {
			b.WriteString(formatValue(state[index].Value))
		} else {
			b.WriteString(raw)
		}
		index++
	})
	return b.String()
}

// scanTemplate splits format into literal text and "{name}" holes. "{{" and
// "}}" are escaped braces. An unterminated hole is treated as literal text.
func scanTemplate(format string, literal func(string), hole func(name, raw string)) {
	var lit strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		switch {
		case c == '{' && i+1 < len(format) && format[i+1] == '{':
			lit.WriteByte('{')
			i++
		case c == '}' && i+1 < len(format) && format[i+1] == '}':
			lit.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(format[i+1:], '}')
			if end < 0 {
				lit.WriteString(format[i:])
				i = len(format)
				continue
			}
			raw := format[i : i+end+2]
			name := format[i+1 : i+end+1]
			// format specifiers such as {Amount:N2} bind by the name only
			if colon := strings.IndexAny(name, ":,"); colon >= 0 {
				name = name[:colon]
			}
			if lit.Len() > 0 {
				literal(lit.String())
				lit.Reset()
			}
			hole(name, raw)
			i += end + 1
		default:
			lit.WriteByte(c)
		}
	}
	if lit.Len() > 0 {
		literal(lit.String())
	}
}

// formatValue renders a single state value. nil renders as "(null)".
func formatValue(v any) string {
	if v == nil {
		return "(null)"
	}
	switch t := v.(type) {
	case string:
		return t
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
