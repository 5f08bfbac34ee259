package testlogging

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
)

// Maximum recursion depth to prevent stack overflow
const maxDumpDepth = 10

// Maximum number of slice/array elements rendered
const maxDumpElements = 10

// dumpState renders a structured value as plain text lines. It handles
// structs (exported fields only), maps (sorted by key), slices and arrays, and
// falls back to %v for everything else. Cycles and excessive depth are
// reported inline. A panic raised by a value's own methods is captured and
// rendered as a diagnostic line instead of propagating.
func dumpState(v any) (lines []string) {
	d := &dumper{visited: make(map[uintptr]bool)}

	defer func() {
		if r := recover(); r != nil {
			lines = append(d.lines, fmt.Sprintf("<failed to render scope state: %v>", r))
		}
	}()

	if v == nil {
		return []string{"<nil>"}
	}
	d.dumpValue(v, emptyString, 0)
	return d.lines
}

type dumper struct {
	lines   []string
	visited map[uintptr]bool
}

func (d *dumper) printf(format string, args ...any) {
	d.lines = append(d.lines, fmt.Sprintf(format, args...))
}

// label prefixes text with "prefix: " unless prefix is empty.
func label(prefix, text string) string {
	if prefix == emptyString {
		return text
	}
	return prefix + ": " + text
}

// dumpValue is a recursive helper function for dumpState
func (d *dumper) dumpValue(v any, prefix string, depth int) {
	if depth > maxDumpDepth {
		d.printf("%s", label(prefix, "<max depth reached>"))
		return
	}

	if v == nil {
		d.printf("%s", label(prefix, "<nil>"))
		return
	}

	val := reflect.ValueOf(v)

	// Safely unwrap interfaces and handle pointers, with cycle detection.
	// Pointers are only tracked along the current path so shared values are
	// rendered each time they appear.
	for {
		switch val.Kind() {
		case reflect.Interface:
			if val.IsNil() {
				d.printf("%s", label(prefix, "<nil>"))
				return
			}
			val = val.Elem()
			continue
		case reflect.Ptr:
			if val.IsNil() {
				d.printf("%s", label(prefix, "<nil>"))
				return
			}
			ptr := val.Pointer()
			if d.visited[ptr] {
				d.printf("%s", label(prefix, "<circular reference>"))
				return
			}
			d.visited[ptr] = true
			defer delete(d.visited, ptr)
			val = val.Elem()
			continue
		default:
			// No-op
		}
		break
	}

	// Values that know how to render themselves are not expanded.
	if depth > 0 && val.CanInterface() {
		if text, ok := selfRendered(val.Interface()); ok {
			d.printf("%s", label(prefix, text))
			return
		}
	}

	typ := val.Type()

	switch val.Kind() {
	case reflect.Struct:
		if prefix == emptyString {
			d.printf("Struct: %s", typ.Name())
		} else {
			d.printf("%s: %s {", prefix, typ.Name())
		}

		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			fieldVal := val.Field(i)

			// Skip unexported fields
			if !fieldVal.CanInterface() {
				continue
			}

			fieldPrefix := field.Name
			if prefix != emptyString {
				fieldPrefix = prefix + "." + field.Name
			}

			d.dumpValue(fieldVal.Interface(), fieldPrefix, depth+1)
		}

		if prefix != emptyString {
			d.printf("%s: }", prefix)
		}

	case reflect.Map:
		d.printf("%s", label(prefix, fmt.Sprintf("map[%s]%s (len: %d) {", typ.Key().String(), typ.Elem().String(), val.Len())))

		keys := val.MapKeys()
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = fmt.Sprintf("%v", k.Interface())
		}
		order := make([]int, len(keys))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool { return names[order[a]] < names[order[b]] })

		for _, i := range order {
			d.dumpValue(val.MapIndex(keys[i]).Interface(), prefix+"["+names[i]+"]", depth+1)
		}

		d.printf("%s", label(prefix, "}"))

	case reflect.Slice, reflect.Array:
		if val.Kind() == reflect.Slice && val.IsNil() {
			d.printf("%s", label(prefix, "<nil>"))
			return
		}
		d.printf("%s", label(prefix, fmt.Sprintf("%s (len: %d) {", typ.String(), val.Len())))

		for i := 0; i < val.Len() && i < maxDumpElements; i++ {
			elemPrefix := fmt.Sprintf("%s[%d]", prefix, i)
			elem := val.Index(i)
			if elem.CanInterface() {
				d.dumpValue(elem.Interface(), elemPrefix, depth+1)
			} else {
				d.dumpValue(reflect.New(elem.Type()).Elem().Interface(), elemPrefix, depth+1)
			}
		}

		if val.Len() > maxDumpElements {
			d.printf("%s", label(prefix, fmt.Sprintf("... (%d more elements)", val.Len()-maxDumpElements)))
		}

		d.printf("%s", label(prefix, "}"))

	default:
		if val.IsValid() && val.CanInterface() {
			d.printf("%s", label(prefix, fmt.Sprintf("%v", val.Interface())))
		} else {
			d.printf("%s", label(prefix, fmt.Sprintf("%v", v)))
		}
	}
}

// selfRendered returns the text of values implementing error, fmt.Stringer
// or encoding.TextMarshaler.
func selfRendered(v any) (string, bool) {
	switch t := v.(type) {
	case error:
		return t.Error(), true
	case fmt.Stringer:
		return t.String(), true
	case encoding.TextMarshaler:
		b, err := t.MarshalText()
		if err != nil {
			return fmt.Sprintf("<%v>", err), true
		}
		return string(b), true
	}
	return emptyString, false
}

// isStructured reports whether v is rendered as a block of lines rather than
// inline text: structs, maps, slices and arrays, directly or behind pointers,
// that do not render themselves.
func isStructured(v any) bool {
	if v == nil {
		return false
	}
	switch v.(type) {
	case error, fmt.Stringer, encoding.TextMarshaler:
		return false
	}
	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Ptr || val.Kind() == reflect.Interface {
		if val.IsNil() {
			return false
		}
		val = val.Elem()
	}
	switch val.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}
