package testlogging

import "strings"

// redact replaces every case-sensitive occurrence of each sensitive value in
// text with RedactedValue. Empty values are ignored.
func redact(text string, sensitiveValues []string) string {
	if text == emptyString {
		return text
	}
	for _, value := range sensitiveValues {
		if value == emptyString {
			continue
		}
		text = strings.ReplaceAll(text, value, RedactedValue)
	}
	return text
}
