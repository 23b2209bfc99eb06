package adapters

import (
	"strings"
	"time"
)

var temporalLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimeFlexible reports false for blank or unparseable input.
func parseTimeFlexible(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range temporalLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

// looksTemporal reports whether every non-blank value parses as a time and at
// least one value is present.
func looksTemporal(values []string) bool {
	seen := false
	for _, value := range values {
		if strings.TrimSpace(value) == "" || value == "NaN" {
			continue
		}
		if _, ok := parseTimeFlexible(value); !ok {
			return false
		}
		seen = true
	}
	return seen
}
