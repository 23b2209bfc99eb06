// Package shared provides common utility functions used across multiple
// packages in the layerplot codebase.
package shared

import (
	"path/filepath"
	"strings"
)

// ResolvePath joins a relative path onto base. Empty and absolute paths are
// returned unchanged.
func ResolvePath(base string, path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || filepath.IsAbs(trimmed) {
		return trimmed
	}
	return filepath.Join(base, trimmed)
}

// NormalizeName lowercases a plot kind or aesthetic name and replaces
// hyphens and spaces with underscores.
func NormalizeName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	replacer := strings.NewReplacer("-", "_", " ", "_")
	return replacer.Replace(lower)
}

// GroupLabel joins the labels of one partition for use as a trace name.
func GroupLabel(labels []string) string {
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		if strings.TrimSpace(label) != "" {
			parts = append(parts, label)
		}
	}
	return strings.Join(parts, ", ")
}
