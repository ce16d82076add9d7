// Package validation contains small helpers for working with nullable
// fields and their wire representations.
package validation

import "time"

func StringPtr(s string) *string {
	return &s
}

// StringPtrIfNotEmpty returns a pointer to string if not empty, otherwise nil
func StringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GetStringOrEmpty returns the string value or an empty string if nil
func GetStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetStringOrDefault returns the string value or a default value if nil
func GetStringOrDefault(s *string, defaultValue string) string {
	if s == nil {
		return defaultValue
	}
	return *s
}

func TimePtr(t time.Time) *time.Time {
	return &t
}

// FormatTimeToString renders a timestamp as RFC3339 for the wire.
func FormatTimeToString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtrToString renders an optional timestamp as RFC3339, empty when nil.
func FormatTimePtrToString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatTimeToString(*t)
}
