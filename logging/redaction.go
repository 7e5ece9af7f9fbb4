package logging

import (
	"log/slog"
	"regexp"
	"strings"
)

// sensitiveKeyPatterns for attribute name redaction. Config keys are dotted
// paths, so a match anywhere in the key counts.
var sensitiveKeyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(password|passwd|pwd)`),
	regexp.MustCompile(`(?i)(token|api[_-]?key|secret|credential)`),
	regexp.MustCompile(`(?i)(private[_-]?key|secret[_-]?key)`),
}

// piiPatterns for value redaction.
var piiPatterns = []*regexp.Regexp{
	// Email
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	// Credit card (basic)
	regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),
}

const redactedValue = "[REDACTED]"
const piiValue = "[PII]"

// IsSensitiveKey reports whether values under key must not be logged.
func IsSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if pattern.MatchString(lowerKey) {
			return true
		}
	}
	return false
}

// RedactSensitive redacts sensitive field values.
func RedactSensitive(key string, value any) any {
	if IsSensitiveKey(key) {
		return redactedValue
	}
	if str, ok := value.(string); ok {
		return redactPII(str)
	}
	return value
}

func redactPII(s string) string {
	if !ContainsPII(s) {
		return s
	}
	result := s
	for _, pattern := range piiPatterns {
		result = pattern.ReplaceAllString(result, piiValue)
	}
	return result
}

// ContainsPII checks if a string contains PII patterns.
func ContainsPII(s string) bool {
	for _, pattern := range piiPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// redactAttr is the slog ReplaceAttr hook installed when Config.Redact is set.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey || a.Key == slog.LevelKey || a.Key == slog.SourceKey {
		return a
	}
	if a.Value.Kind() == slog.KindString || IsSensitiveKey(a.Key) {
		return slog.Any(a.Key, RedactSensitive(a.Key, a.Value.Any()))
	}
	return a
}
