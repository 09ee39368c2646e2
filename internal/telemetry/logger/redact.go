package logger

import (
	"log/slog"
	"strings"
)

// Key patterns whose string values are redacted.
var sensitiveKeyPatterns = []string{
	"pass", // password, requirepass
	"secret",
	"auth",
	"credential",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive redacts an attribute whose key suggests credential
// material. Groups are walked recursively.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		keyLower := strings.ToLower(a.Key)
		for _, pattern := range sensitiveKeyPatterns {
			if strings.Contains(keyLower, pattern) && a.Value.String() != "" {
				return slog.String(a.Key, redactedValue)
			}
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}

// RedactCommand masks the arguments of credential-bearing commands so a
// command line can be logged verbatim otherwise. AUTH arguments are
// always masked; CONFIG SET requirepass masks the trailing value.
func RedactCommand(tokens []string) []string {
	if len(tokens) == 0 {
		return tokens
	}
	out := make([]string, len(tokens))
	copy(out, tokens)

	switch strings.ToUpper(tokens[0]) {
	case "AUTH":
		for i := 1; i < len(out); i++ {
			out[i] = redactedValue
		}
	case "CONFIG":
		if len(tokens) >= 4 && strings.EqualFold(tokens[1], "SET") && IsSensitiveKey(tokens[2]) {
			for i := 3; i < len(out); i++ {
				out[i] = redactedValue
			}
		}
	}
	return out
}
