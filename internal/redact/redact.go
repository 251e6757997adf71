// Package redact masks personal data before it reaches the logs.
package redact

import "strings"

// Email keeps the first two runes of the local part and the domain.
// Anything that is not a single-@ address is fully masked.
func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := []rune(parts[0]), parts[1]
	if len(local) > 2 {
		return string(local[:2]) + "***@" + domain
	}
	return "***@" + domain
}

// Token hides a bearer token, keeping only whether one is present.
func Token(s string) string {
	if s == "" {
		return ""
	}
	return "[REDACTED_TOKEN]"
}
