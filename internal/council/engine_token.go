package council

import "strings"

// EngineFileToken derives a filesystem-safe token from an engine name for
// use in peer-review-by-<token>.md. Every character outside [A-Za-z0-9_-]
// becomes a dash. The emptiness check runs against the dash-trimmed form,
// but the untrimmed substitution result is what callers get back; an engine
// of "!!" therefore yields "claude" while "!x!" yields "-x-". That asymmetry
// is long-standing observed behavior and file names on disk depend on it.
func EngineFileToken(engine string) string {
	var b strings.Builder
	for _, r := range engine {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	sanitized := b.String()
	if strings.Trim(sanitized, "-") == "" {
		return "claude"
	}
	return sanitized
}
