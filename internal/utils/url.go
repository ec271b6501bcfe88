package utils

import (
	"net/url"
)

// SanitizeURLForLog returns the URL path and query with auth material removed,
// safe for inclusion in log lines.
func SanitizeURLForLog(u *url.URL) string {
	if u == nil {
		return ""
	}

	query := u.Query()
	if query.Has("key") {
		query.Set("key", "[REDACTED]")
	}

	sanitized := *u
	sanitized.RawQuery = query.Encode()

	if sanitized.RawQuery == "" {
		return sanitized.Path
	}
	return sanitized.Path + "?" + sanitized.RawQuery
}
