// Package redact strips sensitive information from strings before they are
// logged. Error messages can carry database connection strings, bearer
// tokens or password hashes; redacting them at the logging boundary keeps
// credentials out of log storage.
package redact

import "regexp"

// Redaction placeholders.
const (
	credentialPlaceholder = "[REDACTED_CREDENTIAL]"
	tokenPlaceholder      = "[REDACTED_TOKEN]"
	hashPlaceholder       = "[REDACTED_HASH]"
)

var (
	// Database connection strings with inline credentials.
	dbConnRegex = regexp.MustCompile(`(?i)(postgres(ql)?|mysql)://[^@\s]+@`)

	// Password key/value fragments.
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// JWT tokens: three dot-separated base64url segments starting with eyJ.
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// bcrypt hashes.
	bcryptRegex = regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}`)
)

// String returns s with credentials, tokens and password hashes replaced
// by placeholders.
func String(s string) string {
	s = dbConnRegex.ReplaceAllString(s, credentialPlaceholder+"@")
	s = passwordRegex.ReplaceAllString(s, "$1$2"+credentialPlaceholder)
	s = jwtTokenRegex.ReplaceAllString(s, tokenPlaceholder)
	s = bcryptRegex.ReplaceAllString(s, hashPlaceholder)
	return s
}

// Error returns the redacted message of err, or an empty string for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
