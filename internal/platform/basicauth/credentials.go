// Package basicauth authenticates requests with the HTTP Basic scheme and
// binds the verified user to the gin request context.
package basicauth

import (
	"encoding/base64"
	"strings"
)

// Credentials is the identifier/secret pair carried by a Basic Authorization header.
type Credentials struct {
	Name string
	Pass string
}

// ParseAuthorization parses an Authorization header value of the form
// "Basic base64(name:pass)". The scheme is matched case-insensitively and the
// payload is split on the first colon, so the password may contain colons.
// It reports false for a missing or malformed header and never fails otherwise.
func ParseAuthorization(header string) (Credentials, bool) {
	const prefix = "basic "

	header = strings.TrimSpace(header)
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return Credentials{}, false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return Credentials{}, false
	}

	name, pass, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return Credentials{}, false
	}
	return Credentials{Name: name, Pass: pass}, true
}
