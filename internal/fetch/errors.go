package fetch

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrEmulationUnavailable is returned before any network call when the
	// browser profile table or the tls-client session cannot be set up.
	ErrEmulationUnavailable = errors.New("browser emulation unavailable")

	// ErrDecode wraps response bodies that are not a JSON object.
	ErrDecode = errors.New("malformed JSON body")
)

// bodySnippetLen caps the body carried by StatusError messages.
const bodySnippetLen = 200

// StatusError reports a response with an unexpected HTTP status.
type StatusError struct {
	Client     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s status=%d body=%s", e.Client, e.StatusCode, snippet(e.Body, bodySnippetLen))
}

func snippet(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
