package jupyter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Error is a non-2xx response from the server.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("jupyter: %d %s", e.Status, http.StatusText(e.Status))
	}
	return e.Message
}

// errorFromBody extracts the server's message from an error response. The
// server replies with {"message": ..., "reason": ...}; anything else falls
// back to the trimmed body or the status text.
func errorFromBody(status int, body []byte) *Error {
	msg := ""
	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		msg = parsed.Get("message").String()
		if msg == "" {
			msg = parsed.Get("reason").String()
		}
	} else {
		msg = strings.TrimSpace(string(body))
	}
	return &Error{Status: status, Message: msg}
}
