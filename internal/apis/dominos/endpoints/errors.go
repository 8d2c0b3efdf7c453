package endpoints

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-200 upstream response. Code and Message are filled in
// when the error body itself was JSON; Body keeps the raw payload either
// way so failures against this API stay debuggable.
type APIError struct {
	Status  int
	Code    any
	Message string
	Body    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = strings.TrimSpace(e.Body)
	}
	return fmt.Sprintf("api error: status=%d code=%v message=%s", e.Status, e.Code, msg)
}

func ParseAPIError(status int, body []byte) *APIError {
	out := &APIError{Status: status, Body: string(body)}

	var m map[string]any
	if json.Unmarshal(body, &m) == nil {
		if v, ok := m["Code"]; ok {
			out.Code = v
		}
		if v, ok := m["Message"].(string); ok {
			out.Message = v
		}
	}
	return out
}
