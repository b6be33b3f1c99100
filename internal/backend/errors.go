package backend

import (
	"encoding/json"
	"fmt"
)

// APIError is a business error reported by the backend: a non-2xx response
// with a message in the body. The message is surfaced to the user verbatim,
// so it is kept exactly as the server sent it.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
}

// decodeAPIError turns a non-2xx body into an APIError. The backend is not
// consistent about the field name: auth endpoints use "error", login uses
// "message". Anything undecodable gets the fallback message.
func decodeAPIError(status int, body []byte, fallback string) *APIError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := fallback
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Error != "":
			msg = payload.Error
		case payload.Message != "":
			msg = payload.Message
		}
	}
	return &APIError{Status: status, Message: msg}
}
