package api

import "fmt"

// Error is a failed backend call: a non-2xx response or a transport failure.
// Status is zero when the request never reached the server.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// errorBody is the backend's error envelope. Message resolution order is
// detail, then message, then a generic fallback.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (b errorBody) resolve() string {
	if b.Detail != "" {
		return b.Detail
	}
	if b.Message != "" {
		return b.Message
	}
	return "request failed"
}
