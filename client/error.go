package client

import (
	"encoding/json"
	"fmt"
)

// ServerError reports a non-success response
type ServerError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// OperationError hides the underlying cause behind a fixed message
type OperationError struct {
	Message string
	Cause   error
}

func (e *OperationError) Error() string {
	return e.Message
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}

func newServerError(op string, status int, data []byte, fallback string) *ServerError {
	message := detailMessage(data)
	if message == "" {
		message = fallback
	}
	return &ServerError{Op: op, StatusCode: status, Message: message}
}

// detailMessage extracts error message from `detail` which is either a string or an object carrying `message`
func detailMessage(data []byte) string {
	payload := struct {
		Detail json.RawMessage `json:"detail"`
	}{}
	if len(data) == 0 || json.Unmarshal(data, &payload) != nil || len(payload.Detail) == 0 {
		return ""
	}
	var text string
	if json.Unmarshal(payload.Detail, &text) == nil {
		return text
	}
	detail := struct {
		Message string `json:"message"`
		Error   *struct {
			Message string `json:"message"`
		} `json:"error"`
	}{}
	if json.Unmarshal(payload.Detail, &detail) != nil {
		return ""
	}
	if detail.Message != "" {
		return detail.Message
	}
	if detail.Error != nil {
		return detail.Error.Message
	}
	return ""
}

func decodeResponse(op string, data []byte, target interface{}) error {
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("invalid %v response: %w", op, err)
	}
	return nil
}
