//nolint:all
package model

import "time"

// Message is a single entry of an error Result body.
type Message struct {
	MessageType string `json:"messageType,omitempty"`
	Text        string `json:"text"`
	Code        string `json:"code,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
}

// Result is the error response body shape.
type Result struct {
	Messages []Message `json:"messages,omitempty"`
}

// NewErrorResult wraps an error message into a Result body.
func NewErrorResult(text string, code string) Result {
	return Result{Messages: []Message{{
		MessageType: "Error",
		Text:        text,
		Code:        code,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}}}
}

// ServiceDescription is the Description API response body.
type ServiceDescription struct {
	Profiles []string `json:"profiles"`
}
