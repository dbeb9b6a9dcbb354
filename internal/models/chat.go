package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// MessageRecord is one persisted (message, reply) pair. Records are
// written once and never mutated.
type MessageRecord struct {
	ID          uuid.UUID `json:"-"`
	UserMessage string    `json:"userMessage"`
	AIResponse  string    `json:"aiResponse"`
	Timestamp   time.Time `json:"timestamp"`
}

// ErrorResponse is the flat error body returned by every failing endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
