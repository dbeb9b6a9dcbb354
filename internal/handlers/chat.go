package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"chatrelay-backend/internal/ai"
	"chatrelay-backend/internal/models"
	"chatrelay-backend/internal/repository"
)

type completionService interface {
	Complete(ctx context.Context, message string) (string, error)
}

type historyRecorder interface {
	Record(rec models.MessageRecord)
}

type historyLister interface {
	ListRecent(ctx context.Context, limit int) ([]models.MessageRecord, error)
}

type ChatHandler struct {
	ai      completionService
	writer  historyRecorder
	history historyLister
}

func NewChatHandler(ai completionService, writer historyRecorder, history historyLister) *ChatHandler {
	return &ChatHandler{
		ai:      ai,
		writer:  writer,
		history: history,
	}
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Message is required"})
		return
	}

	reply, err := h.ai.Complete(r.Context(), req.Message)
	if err != nil {
		status, message := mapCompletionError(err)
		writeJSON(w, status, models.ErrorResponse{Error: message})
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})

	// The reply is already on the wire; persistence is best-effort from here.
	h.writer.Record(models.MessageRecord{
		UserMessage: req.Message,
		AIResponse:  reply,
	})
}

// History handles GET /api/chat/history.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.history.ListRecent(r.Context(), repository.HistoryLimit)
	if err != nil {
		log.Printf("Failed to load chat history: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load chat history"})
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func mapCompletionError(err error) (int, string) {
	var provErr *ai.ProviderError
	if errors.As(err, &provErr) {
		switch provErr.Kind {
		case ai.KindQuotaExceeded:
			return http.StatusTooManyRequests, "AI quota exceeded. Please try again later."
		case ai.KindContentBlocked:
			return http.StatusBadRequest, "Message was blocked by the AI safety filter."
		}
	}
	return http.StatusInternalServerError, "Failed to get AI response"
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
