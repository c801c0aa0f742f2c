package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"membox/backend/internal/interfaces"
	"membox/backend/internal/model"
	"membox/backend/internal/service"
)

// ChatHandler handles the streaming chat endpoint.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// ChatTurnRequest is one submitted chat turn. An empty session_id starts a
// new session; images carries upload URLs attached to this turn.
type ChatTurnRequest struct {
	SessionID string   `json:"session_id"`
	Content   string   `json:"content" validate:"required"`
	Images    []string `json:"images,omitempty"`
}

// HandleStreamTurn godoc
// @Summary      Submit a chat turn and stream the reply
// @Description  Runs the memory-turn pipeline and streams the model response as SSE. Closing the connection aborts generation; partial text is kept.
// @Tags         Chat
// @Accept       json
// @Produce      text/event-stream
// @Param        turnRequest  body  ChatTurnRequest  true  "Chat turn"
// @Success      200  {object}  model.StreamResponse "Stream of response chunks"
// @Failure      400  {object}  ErrorResponse "Sent as a stream error event"
// @Router       /v1/chat/completions [post]
func (h *ChatHandler) HandleStreamTurn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var req ChatTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Error decoding chat turn body", "error", err)
		sendStreamError(w, "Invalid request body")
		return
	}
	if err := validateRequest(&req); err != nil {
		sendStreamError(w, err.Error())
		return
	}

	user := UserFromContext(r.Context())
	turn := &service.TurnRequest{
		UserID:    user.ID,
		SessionID: req.SessionID,
		Content:   req.Content,
		Images:    req.Images,
	}

	streamChan := make(chan model.StreamResponse)
	go h.service.HandleTurn(r.Context(), turn, streamChan)

	for chunk := range streamChan {
		if r.Context().Err() != nil {
			slog.Info("Client disconnected during chat stream.")
			break
		}
		if err := writeStreamEvent(w, chunk); err != nil {
			slog.Warn("Could not write to chat stream, client likely disconnected.", "error", err)
			break
		}
	}

	slog.Debug("Finished streaming chat turn.", "user_id", user.ID)
}
