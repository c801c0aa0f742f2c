package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"membox/backend/internal/llm"
	"membox/backend/internal/memory"
	"membox/backend/internal/model"
	"membox/backend/internal/repository"
)

const defaultWriteBackTimeout = 60 * time.Second

// ChatService runs the memory-turn pipeline: context retrieval, prompt
// assembly, model selection, streamed generation, and the completion-triggered
// memory write-back. Memory is an enhancement layer; its failures never
// block or fail a chat turn.
type ChatService struct {
	repo     repository.Repository
	llm      llm.Provider
	mem      memory.Client
	sessions *SessionService

	textModel   string
	visionModel string
	searchLimit int

	// writeBackTimeout bounds the detached write-back call, which runs
	// outside the request context.
	writeBackTimeout time.Duration
}

// TurnRequest describes one submitted chat turn. An empty SessionID starts a
// new session.
type TurnRequest struct {
	UserID    string
	SessionID string
	Content   string
	Images    []string
}

func NewChatService(repo repository.Repository, provider llm.Provider, mem memory.Client, sessions *SessionService, textModel, visionModel string, searchLimit int) *ChatService {
	return &ChatService{
		repo:             repo,
		llm:              provider,
		mem:              mem,
		sessions:         sessions,
		textModel:        textModel,
		visionModel:      visionModel,
		searchLimit:      searchLimit,
		writeBackTimeout: defaultWriteBackTimeout,
	}
}

// SelectModel picks the model variant for a turn: vision when the turn
// carries image attachments, text otherwise. Decided per request, never per
// session.
func SelectModel(textModel, visionModel string, images []string) string {
	if len(images) > 0 {
		return visionModel
	}
	return textModel
}

// HandleTurn processes a submitted turn and streams the response into
// streamChan, which it closes when done. A canceled ctx stops the model
// stream; whatever partial text accumulated is persisted and written back.
func (s *ChatService) HandleTurn(ctx context.Context, req *TurnRequest, streamChan chan<- model.StreamResponse) {
	defer close(streamChan)

	session, err := s.resolveSession(ctx, req)
	if err != nil {
		slog.Error("Could not resolve session for turn", "user_id", req.UserID, "session_id", req.SessionID, "error", err)
		streamChan <- model.StreamResponse{Error: "Could not open chat session"}
		return
	}

	// Post-stream persistence must survive a client abort mid-stream.
	persistCtx := context.WithoutCancel(ctx)

	userMessage := &model.Message{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Role:      model.RoleUser,
		Content:   req.Content,
		Images:    req.Images,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddMessage(ctx, userMessage); err != nil {
		slog.Error("Could not save user message", "session_id", session.ID, "error", err)
		streamChan <- model.StreamResponse{Error: "Could not save message"}
		return
	}

	// Phase A: context retrieval. Any failure degrades to an empty context;
	// the turn proceeds without memories.
	memCtx, err := s.mem.Search(ctx, req.Content, req.UserID, s.searchLimit)
	if err != nil {
		slog.Warn("Memory search failed, continuing without context", "user_id", req.UserID, "error", err)
		memCtx = nil
	}
	systemPrompt := memory.BuildSystemPrompt(memCtx)

	llmReq := &llm.GenerateRequest{
		Model:    SelectModel(s.textModel, s.visionModel, req.Images),
		Messages: s.buildMessages(ctx, session.ID, systemPrompt, userMessage),
	}

	var fullResponse strings.Builder
	var streamFailed bool

	llmStreamChan := make(chan llm.StreamResponse)
	go func() {
		if err := s.llm.GenerateStream(ctx, llmReq, llmStreamChan); err != nil {
			slog.Error("Model stream ended with error", "session_id", session.ID, "model", llmReq.Model, "error", err)
		}
	}()

	for chunk := range llmStreamChan {
		select {
		case streamChan <- model.StreamResponse{
			Content:   chunk.Content,
			Done:      chunk.Done,
			SessionID: session.ID,
			Error:     chunk.Error,
		}:
		case <-ctx.Done():
			// Client gone, nobody is reading streamChan anymore. Keep
			// draining so the provider can wind down and whatever text it
			// already produced still lands below.
		}
		if chunk.Error != "" {
			streamFailed = true
			break
		}
		fullResponse.WriteString(chunk.Content)
	}

	assistantText := fullResponse.String()
	if streamFailed && assistantText == "" {
		// Total generation failure: nothing to persist or remember. The
		// error chunk above is the user's generic retry affordance.
		return
	}

	assistantMessage := &model.Message{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Role:      model.RoleAssistant,
		Content:   assistantText,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddMessage(persistCtx, assistantMessage); err != nil {
		slog.Error("Failed to save assistant message", "session_id", session.ID, "error", err)
		return
	}
	if err := s.sessions.RefreshMeta(persistCtx, session); err != nil {
		slog.Error("Failed to refresh session metadata", "session_id", session.ID, "error", err)
	}

	if streamFailed {
		// A broken stream is not a completed turn: the partial text stays in
		// the session but is never remembered.
		return
	}

	// Phase B: completion-triggered write-back of the whole turn,
	// fire-and-forget. The response has already been delivered.
	go s.writeBackTurn(req.UserID, req.Content, assistantText)
}

func (s *ChatService) resolveSession(ctx context.Context, req *TurnRequest) (*model.Session, error) {
	if req.SessionID == "" {
		return s.sessions.CreateSession(ctx, req.UserID)
	}
	return s.sessions.Get(ctx, req.UserID, req.SessionID)
}

// buildMessages assembles the model conversation: the system prompt, the
// session history, and the current turn. Image parts ride only on the current
// user message; earlier attachments stay text-only.
func (s *ChatService) buildMessages(ctx context.Context, sessionID, systemPrompt string, current *model.Message) []llm.Message {
	out := []llm.Message{{Role: model.RoleSystem, Content: systemPrompt}}

	history, err := s.repo.GetMessages(ctx, sessionID)
	if err != nil {
		slog.Warn("Could not load session history, sending current turn only", "session_id", sessionID, "error", err)
		out = append(out, llm.Message{Role: current.Role, Content: current.Content, Images: current.Images})
		return out
	}

	for _, msg := range history {
		m := llm.Message{Role: msg.Role, Content: msg.Content}
		if msg.ID == current.ID {
			m.Images = msg.Images
		}
		out = append(out, m)
	}
	return out
}

// writeBackTurn persists the completed turn into the external memory store.
// Best-effort by contract: no retry, no queue; a dropped write is lost.
func (s *ChatService) writeBackTurn(userID, userText, assistantText string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.writeBackTimeout)
	defer cancel()

	turn := []memory.TurnMessage{
		{Role: model.RoleUser, Content: userText},
		{Role: model.RoleAssistant, Content: assistantText},
	}
	if err := s.mem.AddTurn(ctx, userID, turn); err != nil {
		slog.Warn("Memory write-back failed", "user_id", userID, "error", err)
		return
	}
	slog.Debug("Memory write-back completed", "user_id", userID)
}
