package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"membox/backend/internal/memory"
)

// MemoryHandler exposes a thin pass-through surface over the external memory
// service so memories can be inspected and managed outside a chat turn. The
// acting user from the cookie is always the partition key.
type MemoryHandler struct {
	client       memory.Client
	defaultLimit int
}

func NewMemoryHandler(client memory.Client, defaultLimit int) *MemoryHandler {
	return &MemoryHandler{client: client, defaultLimit: defaultLimit}
}

// SearchMemoryRequest queries the memory store.
type SearchMemoryRequest struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=50"`
}

// AddMemoryRequest stores a single memory. MemoryType is optional; when empty
// the memory service classifies the content itself.
type AddMemoryRequest struct {
	Content    string `json:"content" validate:"required"`
	MemoryType string `json:"memory_type" validate:"omitempty,oneof=semantic episodic procedural working"`
	ImageURL   string `json:"image_url" validate:"omitempty,url"`
}

// HandleSearch godoc
// @Summary      Search memories
// @Tags         Memory
// @Accept       json
// @Produce      json
// @Param        searchRequest  body  SearchMemoryRequest  true  "Query"
// @Success      200  {object}  memory.SearchResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/memory/search [post]
func (h *MemoryHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchMemoryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if req.Limit == 0 {
		req.Limit = h.defaultLimit
	}

	user := UserFromContext(r.Context())
	results, err := h.client.Search(r.Context(), req.Query, user.ID, req.Limit)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, results)
}

// HandleAdd godoc
// @Summary      Add a memory
// @Tags         Memory
// @Accept       json
// @Produce      json
// @Param        addRequest  body  AddMemoryRequest  true  "Memory content"
// @Success      200  {object}  object
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/memory [post]
func (h *MemoryHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req AddMemoryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	user := UserFromContext(r.Context())
	result, err := h.client.AddMemory(r.Context(), user.ID, req.Content, req.MemoryType, req.ImageURL)
	if err != nil {
		respondWithError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result)
}

// HandleProfile godoc
// @Summary      Get the acting user's memory profile
// @Tags         Memory
// @Produce      json
// @Success      200  {object}  object
// @Router       /v1/memory/profile [get]
func (h *MemoryHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	profile, err := h.client.GetProfile(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(profile)
}

// HandleList godoc
// @Summary      List all memories for the acting user
// @Tags         Memory
// @Produce      json
// @Success      200  {object}  object
// @Router       /v1/memory [get]
func (h *MemoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	memories, err := h.client.ListMemories(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(memories)
}

// HandleDelete godoc
// @Summary      Delete a memory
// @Tags         Memory
// @Produce      json
// @Param        memoryID  path  string  true  "Memory ID"
// @Success      200  {object}  StatusResponse
// @Router       /v1/memory/{memoryID} [delete]
func (h *MemoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	memoryID := chi.URLParam(r, "memoryID")

	if err := h.client.DeleteMemory(r.Context(), user.ID, memoryID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
