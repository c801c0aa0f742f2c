package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// The memory service is the PowerMem wrapper reached over HTTP. Everything it
// does internally (extraction, embedding, vector search, forgetting curve) is
// its own business; this client only speaks its JSON contract.

// TurnMessage is one role/content pair in a conversation write-back.
type TurnMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SearchResult is a single ranked memory snippet.
type SearchResult struct {
	ID     string  `json:"id,omitempty"`
	Memory string  `json:"memory"`
	Score  float64 `json:"score,omitempty"`
}

// SearchResponse is the memory context returned for a query: an optional
// profile summary plus snippets ordered most relevant first.
type SearchResponse struct {
	ProfileContent string         `json:"profile_content,omitempty"`
	Results        []SearchResult `json:"results,omitempty"`
}

// Client defines the operations consumed from the external memory service.
type Client interface {
	Search(ctx context.Context, query, userID string, limit int) (*SearchResponse, error)
	AddTurn(ctx context.Context, userID string, messages []TurnMessage) error
	AddMemory(ctx context.Context, userID, content, memoryType, imageURL string) (json.RawMessage, error)
	GetProfile(ctx context.Context, userID string) (json.RawMessage, error)
	ListMemories(ctx context.Context, userID string) (json.RawMessage, error)
	DeleteMemory(ctx context.Context, userID, memoryID string) error
}

type httpClient struct {
	client  *http.Client
	baseURL string
}

// NewHTTPClient creates a Client pointed at the memory service base URL.
func NewHTTPClient(baseURL string) Client {
	return &httpClient{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
	}
}

type searchRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
	Limit  int    `json:"limit"`
}

func (c *httpClient) Search(ctx context.Context, query, userID string, limit int) (*SearchResponse, error) {
	body, err := c.post(ctx, "/api/memory/search", searchRequest{Query: query, UserID: userID, Limit: limit})
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("could not decode search response: %w", err)
	}
	return &resp, nil
}

type addTurnRequest struct {
	Messages []TurnMessage `json:"messages"`
	UserID   string        `json:"user_id"`
}

// AddTurn persists a completed user/assistant turn. The memory type is
// deliberately omitted so the service classifies it itself. The response body
// is ignored.
func (c *httpClient) AddTurn(ctx context.Context, userID string, messages []TurnMessage) error {
	_, err := c.post(ctx, "/api/memory/add", addTurnRequest{Messages: messages, UserID: userID})
	return err
}

type addMemoryRequest struct {
	Content    string `json:"content"`
	UserID     string `json:"user_id"`
	MemoryType string `json:"memory_type,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
}

func (c *httpClient) AddMemory(ctx context.Context, userID, content, memoryType, imageURL string) (json.RawMessage, error) {
	return c.post(ctx, "/api/memory/add", addMemoryRequest{
		Content:    content,
		UserID:     userID,
		MemoryType: memoryType,
		ImageURL:   imageURL,
	})
}

func (c *httpClient) GetProfile(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.get(ctx, "/api/memory/profile/"+userID)
}

func (c *httpClient) ListMemories(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.get(ctx, "/api/memory/all/"+userID)
}

type deleteMemoryRequest struct {
	MemoryID string `json:"memory_id"`
	UserID   string `json:"user_id"`
}

func (c *httpClient) DeleteMemory(ctx context.Context, userID, memoryID string) error {
	body, err := json.Marshal(deleteMemoryRequest{MemoryID: memoryID, UserID: userID})
	if err != nil {
		return fmt.Errorf("could not marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/memory/delete", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req)
	return err
}

func (c *httpClient) post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *httpClient) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	return c.do(req)
}

func (c *httpClient) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("memory service request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("memory service returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
