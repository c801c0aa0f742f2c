package llm

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// qwenProvider talks to Qwen through the DashScope OpenAI-compatible API.
type qwenProvider struct {
	client *openai.Client
}

// NewQwenProvider creates a Provider backed by an OpenAI-compatible endpoint.
func NewQwenProvider(baseURL, apiKey string) Provider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &qwenProvider{client: openai.NewClientWithConfig(cfg)}
}

func (p *qwenProvider) GenerateStream(ctx context.Context, req *GenerateRequest, ch chan<- StreamResponse) error {
	defer close(ch)

	chatReq := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: convertMessages(req.Messages),
		Stream:   true,
	}

	stream, err := p.client.CreateChatCompletionStream(ctx, chatReq)
	if err != nil {
		err = fmt.Errorf("could not open completion stream: %w", err)
		ch <- StreamResponse{Error: err.Error()}
		return err
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			select {
			case ch <- StreamResponse{Done: true}:
			case <-ctx.Done():
			}
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			err = fmt.Errorf("stream receive failed: %w", err)
			ch <- StreamResponse{Error: err.Error()}
			return err
		}
		if len(resp.Choices) == 0 {
			continue
		}

		select {
		case ch <- StreamResponse{Content: resp.Choices[0].Delta.Content}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// convertMessages maps our messages to the OpenAI wire format. Messages with
// image attachments become multi-part content so vision models can see them.
func convertMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		if len(msg.Images) == 0 {
			out = append(out, openai.ChatCompletionMessage{Role: msg.Role, Content: msg.Content})
			continue
		}

		parts := make([]openai.ChatMessagePart, 0, len(msg.Images)+1)
		if msg.Content != "" {
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: msg.Content,
			})
		}
		for _, url := range msg.Images {
			parts = append(parts, openai.ChatMessagePart{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: url},
			})
		}
		out = append(out, openai.ChatCompletionMessage{Role: msg.Role, MultiContent: parts})
	}
	return out
}
