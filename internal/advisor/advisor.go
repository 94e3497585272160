// Package advisor provides the Gemini-backed scholarship chatbot.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash"

const systemInstruction = `You are the AI Assistant for 'ScholarIQ'.
Help students with scholarships: finding programs, understanding eligibility,
preparing applications, and planning their next degree.
Keep answers concise.`

// Advisor answers student questions about scholarships.
type Advisor interface {
	// Ask sends one user message, optionally preceded by prior conversation
	// turns, and returns the assistant's reply.
	Ask(ctx context.Context, history []Turn, message string) (string, error)
	// Close releases any resources held by the advisor.
	Close() error
}

// Turn is one prior message of the conversation. Role is "user" or "ai".
type Turn struct {
	Role    string
	Content string
}

// GeminiAdvisor implements Advisor on the Gemini API.
type GeminiAdvisor struct {
	client *genai.Client
	model  string
}

// New creates a Gemini-backed advisor. The model name may be empty to use
// the default.
func New(ctx context.Context, apiKey, model string) (*GeminiAdvisor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiAdvisor{client: client, model: model}, nil
}

// Ask sends the conversation to Gemini and returns the reply text.
func (a *GeminiAdvisor) Ask(ctx context.Context, history []Turn, message string) (string, error) {
	model := a.client.GenerativeModel(a.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	session := model.StartChat()
	session.History = make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		role := "user"
		if turn.Role == "ai" {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}

	return extractText(resp)
}

// Close releases resources held by the advisor.
func (a *GeminiAdvisor) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from model")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text content in response")
	}
	return b.String(), nil
}
