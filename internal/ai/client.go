// Package ai calls an OpenAI-compatible chat-completions endpoint to
// suggest recipes from an ingredient list.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SuggestedRecipe is one recipe idea returned by the model.
type SuggestedRecipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Steps       string   `json:"steps"`
	ImageURL    *string  `json:"image_url"`
}

// Suggester is the capability the HTTP layer consumes.
type Suggester interface {
	SuggestRecipes(ctx context.Context, ingredients []string) ([]SuggestedRecipe, error)
}

// Client talks to a Hugging Face router style chat-completions API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient creates a Client for the given endpoint and model.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// SuggestRecipes asks the model for exactly one recipe idea built from
// the given ingredients. The model is instructed to return bare JSON; a
// response that does not parse is an error, never a panic.
func (c *Client) SuggestRecipes(ctx context.Context, ingredients []string) ([]SuggestedRecipe, error) {
	requestID := uuid.New().String()

	prompt := fmt.Sprintf(`Generate exactly 1 recipe idea using ONLY these ingredients: %s.

Return ONLY valid JSON. Format EXACTLY like this:

[
  {
    "title": "string",
    "ingredients": ["list", "of", "strings"],
    "steps": "string with instructions",
    "image_url": null
  }
]

No markdown. No explanations.`, strings.Join(ingredients, ", "))

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   800,
		Temperature: 0.5,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Info().Str("request_id", requestID).Int("ingredients", len(ingredients)).Msg("Requesting recipe suggestion")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggestion request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		log.Error().Str("request_id", requestID).Int("status", resp.StatusCode).Msg("Suggestion endpoint returned an error")
		return nil, fmt.Errorf("suggestion endpoint returned status %d", resp.StatusCode)
	}

	var completion chatResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return nil, fmt.Errorf("invalid completion payload: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("completion contained no choices")
	}

	var recipes []SuggestedRecipe
	content := completion.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &recipes); err != nil {
		log.Error().Str("request_id", requestID).Err(err).Msg("Model returned invalid JSON")
		return nil, fmt.Errorf("AI returned invalid JSON: %w", err)
	}
	return recipes, nil
}
