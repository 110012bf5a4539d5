package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"contasis-asistente/internal/domain"
)

// GenerateRequest is one remote model invocation.
type GenerateRequest struct {
	Instruction string
	History     []domain.HistoryEntry
	Prompt      string
}

// Generator produces a model answer for a prompt in the context of a
// conversation. A nil error with empty text is a valid outcome (a blocked
// or filtered response); callers decide how to present it.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*domain.ModelResponse, error)
}

// GeminiClient calls the Gemini API with Google Search grounding enabled.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiClient creates a Gemini-backed Generator.
func NewGeminiClient(ctx context.Context, apiKey, model string, temperature float32) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

// Generate implements Generator.
func (c *GeminiClient) Generate(ctx context.Context, req GenerateRequest) (*domain.ModelResponse, error) {
	var contents []*genai.Content
	for _, h := range req.History {
		var role genai.Role = genai.RoleUser
		if h.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(h.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))

	temp := c.temperature

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.Instruction, genai.RoleUser),
		Temperature:       &temp,
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	res, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	return narrow(res), nil
}

// narrow reduces the SDK's loosely shaped response to the two fields this
// service uses. Missing or structurally unexpected pieces are treated as
// absent, never as a failure.
func narrow(res *genai.GenerateContentResponse) *domain.ModelResponse {
	out := &domain.ModelResponse{}
	if res == nil {
		return out
	}

	out.Text = res.Text()

	for _, cand := range res.Candidates {
		if cand == nil || cand.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			out.Grounding = append(out.Grounding, domain.GroundingRef{
				URI:   chunk.Web.URI,
				Title: chunk.Web.Title,
			})
		}
	}

	return out
}
