package analyzer

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"

	"comment-insights-service/config"
	"comment-insights-service/metrics"
	"comment-insights-service/model"
)

// textGenerator is the slice of the Gemini client the analyzer needs.
type textGenerator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

// Analyzer answers free-form questions about a comment table via Gemini.
type Analyzer struct {
	gen      textGenerator
	model    string
	maxChars int
}

// New builds an Analyzer backed by the Gemini API.
func New(ctx context.Context, cfg *config.Config) (*Analyzer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	log.Printf("[INFO] Gemini client initialized (model: %s)", cfg.GeminiModel)
	return &Analyzer{
		gen:      &geminiGenerator{client: client},
		model:    cfg.GeminiModel,
		maxChars: cfg.PromptMaxChars,
	}, nil
}

// Ask builds the prompt for question over table and runs one generation
// call. Generation errors are returned as-is for the caller to surface.
func (a *Analyzer) Ask(ctx context.Context, question string, table model.CommentTable) (string, error) {
	prompt := BuildPrompt(question, table, a.maxChars)
	log.Printf("[DEBUG] Asking model %s (prompt: %d chars, rows: %d)", a.model, len(prompt), len(table))

	start := time.Now()
	answer, err := a.gen.GenerateText(ctx, a.model, prompt)
	metrics.GeminiRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GeminiRequestsTotal.WithLabelValues("error").Inc()
		log.Printf("[ERROR] Gemini generation failed: %v", err)
		return "", err
	}
	metrics.GeminiRequestsTotal.WithLabelValues("success").Inc()
	return answer, nil
}

type geminiGenerator struct {
	client *genai.Client
}

func (g *geminiGenerator) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
