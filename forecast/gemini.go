package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"app/config"
	"app/models"
)

// GeminiPredictor asks Gemini for a next-month demand estimate. Transient
// failures never reach the caller: any problem with the remote call (client
// init, timeout, empty candidates, unparseable reply) degrades to the
// deterministic mock result with the "API Failed" reasoning.
type GeminiPredictor struct {
	APIKey  string
	Model   string
	Timeout time.Duration

	// generateFn overrides the remote call in tests.
	generateFn func(ctx context.Context, prompt string) (string, error)
}

// NewGeminiPredictor builds the remote strategy from the resolved config.
func NewGeminiPredictor(cfg *config.Config) *GeminiPredictor {
	return &GeminiPredictor{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.AITimeout,
	}
}

func (p *GeminiPredictor) Predict(ctx context.Context, product models.Product, sales []models.Sale, region string) (*models.Prediction, error) {
	if len(sales) == 0 {
		return nil, errors.New("no sales history")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	generate := p.generateFn
	if generate == nil {
		generate = p.generate
	}

	text, err := generate(ctx, buildPrompt(product, sales, region))
	if err != nil {
		log.Printf("AI predictor error for %s/%s, using mock: %v", product.SKU, region, err)
		return mockPrediction(sales, region, true), nil
	}

	prediction, err := parsePrediction(text)
	if err != nil {
		log.Printf("AI response rejected for %s/%s, using mock: %v", product.SKU, region, err)
		return mockPrediction(sales, region, true), nil
	}

	// The month is always computed locally, never trusted from the model.
	prediction.Month = NextForecastMonth(latestSaleDate(sales))
	return prediction, nil
}

func (p *GeminiPredictor) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return 30 * time.Second
}

func (p *GeminiPredictor) generate(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(p.APIKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.Model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no content received from AI")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}
	if text == "" {
		return "", errors.New("no text content received from AI")
	}
	return text, nil
}

// buildPrompt serializes the regional history as newline-delimited
// "date: quantity" lines and asks for a minified JSON object.
func buildPrompt(product models.Product, sales []models.Sale, region string) string {
	var summary strings.Builder
	for _, sale := range sales {
		fmt.Fprintf(&summary, "%s: %d\n", sale.Date.Format("2006-01-02"), sale.Quantity)
	}

	return fmt.Sprintf(`You are an inventory forecasting expert. Predict the demand for the next month based on this sales history for product %q in region %q:

%s
Return JSON only with format: {"demand": number, "confidence": number (0-1), "reasoning": "string"}`,
		product.Name, region, summary.String())
}

// extractJSON returns the outermost JSON object embedded in raw text.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}

// parsePrediction treats the model's reply as untrusted input: the JSON object
// is cut out of the surrounding prose, repaired, and validated before use. The
// month field is left empty for the caller to fill in.
func parsePrediction(text string) (*models.Prediction, error) {
	jsonStr := extractJSON(text)
	if jsonStr == "" {
		return nil, errors.New("no JSON object in AI response")
	}

	repaired, err := jsonrepair.RepairJSON(jsonStr)
	if err != nil {
		return nil, fmt.Errorf("failed to repair AI JSON: %w", err)
	}

	var payload struct {
		Demand     *float64 `json:"demand"`
		Confidence *float64 `json:"confidence"`
		Reasoning  string   `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse AI JSON: %w", err)
	}

	if payload.Demand == nil {
		return nil, errors.New("AI response missing demand")
	}
	if payload.Confidence == nil || *payload.Confidence < 0 || *payload.Confidence > 1 {
		return nil, errors.New("AI confidence missing or outside [0,1]")
	}
	if payload.Reasoning == "" {
		return nil, errors.New("AI response missing reasoning")
	}

	return &models.Prediction{
		Demand:     *payload.Demand,
		Confidence: *payload.Confidence,
		Reasoning:  payload.Reasoning,
	}, nil
}
