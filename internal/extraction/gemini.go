package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const (
	// DefaultAIModel is the generative model used for statement parsing.
	DefaultAIModel = "gemini-2.5-flash"

	// defaultPromptBudget caps the characters of statement text sent to the
	// model in one request.
	defaultPromptBudget = 12000
)

// GeminiExtractor implements AIExtractor over the Gemini API.
type GeminiExtractor struct {
	client       *genai.Client
	model        string
	promptBudget int
	retryCfg     RetryConfig
	log          zerolog.Logger
}

// NewGeminiExtractor creates a Gemini-backed extractor. The client reads its
// API key from the environment (GEMINI_API_KEY / GOOGLE_API_KEY).
func NewGeminiExtractor(ctx context.Context, model string, promptBudget int, log zerolog.Logger) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if model == "" {
		model = DefaultAIModel
	}
	if promptBudget <= 0 {
		promptBudget = defaultPromptBudget
	}
	return &GeminiExtractor{
		client:       client,
		model:        model,
		promptBudget: promptBudget,
		retryCfg:     DefaultAIRetryConfig,
		log:          log,
	}, nil
}

// Available reports whether the capability can be attempted.
func (g *GeminiExtractor) Available() bool {
	return g != nil && g.client != nil
}

// aiTransaction is the JSON shape the model is asked to produce.
type aiTransaction struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

// Extract sends the statement text to the model and converts its JSON array
// into transaction records. Malformed output is an error so the selector can
// retry and fall back.
func (g *GeminiExtractor) Extract(ctx context.Context, text string) ([]Transaction, error) {
	trimmed := truncateText(text, g.promptBudget)
	prompt := buildStatementPrompt(trimmed)

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.1),
		MaxOutputTokens: int32(estimateOutputTokens(countTransactionLines(strings.Split(trimmed, "\n")))),
	}

	resp, err := WithRetry(ctx, g.retryCfg, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		r, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
		if err != nil {
			return nil, classifyAIError(err)
		}
		return r, nil
	})
	if err != nil {
		return nil, err
	}

	raw := resp.Text()
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	items, err := decodeAITransactions(raw)
	if err != nil {
		return nil, &ExtractionError{
			Code:     CodeAIMalformedOutput,
			Message:  "model returned unparseable JSON",
			Strategy: "ai",
			Cause:    err,
		}
	}

	currency := inferContextCurrency(text)
	now := time.Now()

	out := make([]Transaction, 0, len(items))
	for _, it := range items {
		if it.Amount <= 0 {
			continue
		}
		date, ok := parseAIDate(it.Date, now)
		if !ok {
			date = today(now)
		}
		out = append(out, newTransaction(it.Amount, currency, it.Description, it.Category, date, it.Description, true))
	}
	return out, nil
}

func buildStatementPrompt(text string) string {
	return fmt.Sprintf(`Extract all expense/debit transactions from this bank or card statement text.
Return ONLY a valid JSON array with this structure:
[
  {"date": "YYYY-MM-DD", "description": "merchant name", "amount": 0.00, "category": "Food"}
]
Rules:
- Only include debit transactions (money going out)
- Express amounts as positive numbers
- Assign each transaction a category from: %s
- Do NOT wrap the response in code fences or Markdown

Statement text:
%s`, strings.Join(Categories, ", "), text)
}

// decodeAITransactions tolerantly parses the model output: markdown fences
// are stripped and any junk around the JSON array is discarded.
func decodeAITransactions(raw string) ([]aiTransaction, error) {
	clean := cleanModelJSON(raw)
	var items []aiTransaction
	if err := json.Unmarshal([]byte(clean), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// cleanModelJSON strips ```json fences and keeps only the first-'[' to
// last-']' span when the model ignores formatting instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}

// aiDateLayouts are the date shapes accepted from the model besides the ISO
// form it is asked for.
var aiDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

func parseAIDate(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return time.Time{}, false
	}
	for _, layout := range aiDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return sanitizeYear(t, now), true
		}
	}
	return extractDateAt(s, now)
}

// classifyAIError maps transport failures onto the extraction error
// taxonomy so retry and fallback decisions stay local.
func classifyAIError(err error) *ExtractionError {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "429"):
		return &ExtractionError{
			Code:      CodeAIRateLimited,
			Message:   "model API rate limited",
			Strategy:  "ai",
			Retryable: true,
			Cause:     err,
		}
	case strings.Contains(msg, "token") || strings.Contains(msg, "context"):
		return &ExtractionError{
			Code:      CodeAIContextExceeded,
			Message:   "input exceeded model context window",
			Strategy:  "ai",
			Retryable: false,
			Cause:     err,
		}
	default:
		return &ExtractionError{
			Code:      CodeAIUnavailable,
			Message:   "model API request failed",
			Strategy:  "ai",
			Retryable: true,
			Cause:     err,
		}
	}
}
