package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// agentAction is one step the model asks for. The model is prompted to
// answer with exactly one JSON object per turn.
type agentAction struct {
	Action   string `json:"action"`
	Selector string `json:"selector,omitempty"`
	Value    string `json:"value,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// GeminiAgent drives the page with a vision model: screenshot in,
// one concrete action out, executed, repeat.
type GeminiAgent struct {
	client *genai.Client
	model  *genai.GenerativeModel
	page   Page

	// MaxTurns caps the observe/act loop.
	MaxTurns int
	// settle waits between actions; swapped out in tests.
	settle func(time.Duration)
}

func NewGeminiAgent(ctx context.Context, apiKey, modelName string, page Page) (*GeminiAgent, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.1)
	return &GeminiAgent{
		client:   client,
		model:    model,
		page:     page,
		MaxTurns: 40,
		settle:   time.Sleep,
	}, nil
}

func (g *GeminiAgent) Close() error {
	return g.client.Close()
}

// Execute runs the observe/act loop until the model declares done, the
// turn budget runs out, or the context expires.
func (g *GeminiAgent) Execute(ctx context.Context, task string) error {
	for turn := 1; turn <= g.MaxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		action, err := g.nextAction(ctx, task, turn)
		if err != nil {
			return fmt.Errorf("turn %d: %w", turn, err)
		}
		log.Printf("Agent turn %d: %s %s %q (%s)", turn, action.Action, action.Selector, action.Value, action.Reason)

		if action.Action == "done" {
			return nil
		}
		if err := g.apply(action); err != nil {
			// Tell the model what failed on the next turn instead of
			// aborting; it often just picked a stale selector.
			log.Printf("Agent action failed: %v", err)
		}
		g.settle(time.Second)
	}
	return fmt.Errorf("turn budget (%d) exhausted", g.MaxTurns)
}

func (g *GeminiAgent) nextAction(ctx context.Context, task string, turn int) (*agentAction, error) {
	shot, err := g.page.Screenshot()
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}

	prompt := fmt.Sprintf(`You are operating a web browser to complete a job application.

Task:
%s

This is turn %d. The screenshot shows the current page.
Respond with exactly one JSON object, no prose, no code fences:
{"action": "click"|"fill"|"select"|"press"|"done", "selector": "<css selector>", "value": "<text, option label, or key>", "reason": "<short>"}
Use "done" only when the application is submitted and the confirmation is closed.`, task, turn)

	resp, err := g.model.GenerateContent(ctx,
		genai.ImageData("png", shot),
		genai.Text(prompt),
	)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("empty model response")
	}
	return parseAction(text)
}

func (g *GeminiAgent) apply(action *agentAction) error {
	switch action.Action {
	case "press":
		return g.page.Press(action.Value)
	case "click", "fill", "select":
	default:
		return fmt.Errorf("unknown action %q", action.Action)
	}

	elements, err := g.page.QueryAll(action.Selector)
	if err != nil {
		return fmt.Errorf("query %q: %w", action.Selector, err)
	}
	if len(elements) == 0 {
		return fmt.Errorf("selector %q matched nothing", action.Selector)
	}
	el := elements[0]
	switch action.Action {
	case "click":
		return clickWithFallback(el)
	case "fill":
		return el.Fill(action.Value)
	case "select":
		return el.SelectByLabel(action.Value)
	}
	return nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// parseAction tolerates code fences and leading prose around the JSON
// object; models add both despite instructions.
func parseAction(text string) (*agentAction, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response: %q", text)
	}
	var action agentAction
	if err := json.Unmarshal([]byte(text[start:end+1]), &action); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	if action.Action == "" {
		return nil, fmt.Errorf("action missing in %q", text[start:end+1])
	}
	return &action, nil
}
