// Package openai provides an LLM-backed extraction strategy for venue
// pages whose markup defeats the structural strategies. It is opt-in and
// last in the ladder; deterministic strategies stay authoritative.
package openai

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"
	"github.com/tinyamp/tinyamp"
)

// DefaultModel is the chat model used for extraction.
const DefaultModel = openai.GPT4oMini

// requestTimeout bounds each completion call.
const requestTimeout = 30 * time.Second

// maxContentLen truncates page text sent to the model.
const maxContentLen = 12000

// Ensure Extractor implements tinyamp.Extractor at compile time.
var _ tinyamp.Extractor = (*Extractor)(nil)

// Extractor extracts event candidates from page text using a chat
// completion. Output feeds the same classification and date gates as
// every other strategy, so a hallucinated listing still has to look like
// a real one to survive.
type Extractor struct {
	client  *openai.Client
	model   string
	content tinyamp.MainContentExtractor
}

// NewExtractor creates an Extractor. content may be nil, in which case
// the raw HTML is sent (truncated).
func NewExtractor(apiKey string, content tinyamp.MainContentExtractor) *Extractor {
	return &Extractor{
		client:  openai.NewClient(apiKey),
		model:   DefaultModel,
		content: content,
	}
}

const systemPrompt = `You extract live music event listings from venue website text.
Respond with a JSON array only, no prose and no markdown fences. Each element:
{"artists": "comma-separated artist names", "date": "the date text exactly as written", "context": "the listing text the event came from"}
Only include entries where both artists and a date are present in the text. Never invent listings.`

type llmCandidate struct {
	Artists string `json:"artists"`
	Date    string `json:"date"`
	Context string `json:"context"`
}

// Extract sends the page's main text to the model and maps the response
// onto raw candidates.
func (e *Extractor) Extract(rawHTML string, cfg tinyamp.VenueConfig) ([]tinyamp.RawCandidate, error) {
	text := rawHTML
	if e.content != nil {
		if t, err := e.content.MainText(rawHTML); err == nil && t != "" {
			text = t
		}
	}
	if len(text) > maxContentLen {
		cut := maxContentLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Venue: " + cfg.Name + "\n\n" + text},
		},
	})
	if err != nil {
		return nil, tinyamp.Errorf(tinyamp.EUNAVAILABLE, "completion failed: %v", err)
	}
	if len(resp.Choices) == 0 {
		return nil, tinyamp.Errorf(tinyamp.EUNAVAILABLE, "no completion choices")
	}

	var parsed []llmCandidate
	if err := json.Unmarshal([]byte(cleanJSON(resp.Choices[0].Message.Content)), &parsed); err != nil {
		return nil, tinyamp.Errorf(tinyamp.EINVALID, "unparseable completion: %v", err)
	}

	sourceURL := ""
	if len(cfg.URLs) > 0 {
		sourceURL = cfg.URLs[0]
	}

	var candidates []tinyamp.RawCandidate
	for _, c := range parsed {
		if c.Artists == "" || c.Date == "" {
			continue
		}
		candidates = append(candidates, tinyamp.RawCandidate{
			SourceURL:       sourceURL,
			MatchedText:     c.Artists,
			MatchedDateText: c.Date,
			Context:         c.Context,
			Strategy:        "llm",
		})
	}

	return candidates, nil
}

// cleanJSON strips markdown code fences some models wrap JSON in.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
