// Package ai wraps the language-model collaborator. The model acts as a
// sales assistant: it answers the shopper in prose and appends a fenced JSON
// block carrying structured product suggestions, which is stripped from the
// text shown to the shopper.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vj-tring/SalesBoostAI-V1/internal/config"
	apperrors "github.com/vj-tring/SalesBoostAI-V1/internal/errors"
	"github.com/vj-tring/SalesBoostAI-V1/internal/metrics"
	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
)

const systemPromptTemplate = `You are a friendly, concise sales assistant for an online store.
Help the customer find products, answer questions about the catalog below, and suggest relevant items.
If the customer is upset or explicitly asks for a human, set "escalate" to true.

Catalog:
%s

After your reply, append exactly one fenced json block of the form:
` + "```json" + `
{"recommendations":[{"productId":1,"type":"primary","confidence":0.9,"reason":"..."}],"escalate":false}
` + "```" + `
Recommend only productId values from the catalog. Use type "primary", "upsell" or "cross_sell".
Confidence must be between 0 and 1. The recommendations array may be empty.`

// Suggestion is one structured product proposal extracted from the model's
// reply.
type Suggestion struct {
	ProductID  int64   `json:"productId"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// Reply is the parsed model output for one turn.
type Reply struct {
	Text        string
	Escalate    bool
	Suggestions []Suggestion
}

type Client struct {
	api     *openai.Client
	model   string
	metrics *metrics.Metrics
}

// apiHTTPClient bounds every completion call; a hung upstream otherwise
// holds the chat turn until the server request timeout.
func apiHTTPClient() *http.Client {
	return &http.Client{Timeout: config.AIRequestTimeout}
}

func NewClient(apiKey, chatModel string, m *metrics.Metrics) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = apiHTTPClient()
	return &Client{
		api:     openai.NewClientWithConfig(cfg),
		model:   chatModel,
		metrics: m,
	}
}

// Respond sends the conversation turn to the model and parses the reply.
// history must be ordered oldest first.
func (c *Client) Respond(ctx context.Context, history []model.Message, catalog []model.Product, userMessage string) (*Reply, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: fmt.Sprintf(systemPromptTemplate, formatCatalog(catalog)),
	})
	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == model.MessageRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	c.observe(err, time.Since(start))
	if err != nil {
		return nil, apperrors.External("OpenAI API", err)
	}
	if len(resp.Choices) == 0 {
		return nil, apperrors.External("OpenAI API", fmt.Errorf("empty completion response"))
	}

	reply := parseReply(resp.Choices[0].Message.Content)
	return reply, nil
}

func (c *Client) observe(err error, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.metrics.AIRequests.WithLabelValues(status).Inc()
	c.metrics.AILatency.WithLabelValues(status).Observe(elapsed.Seconds())
}

func formatCatalog(catalog []model.Product) string {
	if len(catalog) == 0 {
		return "(no products available)"
	}
	var b strings.Builder
	for _, p := range catalog {
		fmt.Fprintf(&b, "- id=%d %s (%s %s, %d in stock): %s\n",
			p.ID, p.Title, p.Price.StringFixed(2), p.Category, p.Inventory, p.Description)
	}
	return b.String()
}

type replyBlock struct {
	Recommendations []Suggestion `json:"recommendations"`
	Escalate        bool         `json:"escalate"`
}

// parseReply splits the prose from the trailing fenced json block. A reply
// without a parseable block is treated as plain text with no suggestions.
func parseReply(content string) *Reply {
	reply := &Reply{Text: strings.TrimSpace(content)}

	start := strings.LastIndex(content, "```json")
	if start < 0 {
		return reply
	}
	rest := content[start+len("```json"):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return reply
	}

	var block replyBlock
	if err := json.Unmarshal([]byte(strings.TrimSpace(rest[:end])), &block); err != nil {
		return reply
	}

	reply.Text = strings.TrimSpace(content[:start])
	reply.Escalate = block.Escalate
	reply.Suggestions = block.Recommendations
	return reply
}
