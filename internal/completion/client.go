// Package completion talks to the OpenRouter chat-completions API.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "deepseek/deepseek-v3-base:free"

	// maxContextChars is the hard truncation applied to the document
	// excerpt embedded in the outbound prompt. No token-aware logic.
	maxContextChars = 4000

	promptPreamble   = "I'm analyzing a document with the following content:\n\n"
	promptConnective = "...\n\nBased on this document, please answer: "
)

// Client performs single synchronous chat-completion calls. No retries and
// no client-level timeout: cancellation is the caller's context's job.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	referer    string
	title      string
	httpClient *http.Client
}

// Options overrides the client defaults. Zero values keep the defaults.
type Options struct {
	BaseURL string
	Model   string
	Referer string
	Title   string
}

// NewClient creates a completion client with the given API key.
func NewClient(apiKey string, opts Options) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		referer:    "https://github.com/kalambet/docask",
		title:      "docask",
		httpClient: &http.Client{},
	}
	if opts.BaseURL != "" {
		c.baseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.Model != "" {
		c.model = opts.Model
	}
	if opts.Referer != "" {
		c.referer = opts.Referer
	}
	if opts.Title != "" {
		c.title = opts.Title
	}
	return c
}

// Ask sends one chat request embedding a truncated document excerpt and the
// user's question, and returns the first choice's message content verbatim.
// Transport failures, non-2xx statuses, and unexpected response shapes come
// back as errors; callers decide how to surface them.
func (c *Client) Ask(ctx context.Context, contextText, question, systemPrompt string) (string, error) {
	req := ChatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(contextText, question)},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

// buildUserPrompt assembles the user-role message: preamble, the first
// maxContextChars characters of the document, the connective, the question.
// The ellipsis after the excerpt is emitted unconditionally; that is the
// historical prompt shape and consumers are calibrated to it.
func buildUserPrompt(contextText, question string) string {
	if runes := []rune(contextText); len(runes) > maxContextChars {
		contextText = string(runes[:maxContextChars])
	}
	return promptPreamble + contextText + promptConnective + question
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", c.referer)
	req.Header.Set("X-Title", c.title)
}

// ErrorText renders a completion failure as the in-band answer string the
// HTTP and CLI surfaces return in place of a model answer.
func ErrorText(err error) string {
	return fmt.Sprintf("Error getting AI response: %v", err)
}
