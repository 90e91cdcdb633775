package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1/models/gemini-1.5-flash:generateContent"

type GeminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

type InlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type GeminiContent struct {
	Parts []*GeminiPart `json:"parts"`
	Role  string        `json:"role"`
}

type GeminiRequest struct {
	Contents []*GeminiContent `json:"contents"`
}

type GeminiCandidate struct {
	Content *GeminiContent `json:"content"`
}

type GeminiResponse struct {
	Candidates []*GeminiCandidate `json:"candidates"`
}

// Client calls the Gemini generateContent endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	sleep      func(context.Context, time.Duration) error
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		sleep:      sleepCtx,
	}
}

// sleepCtx waits out the backoff but returns early on context cancellation.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retryableMarkers flag transient upstream failures worth retrying.
var retryableMarkers = []string{
	"overloaded",
	"unavailable",
	"rate",
	"429",
	"503",
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range retryableMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// trimJSONFence strips the markdown code fence Gemini wraps JSON answers in.
func trimJSONFence(raw string) []byte {
	b := []byte(raw)
	b = bytes.TrimSpace(b)
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}

// GenerateJSON sends the prompt plus an optional inline image and returns the
// model's answer parsed as JSON. Transient upstream errors are retried up to
// three times with 1s, 2s, 4s backoff.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, image []byte, mimeType string) (json.RawMessage, error) {
	parts := []*GeminiPart{{Text: prompt}}
	if len(image) > 0 {
		parts = append(parts, &GeminiPart{
			InlineData: &InlineData{
				MimeType: mimeType,
				Data:     base64.StdEncoding.EncodeToString(image),
			},
		})
	}
	payload := GeminiRequest{
		Contents: []*GeminiContent{{Parts: parts, Role: "user"}},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	backoff := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}

	var lastErr error
	for attempt := 0; attempt <= len(backoff); attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, backoff[attempt-1]); err != nil {
				return nil, err
			}
		}

		result, err := c.generateOnce(ctx, payloadJson)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isRetryable(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

func (c *Client) generateOnce(ctx context.Context, payload []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes GeminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return nil, err
	}
	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from model")
	}

	answer := trimJSONFence(geminiRes.Candidates[0].Content.Parts[0].Text)
	if !json.Valid(answer) {
		return nil, fmt.Errorf("model returned invalid JSON: %s", string(answer))
	}
	return json.RawMessage(answer), nil
}
