package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	c := NewClient("test-key")
	c.baseURL = serverURL
	c.sleep = func(context.Context, time.Duration) error { return nil }
	return c
}

func geminiReply(text string) string {
	body, _ := json.Marshal(GeminiResponse{
		Candidates: []*GeminiCandidate{
			{Content: &GeminiContent{Parts: []*GeminiPart{{Text: text}}}},
		},
	})
	return string(body)
}

func TestTrimJSONFence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  \n```json\n{\"a\":1}\n```\n ", `{"a":1}`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, string(trimJSONFence(tc.in)))
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(errors.New("model is overloaded, try again")))
	assert.True(t, isRetryable(errors.New("status error, got status 503. with response body x")))
	assert.True(t, isRetryable(errors.New("status error, got status 429. with response body x")))
	assert.True(t, isRetryable(errors.New("service Unavailable")))
	assert.True(t, isRetryable(errors.New("rate limit hit")))

	assert.False(t, isRetryable(nil))
	assert.False(t, isRetryable(errors.New("status error, got status 400. with response body bad request")))
	assert.False(t, isRetryable(errors.New("model returned invalid JSON: oops")))
}

func TestGenerateJSON_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req GeminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 2)
		assert.NotEmpty(t, req.Contents[0].Parts[1].InlineData.Data)
		assert.Equal(t, "image/jpeg", req.Contents[0].Parts[1].InlineData.MimeType)

		fmt.Fprint(w, geminiReply("```json\n{\"items\":[]}\n```"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.GenerateJSON(context.Background(), "identify the waste", []byte{0xff, 0xd8}, "image/jpeg")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(result))
}

func TestGenerateJSON_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"error":{"message":"The model is overloaded"}}`)
			return
		}
		fmt.Fprint(w, geminiReply(`{"ok":true}`))
	}))
	defer server.Close()

	var sleeps []time.Duration
	client := newTestClient(server.URL)
	client.sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}

	result, err := client.GenerateJSON(context.Background(), "prompt", nil, "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(result))
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, sleeps)
}

func TestGenerateJSON_GivesUpAfterThreeRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"error":{"message":"unavailable"}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GenerateJSON(context.Background(), "prompt", nil, "")
	require.Error(t, err)
	assert.Equal(t, int32(4), calls.Load())
}

func TestGenerateJSON_CancelledContextStopsBackoff(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"error":{"message":"unavailable"}}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	client := NewClient("test-key")
	client.baseURL = server.URL

	// Cancel during the first backoff window; the wait must end immediately.
	client.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return sleepCtx(ctx, d)
	}

	start := time.Now()
	_, err := client.GenerateJSON(ctx, "prompt", nil, "")
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerateJSON_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"invalid argument"}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GenerateJSON(context.Background(), "prompt", nil, "")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerateJSON_RejectsNonJSONAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiReply("Sure! Here is my analysis in plain text."))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GenerateJSON(context.Background(), "prompt", nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}
