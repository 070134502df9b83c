package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extractedJSON = `{"head":"ASPIRIN","relation":"inhibits","tail":"COX-2","evidence":"inhibiting COX-2"}`

func chatResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:      "chatcmpl-123",
		Object:  "chat.completion",
		Created: 1677652288,
		Model:   "gpt-4o-mini",
		Choices: []openai.ChatCompletionChoice{
			{
				Index: 0,
				Message: openai.ChatCompletionMessage{
					Role:    "assistant",
					Content: content,
				},
				FinishReason: "stop",
			},
		},
	}
}

func TestOpenAIProvider_Generate_Success(t *testing.T) {
	var got openai.ChatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(chatResponse("  " + extractedJSON + "\n"))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{
		APIKey:      "test-key",
		BaseURL:     server.URL,
		Model:       "gpt-4o-mini",
		Timeout:     5,
		MaxTokens:   256,
		Temperature: 0.3,
		Stop:        []string{"</s>"},
	})
	require.NoError(t, err)

	text, err := provider.Generate(context.Background(), "Text: Aspirin inhibits COX-2.")
	require.NoError(t, err)

	// The continuation is returned exactly as the model produced it
	assert.Equal(t, "  "+extractedJSON+"\n", text)

	assert.Equal(t, 256, got.MaxTokens)
	assert.Equal(t, float32(0.3), got.Temperature)
	assert.Equal(t, []string{"</s>"}, got.Stop)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "Text: Aspirin inhibits COX-2.", got.Messages[0].Content)
}

func TestOpenAIProvider_Generate_ZeroTemperatureIsSent(t *testing.T) {
	var body map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(data, &body))
		_ = json.NewEncoder(w).Encode(chatResponse("ok"))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Temperature: 0})
	require.NoError(t, err)

	_, err = provider.Generate(context.Background(), "prompt")
	require.NoError(t, err)

	temperature, ok := body["temperature"]
	require.True(t, ok, "temperature must be present in the request body: %v", body)
	assert.InDelta(t, 0, temperature, 1e-6)
}

func TestOpenAIProvider_MissingAPIKey(t *testing.T) {
	_, err := NewOpenAIProvider(Config{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestOpenAIProvider_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "Internal Server Error", "type": "server_error"}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	require.NoError(t, err)

	_, err = provider.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestOpenAIProvider_Generate_RateLimitNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "Rate limit exceeded", "type": "rate_limit_error"}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	require.NoError(t, err)

	_, err = provider.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, 1, calls, "expected exactly one upstream call")
}

func TestOpenAIProvider_Generate_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{malformed json`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	require.NoError(t, err)

	_, err = provider.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestOpenAIProvider_Generate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{ID: "chatcmpl-1"})
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	require.NoError(t, err)

	_, err = provider.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestOpenAIProvider_Generate_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 1})
	require.NoError(t, err)

	// A caller deadline shorter than the provider timeout wins
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = provider.Generate(ctx, "prompt")
	assert.Error(t, err)
}

func TestOpenAIProvider_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/models" {
			_, _ = w.Write([]byte(`{"data": [{"id": "gpt-4o-mini"}]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	assert.NoError(t, provider.Ping(context.Background()))

	server.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.Error(t, provider.Ping(context.Background()))
}
