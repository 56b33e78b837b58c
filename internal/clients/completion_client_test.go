package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"advisory-api/internal/config"
)

func newTestClient(baseURL, token string) *CompletionClient {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return NewCompletionClient(config.AdvisorConfig{
		APIToken:     token,
		Model:        "test-model",
		BaseURL:      baseURL,
		Timeout:      5 * time.Second,
		MaxNewTokens: 250,
		Temperature:  0.7,
	}, logger)
}

func TestCompletionClient_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns empty without credential", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		client := newTestClient(server.URL, "")

		assert.Empty(t, client.Complete(ctx, "any prompt at all"))
		assert.False(t, called, "no request should be issued without a credential")
	})

	t.Run("list shaped response with prompt echo", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			assert.Equal(t, "/test-model", r.URL.Path)
			w.Write([]byte(`[{"generated_text": "What to buy? Diversify across sectors."}]`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, "secret")

		result := client.Complete(ctx, "What to buy?")
		assert.Equal(t, "Diversify across sectors.", result)
	})

	t.Run("object shaped response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"generated_text": "Stay the course."}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, "secret")

		assert.Equal(t, "Stay the course.", client.Complete(ctx, "prompt"))
	})

	t.Run("text without echo is returned unchanged", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"generated_text": "A fresh continuation."}]`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, "secret")

		assert.Equal(t, "A fresh continuation.", client.Complete(ctx, "prompt"))
	})

	t.Run("non success status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := newTestClient(server.URL, "secret")

		assert.Empty(t, client.Complete(ctx, "prompt"))
	})

	t.Run("unrecognized shapes", func(t *testing.T) {
		for _, body := range []string{
			`{"something_else": "x"}`,
			`[]`,
			`[{"other": 1}]`,
			`not json`,
			`42`,
		} {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))

			client := newTestClient(server.URL, "secret")
			assert.Emptyf(t, client.Complete(ctx, "prompt"), "body %s should yield empty result", body)

			server.Close()
		}
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		client := newTestClient("http://127.0.0.1:1", "secret")

		assert.Empty(t, client.Complete(ctx, "prompt"))
	})
}

func TestDecodeGeneratedText(t *testing.T) {
	text, ok := decodeGeneratedText([]byte(`[{"generated_text": "hello"}]`))
	assert.True(t, ok)
	assert.Equal(t, "hello", text)

	text, ok = decodeGeneratedText([]byte(`{"generated_text": "hello"}`))
	assert.True(t, ok)
	assert.Equal(t, "hello", text)

	_, ok = decodeGeneratedText([]byte(`{"generated": "hello"}`))
	assert.False(t, ok)
}
