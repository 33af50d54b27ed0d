package translit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleClient_Translate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "hi", r.URL.Query().Get("sl"))
		assert.Equal(t, "en", r.URL.Query().Get("tl"))
		assert.Equal(t, "नरेंद्र मोदी", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[[["Narendra ","नरेंद्र ",null,null,10],["Modi","मोदी",null,null,10]],null,"hi"]`))
	}))
	defer server.Close()

	got, err := NewGoogleClient(server.URL).Translate(context.Background(), "नरेंद्र मोदी", "hi", "en")
	require.NoError(t, err)
	assert.Equal(t, "Narendra Modi", got)
}

func TestGoogleClient_Translate_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewGoogleClient(server.URL).Translate(context.Background(), "x", "hi", "en")
	assert.Error(t, err)
}

func TestGoogleClient_Translate_Malformed(t *testing.T) {
	for _, body := range []string{`<html>nope</html>`, `{"unexpected":true}`, `[]`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		_, err := NewGoogleClient(server.URL).Translate(context.Background(), "x", "hi", "en")
		assert.Error(t, err, body)
		server.Close()
	}
}

func TestGoogleClient_Translate_ErrUnavailable(t *testing.T) {
	_, err := NewGoogleClient("http://localhost:99999").Translate(context.Background(), "x", "hi", "en")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestOpenAIClient_Translate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":" \"Mamata Banerjee\" "},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	got, err := NewOpenAIClient("test-key", server.URL).Translate(context.Background(), "মমতা বন্দ্যোপাধ্যায়", "bn", "en")
	require.NoError(t, err)
	assert.Equal(t, "Mamata Banerjee", got)
}

func TestOpenAIClient_Translate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	_, err := NewOpenAIClient("test-key", server.URL).Translate(context.Background(), "x", "bn", "en")
	assert.Error(t, err)
}
