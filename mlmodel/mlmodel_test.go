package mlmodel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pulse/types"
)

func TestDetect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req NERRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Modi met Sundar Pichai in Delhi", req.Text)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entities":[
			{"text":"Modi","label":"B-PER","score":0.97},
			{"text":"Sundar Pichai","label":"PERSON"},
			{"text":"Delhi","label":"GPE","score":0.91},
			{"text":"  ","label":"ORG"}
		]}`))
	}))
	defer server.Close()

	got, err := NewClient(server.URL).Detect(context.Background(), "Modi met Sundar Pichai in Delhi")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, types.Entity{Text: "Modi", Label: types.PER, Confidence: 0.97, Source: types.SourceModel}, got[0])
	assert.Equal(t, types.PER, got[1].Label)
	assert.Equal(t, DefaultConfidence, got[1].Confidence)
	assert.Equal(t, types.GPE, got[2].Label)
}

func TestDetect_Disabled(t *testing.T) {
	c := NewClient("")
	assert.False(t, c.Enabled())

	got, err := c.Detect(context.Background(), "Modi in Delhi")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDetect_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Detect(context.Background(), "text")
	assert.Error(t, err)
}

func TestDetect_Malformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Detect(context.Background(), "text")
	assert.Error(t, err)
}

func TestDetect_ErrUnavailable(t *testing.T) {
	_, err := NewClient("http://localhost:99999").Detect(context.Background(), "text")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Health(context.Background())
	assert.NoError(t, err)

	_, err = NewClient("").Health(context.Background())
	assert.Error(t, err)
}
