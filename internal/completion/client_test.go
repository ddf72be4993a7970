package completion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c := New("http://test.endpoint/", "test_api_key", 100)

	assert.Equal(t, "http://test.endpoint", c.Endpoint())
	assert.Equal(t, "test_api_key", c.apiKey)
	assert.Equal(t, 100, c.MaxTokens())
	assert.NotNil(t, c.httpClient)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)

	c = New("http://test.endpoint", "k", 1, WithTimeout(time.Second))
	assert.Equal(t, time.Second, c.httpClient.Timeout)
}

func TestComplete(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/completions", r.URL.Path)
			assert.Equal(t, "Bearer test_api_key", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			data, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(data, &body))
			assert.Equal(t, "Test prompt", body["prompt"])
			assert.Equal(t, []any{"\n", "\""}, body["stop"])
			assert.Equal(t, float64(100), body["max_tokens"])

			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"choices":[{"text":"Hello!"}]}`))
		}))
		defer server.Close()

		c := New(server.URL+"/", "test_api_key", 100)
		got, err := c.Complete(context.Background(), "Test prompt")
		require.NoError(t, err)
		assert.Equal(t, "Hello!", got)
	})

	t.Run("token budget override", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body request
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 7, body.MaxTokens)
			_, _ = w.Write([]byte(`{"choices":[{"text":"ok"},{"text":"ignored"}]}`))
		}))
		defer server.Close()

		c := New(server.URL, "k", 100)
		got, err := c.Complete(context.Background(), "p", WithMaxTokens(7))
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("Bad Request"))
		}))
		defer server.Close()

		c := New(server.URL, "test_api_key", 100)
		_, err := c.Complete(context.Background(), "Test prompt")

		var reqErr *RequestError
		require.True(t, errors.As(err, &reqErr))
		assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
		assert.Equal(t, "Bad Request", reqErr.Body)
		assert.Equal(t, "completion request failed with status code 400: Bad Request", err.Error())
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		_, err := New(server.URL, "k", 10).Complete(context.Background(), "p")
		var reqErr *RequestError
		require.True(t, errors.As(err, &reqErr))
		assert.Equal(t, http.StatusOK, reqErr.StatusCode)
		assert.Error(t, reqErr.Unwrap())
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		_, err := New(server.URL, "k", 10).Complete(context.Background(), "p")
		var reqErr *RequestError
		require.True(t, errors.As(err, &reqErr))
		assert.Contains(t, err.Error(), "no choices")
	})

	t.Run("transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := New(url, "k", 10).Complete(context.Background(), "p")
		var reqErr *RequestError
		require.True(t, errors.As(err, &reqErr))
		assert.Equal(t, 0, reqErr.StatusCode)
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[{"text":"late"}]}`))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New(server.URL, "k", 10).Complete(ctx, "p")
		var reqErr *RequestError
		require.True(t, errors.As(err, &reqErr))
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestRequestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *RequestError
		want string
	}{
		{"status only", &RequestError{StatusCode: 500, Body: "boom"}, "completion request failed with status code 500: boom"},
		{"status and cause", &RequestError{StatusCode: 200, Err: errors.New("bad body")}, "completion request failed with status code 200: bad body"},
		{"transport", &RequestError{Err: errors.New("connection refused")}, "completion request failed: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
