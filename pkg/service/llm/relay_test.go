package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/kord-legal/kord/pkg/domain/model"
	"github.com/kord-legal/kord/pkg/service/llm"
)

func TestRelay(t *testing.T) {
	t.Run("forwards prompts and returns raw upstream body", func(t *testing.T) {
		var gotAuth string
		var gotReq map[string]any
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			body, _ := io.ReadAll(r.Body)
			gt.NoError(t, json.Unmarshal(body, &gotReq))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"audit result"}}]}`))
		}))
		defer upstream.Close()

		relay := llm.New("test-key", upstream.URL, "test-model")
		gt.True(t, relay.IsConfigured())

		resp, err := relay.Relay(context.Background(), "system text", "user text")
		gt.NoError(t, err).Required()

		gt.Equal(t, http.StatusOK, resp.StatusCode)
		gt.Equal(t, "application/json", resp.ContentType)
		gt.S(t, string(resp.Body)).Contains("audit result")
		gt.Equal(t, "Bearer test-key", gotAuth)

		gt.Equal(t, "test-model", gotReq["model"])
		messages := gt.Cast[[]any](t, gotReq["messages"])
		gt.A(t, messages).Length(2)
		first := gt.Cast[map[string]any](t, messages[0])
		gt.Equal(t, "system", first["role"])
		gt.Equal(t, "system text", first["content"])
	})

	t.Run("relays non-OK upstream status without error", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
		}))
		defer upstream.Close()

		relay := llm.New("test-key", upstream.URL, "")
		resp, err := relay.Relay(context.Background(), "s", "u")
		gt.NoError(t, err).Required()

		gt.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		gt.S(t, string(resp.Body)).Contains("rate limit exceeded")
	})

	t.Run("fails without API key before any network call", func(t *testing.T) {
		relay := llm.New("", "http://127.0.0.1:1", "")
		gt.False(t, relay.IsConfigured())

		_, err := relay.Relay(context.Background(), "s", "u")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrAPIKeyNotConfigured))
	})

	t.Run("returns error when upstream is unreachable", func(t *testing.T) {
		relay := llm.New("test-key", "http://127.0.0.1:1", "")
		_, err := relay.Relay(context.Background(), "s", "u")
		gt.Error(t, err)
	})
}

func TestSystemPrompts(t *testing.T) {
	gt.S(t, llm.SystemPromptVerify()).Contains("hostile legal auditor")
	gt.S(t, llm.SystemPromptInvestigate()).Contains("filing readiness")
}
