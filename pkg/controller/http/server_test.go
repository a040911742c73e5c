package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"

	controller "github.com/kord-legal/kord/pkg/controller/http"
	"github.com/kord-legal/kord/pkg/domain/interfaces"
	"github.com/kord-legal/kord/pkg/repository"
	"github.com/kord-legal/kord/pkg/service/llm"
	"github.com/kord-legal/kord/pkg/service/report"
	"github.com/kord-legal/kord/pkg/usecase"
)

// newTestServer builds a server with a memory repository, a millisecond
// step schedule, and the given relay
func newTestServer(t *testing.T, relay interfaces.LLMRelay) *httptest.Server {
	t.Helper()

	ctx := ctxlog.With(context.Background(), slog.New(slog.NewTextHandler(os.Stdout, nil)))

	repo := repository.NewMemory()
	t.Cleanup(func() { _ = repo.Close() })

	dataset, err := report.Load()
	gt.NoError(t, err).Required()
	for i := range dataset.Steps {
		dataset.Steps[i].Duration = 2 * time.Millisecond
	}

	investigationUC := usecase.NewInvestigation(repo, dataset)
	briefUC := usecase.NewBrief()

	srv, err := controller.NewServer(ctx, ":0", repo, investigationUC, briefUC, relay)
	gt.NoError(t, err).Required()

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	gt.NoError(t, err).Required()

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	gt.NoError(t, err).Required()
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body)).Required()
	return body
}

func TestServerHealthCheck(t *testing.T) {
	ts := newTestServer(t, llm.New("", "", ""))

	resp, err := http.Get(ts.URL + "/health")
	gt.NoError(t, err).Required()
	gt.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	gt.Equal(t, "healthy", body["status"])
	gt.Equal(t, "kord", body["service"])
}

func TestServerServesFrontend(t *testing.T) {
	ts := newTestServer(t, llm.New("", "", ""))

	resp, err := http.Get(ts.URL + "/")
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	gt.NoError(t, err).Required()
	gt.S(t, string(body)).Contains("Kord Legal")
}

func TestRelayRoutes(t *testing.T) {
	t.Run("401 when API key is unset", func(t *testing.T) {
		ts := newTestServer(t, llm.New("", "", ""))

		for _, route := range []string{"/api/verify", "/api/investigate"} {
			resp := postJSON(t, ts.URL+route, map[string]string{"prompt": "check this brief"})
			gt.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			body := decodeJSON(t, resp)
			gt.S(t, gt.Cast[string](t, body["error"])).Contains("API key is not configured")
		}
	})

	t.Run("relays upstream status and body unchanged", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream exploded"}}`))
		}))
		defer upstream.Close()

		ts := newTestServer(t, llm.New("test-key", upstream.URL, ""))

		resp := postJSON(t, ts.URL+"/api/verify", map[string]string{"prompt": "check this brief"})
		defer resp.Body.Close()
		gt.Equal(t, http.StatusBadGateway, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		gt.NoError(t, err).Required()
		gt.Equal(t, `{"error":{"message":"upstream exploded"}}`, string(body))
	})

	t.Run("echoes requestId and generates one when absent", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer upstream.Close()

		ts := newTestServer(t, llm.New("test-key", upstream.URL, ""))

		resp := postJSON(t, ts.URL+"/api/verify", map[string]string{
			"prompt":    "check this brief",
			"requestId": "req-fixed",
		})
		resp.Body.Close()
		gt.Equal(t, "req-fixed", resp.Header.Get("X-Request-ID"))

		resp = postJSON(t, ts.URL+"/api/investigate", map[string]string{"prompt": "check this brief"})
		resp.Body.Close()
		gt.True(t, resp.Header.Get("X-Request-ID") != "")
	})

	t.Run("400 on empty prompt", func(t *testing.T) {
		ts := newTestServer(t, llm.New("test-key", "", ""))

		resp := postJSON(t, ts.URL+"/api/verify", map[string]string{"prompt": "  "})
		resp.Body.Close()
		gt.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("500 when upstream is unreachable", func(t *testing.T) {
		ts := newTestServer(t, llm.New("test-key", "http://127.0.0.1:1", ""))

		resp := postJSON(t, ts.URL+"/api/investigate", map[string]string{"prompt": "check this brief"})
		gt.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		body := decodeJSON(t, resp)
		gt.Equal(t, "internal server error", body["error"])
	})
}

func TestBriefExtractRoute(t *testing.T) {
	uploadFile := func(t *testing.T, ts *httptest.Server, filename, content string) *http.Response {
		t.Helper()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", filename)
		gt.NoError(t, err).Required()
		_, err = part.Write([]byte(content))
		gt.NoError(t, err).Required()
		gt.NoError(t, mw.Close()).Required()

		resp, err := http.Post(ts.URL+"/api/briefs/extract", mw.FormDataContentType(), &buf)
		gt.NoError(t, err).Required()
		return resp
	}

	ts := newTestServer(t, llm.New("", "", ""))

	t.Run("txt upload returns exact contents", func(t *testing.T) {
		content := "IN THE DISTRICT COURT\n\nPlaintiff alleges:\n  1. Venue is proper.\n"
		resp := uploadFile(t, ts, "brief.txt", content)
		gt.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeJSON(t, resp)
		gt.Equal(t, content, gt.Cast[string](t, body["text"]))
		gt.Equal(t, "brief.txt", body["filename"])
	})

	t.Run("unsupported extension", func(t *testing.T) {
		resp := uploadFile(t, ts, "brief.pdf", "%PDF-1.4")
		gt.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeJSON(t, resp)
		gt.S(t, gt.Cast[string](t, body["error"])).Contains("only .txt and .md briefs can be read")
	})

	t.Run("missing file part", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/briefs/extract", "multipart/form-data", nil)
		gt.NoError(t, err).Required()
		resp.Body.Close()
		gt.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestInvestigationRoutes(t *testing.T) {
	ts := newTestServer(t, llm.New("", "", ""))

	t.Run("full lifecycle ends in the canned report", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/api/investigations", map[string]string{
			"text":     "Plaintiff submits this brief.",
			"filename": "brief.txt",
		})
		gt.Equal(t, http.StatusAccepted, resp.StatusCode)

		created := decodeJSON(t, resp)
		id := gt.Cast[string](t, created["id"])
		gt.True(t, id != "")
		gt.Equal(t, "queued", created["status"])
		gt.A(t, gt.Cast[[]any](t, created["steps"])).Longer(0)

		var final map[string]any
		deadline := time.Now().Add(3 * time.Second)
		for time.Now().Before(deadline) {
			getResp, err := http.Get(ts.URL + "/api/investigations/" + id)
			gt.NoError(t, err).Required()
			gt.Equal(t, http.StatusOK, getResp.StatusCode)

			snapshot := decodeJSON(t, getResp)
			status := gt.Cast[string](t, snapshot["status"])
			if status == "completed" || status == "failed" {
				final = snapshot
				break
			}
			time.Sleep(2 * time.Millisecond)
		}

		gt.V(t, final).NotNil()
		gt.Equal(t, "completed", final["status"])

		reportBody := gt.Cast[map[string]any](t, final["report"])
		gt.Equal(t, "file_with_caution", reportBody["verdict"])
		gt.A(t, gt.Cast[[]any](t, reportBody["critical_issues"])).Longer(0)
		gt.A(t, gt.Cast[[]any](t, reportBody["hallucination_signals"])).Longer(0)
		gt.A(t, gt.Cast[[]any](t, reportBody["formatting_issues"])).Longer(0)
	})

	t.Run("400 on empty text", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/api/investigations", map[string]string{"text": "   "})
		resp.Body.Close()
		gt.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("404 on unknown ID", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/investigations/no-such-id")
		gt.NoError(t, err).Required()
		resp.Body.Close()
		gt.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("list returns recent investigations", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/investigations")
		gt.NoError(t, err).Required()
		gt.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeJSON(t, resp)
		gt.A(t, gt.Cast[[]any](t, body["investigations"])).Longer(0)
	})
}
