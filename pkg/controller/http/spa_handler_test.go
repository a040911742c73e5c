package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/kord-legal/kord/frontend"
	httpCtrl "github.com/kord-legal/kord/pkg/controller/http"
)

func TestSPAHandler(t *testing.T) {
	fs, err := frontend.GetHTTPFS()
	gt.NoError(t, err).Required()

	handler, err := httpCtrl.NewSPAHandler(fs)
	gt.NoError(t, err).Required()

	serve := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	t.Run("serve existing static file", func(t *testing.T) {
		w := serve("/app.js")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, w.Header().Get("Content-Type"), "application/javascript; charset=utf-8")
		gt.S(t, w.Body.String()).Contains("investigations")
	})

	t.Run("serve CSS with correct content type", func(t *testing.T) {
		w := serve("/styles.css")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, w.Header().Get("Content-Type"), "text/css; charset=utf-8")
	})

	t.Run("serve index.html for root path", func(t *testing.T) {
		w := serve("/")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, w.Header().Get("Content-Type"), "text/html; charset=utf-8")
		gt.S(t, w.Body.String()).Contains("<html")
	})

	t.Run("fall back to index.html for client routes", func(t *testing.T) {
		for _, path := range []string{"/reports", "/reports/abc-123", "/about"} {
			w := serve(path)
			gt.Equal(t, w.Code, http.StatusOK)
			gt.S(t, w.Body.String()).Contains("Kord Legal")
		}
	})
}
