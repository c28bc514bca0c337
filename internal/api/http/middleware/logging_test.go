package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/napowa/napowa-server/internal/logger"
)

func TestLogging_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		write      bool
		wantLevel  string
		wantStatus string
	}{
		{name: "implicit ok", write: true, wantLevel: "level=INFO", wantStatus: "status=200"},
		{name: "client error", status: http.StatusNotFound, wantLevel: "level=INFO", wantStatus: "status=404"},
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "level=ERROR", wantStatus: "status=500"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			lg := logger.NewWithWriter(&buf, 0)

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				if tt.write {
					_, _ = w.Write([]byte("ok"))
				}
			})

			h := chimw.RequestID(NewLogging(lg).Handle(next))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

			out := buf.String()
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, tt.wantStatus)
			assert.Contains(t, out, "method=GET")
			assert.Contains(t, out, "path=/healthz")
			assert.Contains(t, out, "request_id=")
			assert.Contains(t, out, "duration_ms=")
		})
	}
}
