package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		want   string
	}{
		{"health check", "/healthz", http.StatusOK, "level=DEBUG"},
		{"success", "/api/formats", http.StatusOK, "level=INFO"},
		{"client error", "/api/drafts/x", http.StatusNotFound, "level=WARN"},
		{"server error", "/api/drafts", http.StatusInternalServerError, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			prev := slog.Default()
			slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
			t.Cleanup(func() { slog.SetDefault(prev) })

			handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("hello"))
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			line := buf.String()
			if !strings.Contains(line, tt.want) {
				t.Errorf("log line %q missing %q", line, tt.want)
			}
			if !strings.Contains(line, "bytes=5") {
				t.Errorf("log line %q missing bytes=5", line)
			}
		})
	}
}
