package middleware

import (
	"context"
	"log/slog"
	"net/http"
)

// AdminSecretHeader carries the admin secret on inbox requests.
const AdminSecretHeader = "X-Admin-Secret"

// AdminAuth returns middleware that checks the X-Admin-Secret header with
// verify. A missing secret is rejected with 401 and a wrong one with 403.
func AdminAuth(verify func(ctx context.Context, secret string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secret := r.Header.Get(AdminSecretHeader)
			if secret == "" {
				slog.Warn("auth: missing admin secret",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				reject(w, http.StatusUnauthorized, `{"error":"missing admin secret","code":"AUTH001"}`)
				return
			}

			if !verify(r.Context(), secret) {
				slog.Warn("auth: invalid admin secret",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				reject(w, http.StatusForbidden, `{"error":"invalid admin secret","code":"AUTH001"}`)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func reject(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body + "\n"))
}
