package web

import (
	"context"
	"net/http"

	"github.com/MichaelReichel/clock2doc/internal/core"
)

// WithRequestMetadata adds IP and User-Agent to context for contact messages.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ctx = core.ContextWithIPAddress(ctx, clientIP(r)) // RemoteAddr already processed by TrustedRealIP
	ctx = core.ContextWithUserAgent(ctx, r.UserAgent())
	return ctx
}
