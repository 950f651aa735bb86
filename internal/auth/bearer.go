// Package auth guards write routes with a static bearer token.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/interbanking/interbanking-api/internal/platform/httpx"
)

// Failure messages returned to clients.
const (
	MsgHeaderRequired = "Authorization header is required"
	MsgInvalidFormat  = `Invalid authorization format. Use "Bearer <token>"`
	MsgTokenRequired  = "Token is required"
	MsgInvalidToken   = "Invalid authentication token"
)

// Gate validates "Authorization: Bearer <token>" against a shared secret.
type Gate struct {
	token  string
	logger *slog.Logger
}

// NewGate constructs a Gate for the given secret.
func NewGate(token string, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{token: token, logger: logger}
}

// Check validates the Authorization header value.
func (g *Gate) Check(header string) error {
	if header == "" {
		g.logger.Warn("no authorization header provided")
		return httpx.NewError(httpx.ErrUnauthorized, MsgHeaderRequired)
	}

	parts := strings.Split(header, " ")
	if parts[0] != "Bearer" {
		g.logger.Warn(`invalid authorization format, expected "Bearer <token>"`)
		return httpx.NewError(httpx.ErrUnauthorized, MsgInvalidFormat)
	}

	var token string
	if len(parts) > 1 {
		token = parts[1]
	}
	if token == "" {
		g.logger.Warn("token not provided")
		return httpx.NewError(httpx.ErrUnauthorized, MsgTokenRequired)
	}

	if token != g.token {
		g.logger.Warn("invalid token provided", slog.String("token", redact(token)))
		return httpx.NewError(httpx.ErrUnauthorized, MsgInvalidToken)
	}
	return nil
}

// Middleware rejects requests failing Check with a 401 envelope.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.logger.Debug("validating authentication", slog.String("method", r.Method), slog.String("path", r.URL.Path))
		if err := g.Check(r.Header.Get("Authorization")); err != nil {
			httpx.RespondError(w, r, g.logger, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func redact(token string) string {
	if len(token) > 5 {
		token = token[:5]
	}
	return token + "..."
}
