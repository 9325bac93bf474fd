package auth

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

// Token is the resolved session identity attached to a request context
type Token struct {
	Sub          string       `json:"sub"`
	Name         string       `json:"name,omitempty"`
	Capabilities Capabilities `json:"capabilities"`
}

// NewAnonymousUser returns the token used when authentication is disabled.
// It carries every capability; no-auth mode is development only.
func NewAnonymousUser() *Token {
	return &Token{
		Sub:          "anonymous",
		Name:         "Anonymous",
		Capabilities: AllCapabilities(),
	}
}

type ctxTokenKey struct{}

// ContextWithToken attaches a session token to the context
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxTokenKey{}, token)
}

// TokenFromContext retrieves the session token from the context
func TokenFromContext(ctx context.Context) (*Token, error) {
	token, ok := ctx.Value(ctxTokenKey{}).(*Token)
	if !ok || token == nil {
		return nil, goerr.New("no session token in context")
	}
	return token, nil
}
