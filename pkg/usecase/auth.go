package usecase

import (
	"context"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"

	"github.com/mrm-lab/modelrisk/pkg/domain/model/auth"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

// AuthUseCaseInterface resolves a raw bearer token into a session identity
type AuthUseCaseInterface interface {
	ValidateToken(ctx context.Context, raw string) (*auth.Token, error)
	IsNoAuthn() bool
}

// JWTAuthUseCase validates HS256 session tokens issued by the identity
// gateway. Capabilities ride in the "capabilities" claim as a string list.
type JWTAuthUseCase struct {
	secret types.Secret
}

func NewJWTAuthUseCase(secret types.Secret) *JWTAuthUseCase {
	return &JWTAuthUseCase{
		secret: secret,
	}
}

// IsNoAuthn returns false for JWTAuthUseCase
func (uc *JWTAuthUseCase) IsNoAuthn() bool {
	return false
}

// ValidateToken parses and verifies the JWT and extracts the identity
func (uc *JWTAuthUseCase) ValidateToken(ctx context.Context, raw string) (*auth.Token, error) {
	// Allow 10 seconds of clock skew to handle time synchronization differences
	parsed, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, []byte(uc.secret.Unwrap())),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(10*time.Second),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse or verify session token")
	}

	sub := parsed.Subject()
	if sub == "" {
		return nil, goerr.New("sub claim not found in token")
	}

	token := &auth.Token{
		Sub: sub,
	}

	if name, ok := parsed.Get("name"); ok {
		if nameStr, ok := name.(string); ok {
			token.Name = nameStr
		}
	}

	if claim, ok := parsed.Get("capabilities"); ok {
		names, err := capabilityNames(claim)
		if err != nil {
			return nil, err
		}
		token.Capabilities = auth.CapabilitiesFromNames(names)
	}

	return token, nil
}

// capabilityNames normalizes the capabilities claim, which arrives as
// []interface{} after JSON decoding
func capabilityNames(claim interface{}) ([]string, error) {
	switch v := claim.(type) {
	case []string:
		return v, nil
	case []interface{}:
		names := make([]string, 0, len(v))
		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, goerr.New("capabilities claim contains a non-string entry")
			}
			names = append(names, name)
		}
		return names, nil
	default:
		return nil, goerr.New("capabilities claim is not a list")
	}
}

// NoAuthnUseCase grants every request the anonymous identity with full
// capabilities (for development/testing)
type NoAuthnUseCase struct{}

func NewNoAuthnUseCase() *NoAuthnUseCase {
	return &NoAuthnUseCase{}
}

// ValidateToken always returns the anonymous user
func (uc *NoAuthnUseCase) ValidateToken(ctx context.Context, raw string) (*auth.Token, error) {
	return auth.NewAnonymousUser(), nil
}

// IsNoAuthn returns true for NoAuthnUseCase
func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}
