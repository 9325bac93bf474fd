package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/gt"

	"github.com/mrm-lab/modelrisk/pkg/domain/model/auth"
	"github.com/mrm-lab/modelrisk/pkg/usecase"
)

func signToken(t *testing.T, secret string, build func(b *jwt.Builder)) string {
	t.Helper()

	b := jwt.NewBuilder().
		Issuer("identity-gateway").
		IssuedAt(time.Now()).
		Expiration(time.Now().Add(time.Hour))
	build(b)

	token, err := b.Build()
	gt.NoError(t, err).Required()

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(secret)))
	gt.NoError(t, err).Required()
	return string(signed)
}

func TestJWTAuthValidateToken(t *testing.T) {
	const secret = "test-signing-secret"
	uc := usecase.NewJWTAuthUseCase("test-signing-secret")
	ctx := context.Background()

	gt.Value(t, uc.IsNoAuthn()).Equal(false)

	t.Run("valid token with capabilities", func(t *testing.T) {
		raw := signToken(t, secret, func(b *jwt.Builder) {
			b.Subject("analyst-1").
				Claim("name", "Pat Analyst").
				Claim("capabilities", []string{auth.CapManageAssessments, auth.CapViewReports})
		})

		token, err := uc.ValidateToken(ctx, raw)
		gt.NoError(t, err).Required()
		gt.Value(t, token.Sub).Equal("analyst-1")
		gt.Value(t, token.Name).Equal("Pat Analyst")
		gt.Value(t, token.Capabilities.CanManageAssessments).Equal(true)
		gt.Value(t, token.Capabilities.CanViewReports).Equal(true)
		gt.Value(t, token.Capabilities.CanManageModels).Equal(false)
	})

	t.Run("unknown capability names are ignored", func(t *testing.T) {
		raw := signToken(t, secret, func(b *jwt.Builder) {
			b.Subject("analyst-2").
				Claim("capabilities", []string{"can_fly", auth.CapViewReports})
		})

		token, err := uc.ValidateToken(ctx, raw)
		gt.NoError(t, err).Required()
		gt.Value(t, token.Capabilities.CanViewReports).Equal(true)
		gt.Value(t, token.Capabilities.CanManageAssessments).Equal(false)
	})

	t.Run("missing sub is rejected", func(t *testing.T) {
		raw := signToken(t, secret, func(b *jwt.Builder) {
			b.Claim("capabilities", []string{auth.CapViewReports})
		})

		_, err := uc.ValidateToken(ctx, raw)
		gt.Error(t, err)
	})

	t.Run("wrong signing key is rejected", func(t *testing.T) {
		raw := signToken(t, "some-other-secret", func(b *jwt.Builder) {
			b.Subject("analyst-1")
		})

		_, err := uc.ValidateToken(ctx, raw)
		gt.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		b := jwt.NewBuilder().
			Subject("analyst-1").
			IssuedAt(time.Now().Add(-2 * time.Hour)).
			Expiration(time.Now().Add(-time.Hour))
		token, err := b.Build()
		gt.NoError(t, err).Required()
		signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(secret)))
		gt.NoError(t, err).Required()

		_, err = uc.ValidateToken(ctx, string(signed))
		gt.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := uc.ValidateToken(ctx, "not-a-jwt")
		gt.Error(t, err)
	})
}

func TestNoAuthn(t *testing.T) {
	uc := usecase.NewNoAuthnUseCase()

	gt.Value(t, uc.IsNoAuthn()).Equal(true)

	token, err := uc.ValidateToken(context.Background(), "")
	gt.NoError(t, err).Required()
	gt.Value(t, token.Sub).Equal("anonymous")
	gt.Value(t, token.Capabilities.CanManageAssessments).Equal(true)
}
