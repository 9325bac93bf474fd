package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/mrm-lab/modelrisk/pkg/domain/types"
	"github.com/mrm-lab/modelrisk/pkg/usecase"
)

// Auth holds CLI flags for session token validation
type Auth struct {
	jwtSecret string
	noAuth    bool
}

func (x *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "auth-jwt-secret",
			Usage:       "HS256 secret for session token validation",
			Category:    "Authentication",
			Sources:     cli.EnvVars("MODELRISK_AUTH_JWT_SECRET"),
			Destination: &x.jwtSecret,
		},
		&cli.BoolFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication, every request gets full capabilities (development only)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("MODELRISK_NO_AUTH"),
			Destination: &x.noAuth,
		},
	}
}

func (x Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("jwt-secret.len", len(x.jwtSecret)),
		slog.Bool("no-auth", x.noAuth),
	)
}

// IsNoAuthMode returns true if no-auth mode is enabled
func (x *Auth) IsNoAuthMode() bool {
	return x.noAuth
}

// Configure creates a JWT auth use case, or NoAuthn when --no-auth is set
func (x *Auth) Configure() (usecase.AuthUseCaseInterface, error) {
	if x.noAuth {
		if x.jwtSecret != "" {
			slog.Warn("--no-auth is set, ignoring --auth-jwt-secret")
		}
		return usecase.NewNoAuthnUseCase(), nil
	}

	if x.jwtSecret == "" {
		return nil, goerr.New("authentication is required: set --auth-jwt-secret, or use --no-auth for development")
	}

	return usecase.NewJWTAuthUseCase(types.Secret(x.jwtSecret)), nil
}
