package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/mrm-lab/modelrisk/pkg/cli/config"
	httpctrl "github.com/mrm-lab/modelrisk/pkg/controller/http"
	"github.com/mrm-lab/modelrisk/pkg/usecase"
	"github.com/mrm-lab/modelrisk/pkg/utils/logging"
	"github.com/mrm-lab/modelrisk/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var policyCfg config.Policy
	var repoCfg config.Repository
	var authCfg config.Auth
	var workflowCfg config.Workflow
	var notifyCfg config.Notify
	var archiveCfg config.Archive

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("MODELRISK_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)
	flags = append(flags, workflowCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags, archiveCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			riskPolicy, err := policyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load risk policy")
			}
			logger.Info("Risk policy loaded",
				"path", policyCfg.Path(),
				"factors", len(riskPolicy.Factors),
				"regions", len(riskPolicy.Regions))

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			authUC, err := authCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure authentication")
			}
			if authCfg.IsNoAuthMode() {
				logger.Warn("Running in no-auth mode (development only)")
			}

			ucOpts := []usecase.Option{
				usecase.WithAuth(authUC),
			}

			workflowSvc, err := workflowCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize workflow service")
			}
			if workflowSvc != nil {
				ucOpts = append(ucOpts, usecase.WithWorkflow(workflowSvc))
				logger.Info("Change impact gate enabled", "workflow", workflowCfg)
			} else {
				logger.Info("Workflow system not configured, change impact gate disabled")
			}

			notifySvc, err := notifyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize notifier")
			}
			if notifySvc != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifySvc))
				logger.Info("Tier change notifications enabled", "notify", notifyCfg)
			}

			archiveSvc, err := archiveCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize archive service")
			}
			if archiveSvc != nil {
				defer safe.Close(ctx, archiveSvc)
				ucOpts = append(ucOpts, usecase.WithArchive(archiveSvc))
				logger.Info("Assessment archival enabled", "archive", archiveCfg)
			}

			uc := usecase.New(repo, riskPolicy, ucOpts...)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logger.Info("Server shutdown completed")
				return nil
			}
		},
	}
}
