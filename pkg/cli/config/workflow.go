package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/mrm-lab/modelrisk/pkg/service/workflow"
)

// Workflow holds CLI flags for the validation workflow system
type Workflow struct {
	baseURL string
	token   string
}

func (x *Workflow) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "workflow-url",
			Usage:       "Base URL of the validation workflow system (enables the change impact gate)",
			Category:    "Workflow",
			Sources:     cli.EnvVars("MODELRISK_WORKFLOW_URL"),
			Destination: &x.baseURL,
		},
		&cli.StringFlag{
			Name:        "workflow-token",
			Usage:       "Bearer token for the validation workflow system",
			Category:    "Workflow",
			Sources:     cli.EnvVars("MODELRISK_WORKFLOW_TOKEN"),
			Destination: &x.token,
		},
	}
}

func (x Workflow) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base-url", x.baseURL),
		slog.Int("token.len", len(x.token)),
	)
}

// IsConfigured checks if the workflow system is configured
func (x *Workflow) IsConfigured() bool {
	return x.baseURL != ""
}

// Configure creates a workflow service, or nil when not configured
func (x *Workflow) Configure() (workflow.Service, error) {
	if !x.IsConfigured() {
		return nil, nil
	}
	return workflow.New(x.baseURL, x.token)
}
