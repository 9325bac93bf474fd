package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/mrm-lab/modelrisk/pkg/domain/types"
	"github.com/mrm-lab/modelrisk/pkg/service/notify"
)

// Notify holds CLI flags for Slack tier change notifications
type Notify struct {
	slackBotToken string
	slackChannel  string
}

func (x *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (enables tier change notifications)",
			Category:    "Notification",
			Sources:     cli.EnvVars("MODELRISK_SLACK_BOT_TOKEN"),
			Destination: &x.slackBotToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel for tier change notifications",
			Category:    "Notification",
			Sources:     cli.EnvVars("MODELRISK_SLACK_CHANNEL"),
			Destination: &x.slackChannel,
		},
	}
}

func (x Notify) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("slack-bot-token.len", len(x.slackBotToken)),
		slog.String("slack-channel", x.slackChannel),
	)
}

// IsConfigured checks if notifications are configured
func (x *Notify) IsConfigured() bool {
	return x.slackBotToken != "" && x.slackChannel != ""
}

// Configure creates a notifier, or nil when not configured
func (x *Notify) Configure() (notify.Service, error) {
	if !x.IsConfigured() {
		return nil, nil
	}
	return notify.New(types.Secret(x.slackBotToken), x.slackChannel)
}
