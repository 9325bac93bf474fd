package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/mrm-lab/modelrisk/pkg/domain/types"
)

type slackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

type client struct {
	api     slackAPI
	channel string
}

// Option is a functional option for client configuration
type Option func(*client)

// WithAPI replaces the Slack API client, mainly for tests
func WithAPI(api slackAPI) Option {
	return func(c *client) {
		c.api = api
	}
}

// New creates a Slack notifier posting to the given channel
func New(token types.Secret, channel string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channel == "" {
		return nil, goerr.New("Slack channel is required")
	}

	c := &client{
		api:     slack.New(token.Unwrap()),
		channel: channel,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *client) NotifyTierChange(ctx context.Context, modelID types.ModelID, previous, current types.Tier, actor string) error {
	prev := previous.String()
	if prev == "" {
		prev = "(none)"
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "Model tier changed", false, false)),
		slack.NewSectionBlock(nil, []*slack.TextBlockObject{
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Model:*\n%s", modelID), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Changed by:*\n%s", actor), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Previous tier:*\n%s", prev), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*New tier:*\n%s", current), false, false),
		}, nil),
	}

	if _, _, err := c.api.PostMessageContext(ctx, c.channel, slack.MsgOptionBlocks(blocks...)); err != nil {
		return goerr.Wrap(err, "failed to post tier change notification",
			goerr.V("model_id", modelID),
			goerr.V("channel", c.channel))
	}

	return nil
}
