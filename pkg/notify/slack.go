package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// SlackNotifier posts Case Engine events to one configured channel via an
// incoming webhook, matching internal/config.NotifyConfig's
// webhook-URL-from-env shape rather than a bot token.
type SlackNotifier struct {
	webhookURL string
	channel    string
}

func NewSlackNotifier(webhookURL, channel string) *SlackNotifier {
	return &SlackNotifier{webhookURL: webhookURL, channel: channel}
}

func (n *SlackNotifier) Notify(ctx context.Context, event Event) error {
	text := event.Message
	if text == "" {
		text = fmt.Sprintf("[%s] %s: %d case(s) affected", event.MaintenanceID, event.Type, event.Count)
	}
	msg := &slack.WebhookMessage{Channel: n.channel, Text: text}
	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return fmt.Errorf("posting slack webhook notification: %w", err)
	}
	return nil
}
