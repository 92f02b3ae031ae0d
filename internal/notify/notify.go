// Package notify posts run summaries to chat.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"
)

// Notifier defines the interface for sending notifications.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(ctx context.Context, message string) error { return nil }

// SlackNotifier posts messages to a channel with a bot token.
type SlackNotifier struct {
	client    *slack.Client
	channelID string
}

// NewSlackNotifier creates a SlackNotifier. Extra options are passed through
// to the Slack client.
func NewSlackNotifier(token, channelID string, opts ...slack.Option) *SlackNotifier {
	return &SlackNotifier{
		client:    slack.New(token, opts...),
		channelID: channelID,
	}
}

// Notify posts message to the configured channel.
func (s *SlackNotifier) Notify(ctx context.Context, message string) error {
	if s.channelID == "" {
		return fmt.Errorf("slack channel is not configured")
	}
	_, ts, err := s.client.PostMessageContext(ctx, s.channelID, slack.MsgOptionText(message, false))
	if err != nil {
		return fmt.Errorf("failed to send slack notification: %w", err)
	}
	slog.Debug("slack notification sent", "channel", s.channelID, "ts", ts)
	return nil
}

// New returns a SlackNotifier when a token is configured and Nop otherwise.
func New(token, channelID string) Notifier {
	if token == "" {
		return Nop{}
	}
	return NewSlackNotifier(token, channelID)
}

// Send delivers message and logs a failure instead of returning it, so a
// chat outage never fails a run that already produced its output.
func Send(ctx context.Context, n Notifier, message string) {
	if err := n.Notify(ctx, message); err != nil {
		slog.Warn("notification failed", "error", err)
	}
}
