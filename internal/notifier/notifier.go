package notifier

import (
	"context"
	"log"
)

// Notifier delivers a completion message to an operator channel.
type Notifier interface {
	Send(recipient, text string) error
	SendWithRetry(ctx context.Context, recipient, text string, maxRetries int) error
}

// LogNotifier writes notifications to the process log. It is the fallback
// when no Telegram bot token is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (l *LogNotifier) Send(recipient, text string) error {
	log.Printf("[INFO] notification for %s: %s", recipient, text)
	return nil
}

func (l *LogNotifier) SendWithRetry(_ context.Context, recipient, text string, _ int) error {
	return l.Send(recipient, text)
}
