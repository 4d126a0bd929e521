package telegram

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Disabled is a no-op notifier used when no bot token is configured. It logs
// the composed messages so a local run still shows what would have been sent.
type Disabled struct{}

func (Disabled) SendText(_ context.Context, text string) error {
	logrus.WithField("text", text).Info("Telegram disabled, dropping message")
	return nil
}

func (Disabled) SendPhoto(_ context.Context, png []byte, caption string) error {
	logrus.WithFields(logrus.Fields{"caption": caption, "bytes": len(png)}).
		Info("Telegram disabled, dropping photo")
	return nil
}
