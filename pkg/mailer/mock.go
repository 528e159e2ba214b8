package mailer

import (
	"context"

	"go.uber.org/zap"
)

// mockMailer - реализация-заглушка, которая пишет в лог вместо реальной
// отправки. Используется в тестах и когда SENDGRID_API_KEY не задан.
type mockMailer struct {
	logger *zap.Logger
}

func NewMockMailer(logger *zap.Logger) Mailer {
	return &mockMailer{logger: logger}
}

func (m *mockMailer) Send(_ context.Context, msg Message) error {
	recipients := make([]string, 0, len(msg.To))
	for _, to := range msg.To {
		recipients = append(recipients, to.Email)
	}
	m.logger.Info("!!! ИМИТАЦИЯ ОТПРАВКИ EMAIL !!!",
		zap.Strings("кому", recipients),
		zap.String("тема", msg.Subject),
		zap.String("текст", msg.Text),
	)
	return nil
}
