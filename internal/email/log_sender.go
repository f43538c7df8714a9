package email

import (
	"context"

	"github.com/redmonkez12/go-auth-otp/internal/logging"
)

// LogSender writes messages to the log instead of delivering them.
// Development only: OTP codes end up in the log output.
type LogSender struct {
	logger *logging.Logger
}

func NewLogSender(logger *logging.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("email not delivered (log driver)",
		"to", msg.To,
		"subject", msg.Subject,
		"text", msg.Text,
	)
	return nil
}
