package email

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/redmonkez12/go-auth-otp/internal/logging"
)

const (
	WelcomeSubject       = "Welcome to New member 🎉"
	VerificationSubject  = "Account Verification OTP"
	PasswordResetSubject = "Password Reset OTP"
)

var (
	welcomeTemplate = template.Must(template.New("welcome").Parse(
		`Welcome to our website. Your account has been created with email id: {{.Email}}`))

	verificationTemplate = template.Must(template.New("verification").Parse(
		`Your OTP is {{.OTP}}. Verify your account using this OTP. It expires in {{.ExpiresIn}}.`))

	passwordResetTemplate = template.Must(template.New("passwordReset").Parse(
		`Your OTP for resetting your password is {{.OTP}}. Use this OTP to proceed with resetting your password. It expires in {{.ExpiresIn}}.`))
)

type templateData struct {
	Email     string
	OTP       string
	ExpiresIn string
}

// Service composes account emails and hands them to a Sender
type Service struct {
	sender       Sender
	fromEmail    string
	verifyOTPTTL time.Duration
	resetOTPTTL  time.Duration
}

func NewService(sender Sender, fromEmail string, verifyOTPTTL, resetOTPTTL time.Duration) *Service {
	return &Service{
		sender:       sender,
		fromEmail:    fromEmail,
		verifyOTPTTL: verifyOTPTTL,
		resetOTPTTL:  resetOTPTTL,
	}
}

// SendWelcomeEmail greets a freshly registered account
func (s *Service) SendWelcomeEmail(ctx context.Context, toEmail string) error {
	return s.send(ctx, toEmail, WelcomeSubject, welcomeTemplate, templateData{Email: toEmail})
}

// SendVerificationOTP delivers the account verification code
func (s *Service) SendVerificationOTP(ctx context.Context, toEmail, otp string) error {
	return s.send(ctx, toEmail, VerificationSubject, verificationTemplate, templateData{
		Email:     toEmail,
		OTP:       otp,
		ExpiresIn: humanDuration(s.verifyOTPTTL),
	})
}

// SendPasswordResetOTP delivers the password reset code
func (s *Service) SendPasswordResetOTP(ctx context.Context, toEmail, otp string) error {
	return s.send(ctx, toEmail, PasswordResetSubject, passwordResetTemplate, templateData{
		Email:     toEmail,
		OTP:       otp,
		ExpiresIn: humanDuration(s.resetOTPTTL),
	})
}

func (s *Service) send(ctx context.Context, toEmail, subject string, tmpl *template.Template, data templateData) error {
	logger := logging.GetLoggerFromContext(ctx)

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		logger.Error("failed to render email template", "template", tmpl.Name(), "error", err)
		return fmt.Errorf("render template: %w", err)
	}

	msg := Message{
		From:    s.fromEmail,
		To:      toEmail,
		Subject: subject,
		Text:    buf.String(),
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		logger.Error("failed to send email", "template", tmpl.Name(), "email", toEmail, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("email sent", "template", tmpl.Name(), "email", toEmail)
	return nil
}

// humanDuration renders whole hours or minutes, e.g. "24 hours", "15 minutes"
func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute:
		return plural(int(d/time.Minute), "minute")
	default:
		return plural(int(d/time.Second), "second")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
