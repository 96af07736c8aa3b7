package email

import (
	"fmt"

	"constru_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// NewProviderFromConfig picks SMTP when a relay is configured, and the
// logging noop provider otherwise.
func NewProviderFromConfig(cfg *config.Config) Provider {
	provider, err := NewSMTPProvider(cfg)
	if err != nil {
		return NoopProvider{}
	}
	return provider
}

// SMTPProvider delivers mail through an SMTP relay via gomail.
type SMTPProvider struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

// NewSMTPProvider builds a provider from the email section of the config.
func NewSMTPProvider(cfg *config.Config) (*SMTPProvider, error) {
	if cfg.Email.SMTPHost == "" {
		return nil, fmt.Errorf("email: smtp_host is not configured")
	}

	dialer := gomail.NewDialer(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUsername,
		cfg.Email.SMTPPassword,
	)

	return &SMTPProvider{
		dialer:    dialer,
		fromEmail: cfg.Email.FromEmail,
		fromName:  cfg.Email.FromName,
	}, nil
}

func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("email: no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.fromEmail, p.fromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Body)
	if email.HTMLBody != "" {
		m.AddAlternative("text/html", email.HTMLBody)
	}

	return p.dialer.DialAndSend(m)
}

func (p *SMTPProvider) SendVerification(to, token string) error {
	return p.Send(&Email{
		To:      []string{to},
		Subject: "Verify your CONSTRU account",
		Body: fmt.Sprintf(
			"Welcome to CONSTRU!\n\nConfirm your email address by opening:\n%s\n\nIf you did not sign up, ignore this message.",
			verificationURL(token),
		),
	})
}

func (p *SMTPProvider) SendPasswordReset(to, token string) error {
	return p.Send(&Email{
		To:      []string{to},
		Subject: "Reset your CONSTRU password",
		Body: fmt.Sprintf(
			"A password reset was requested for your account.\n\nReset it here:\n%s\n\nThe link expires in 1 hour. If you did not request a reset, ignore this message.",
			resetURL(token),
		),
	})
}

func (p *SMTPProvider) SendInvoiceIssued(to, invoiceNumber string, amount float64) error {
	return p.Send(&Email{
		To:      []string{to},
		Subject: fmt.Sprintf("Invoice %s issued", invoiceNumber),
		Body: fmt.Sprintf(
			"Your invoice %s for %.2f has been issued.\nYou can review it in your CONSTRU account.",
			invoiceNumber, amount,
		),
	})
}

func (p *SMTPProvider) Close() error {
	// gomail dials per message; nothing is held open.
	return nil
}

func verificationURL(token string) string {
	return "https://app.constru.io/verify?token=" + token
}

func resetURL(token string) string {
	return "https://app.constru.io/reset-password?token=" + token
}
