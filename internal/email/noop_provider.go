package email

import "constru_backend/internal/logger"

// NoopProvider logs instead of sending. Used in development and tests when
// SMTP is not configured.
type NoopProvider struct{}

func (NoopProvider) Send(email *Email) error {
	logger.Info("email suppressed (noop provider)", "to", email.To, "subject", email.Subject)
	return nil
}

func (NoopProvider) SendVerification(to, token string) error {
	logger.Info("verification email suppressed (noop provider)", "to", to)
	return nil
}

func (NoopProvider) SendPasswordReset(to, token string) error {
	logger.Info("password reset email suppressed (noop provider)", "to", to)
	return nil
}

func (NoopProvider) SendInvoiceIssued(to, invoiceNumber string, amount float64) error {
	logger.Info("invoice email suppressed (noop provider)", "to", to, "invoice", invoiceNumber)
	return nil
}

func (NoopProvider) Close() error { return nil }
