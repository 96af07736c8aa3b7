package email

// Email is one outgoing message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// Provider is the outgoing-mail port used by services.
type Provider interface {
	// Send delivers one message.
	Send(email *Email) error

	// SendVerification delivers the account-verification email.
	SendVerification(to, token string) error

	// SendPasswordReset delivers the reset-link email.
	SendPasswordReset(to, token string) error

	// SendInvoiceIssued notifies the customer that an invoice was issued.
	SendInvoiceIssued(to, invoiceNumber string, amount float64) error

	// Close releases provider resources.
	Close() error
}
