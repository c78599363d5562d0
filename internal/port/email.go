package port

import "context"

// EmailAttachment is a file attached to an outgoing email.
type EmailAttachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// InvoiceEmail is an outgoing invoice delivery message.
type InvoiceEmail struct {
	To         string
	ReplyTo    string
	Subject    string
	Body       string
	Attachment *EmailAttachment
}

// EmailSender defines the contract for sending invoice emails.
type EmailSender interface {
	SendInvoiceEmail(ctx context.Context, msg InvoiceEmail) error
}
