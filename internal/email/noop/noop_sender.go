// Package noop provides an EmailSender that only logs, for development
// environments without SES credentials.
package noop

import (
	"context"
	"log"

	"factuur/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that logs instead of sending.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (n *noopSender) SendInvoiceEmail(_ context.Context, msg port.InvoiceEmail) error {
	attachment := "none"
	if msg.Attachment != nil {
		attachment = msg.Attachment.Filename
	}
	log.Printf("[noop-email] to=%s subject=%q attachment=%s", msg.To, msg.Subject, attachment)
	return nil
}
