// Package ses delivers invoice emails through AWS SESv2. Messages with a
// PDF attachment are sent as raw MIME because the simple SES content type
// has no attachment support.
package ses

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"factuur/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendInvoiceEmail(ctx context.Context, msg port.InvoiceEmail) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	if msg.Attachment == nil {
		subject := msg.Subject
		body := msg.Body
		_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
			FromEmailAddress: &from,
			Destination: &types.Destination{
				ToAddresses: []string{msg.To},
			},
			Content: &types.EmailContent{
				Simple: &types.Message{
					Subject: &types.Content{Data: &subject},
					Body: &types.Body{
						Text: &types.Content{Data: &body},
					},
				},
			},
		})
		if err != nil {
			return fmt.Errorf("SES SendEmail: %w", err)
		}
		return nil
	}

	raw, err := buildRawMessage(from, msg)
	if err != nil {
		return fmt.Errorf("building raw email: %w", err)
	}

	_, err = s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail raw: %w", err)
	}
	return nil
}

// buildRawMessage assembles a multipart/mixed MIME message with a plain-text
// body part and one base64-encoded attachment part.
func buildRawMessage(from string, msg port.InvoiceEmail) ([]byte, error) {
	const boundary = "factuur-mime-boundary"

	if strings.Contains(msg.Attachment.Filename, "\"") {
		return nil, fmt.Errorf("attachment filename contains a quote: %q", msg.Attachment.Filename)
	}

	var b bytes.Buffer
	write := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format, args...)
	}

	write("From: %s\r\n", from)
	write("To: %s\r\n", msg.To)
	if msg.ReplyTo != "" {
		write("Reply-To: %s\r\n", msg.ReplyTo)
	}
	write("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/mixed; boundary=\"%s\"\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=utf-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n")
	write("\r\n")
	write("%s\r\n", msg.Body)

	att := msg.Attachment
	contentType := att.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	write("--%s\r\n", boundary)
	write("Content-Type: %s\r\n", contentType)
	write("Content-Transfer-Encoding: base64\r\n")
	write("Content-Disposition: attachment; filename=\"%s\"\r\n", att.Filename)
	write("\r\n")

	encoded := base64.StdEncoding.EncodeToString(att.Data)
	// RFC 2045 caps encoded lines at 76 characters.
	for len(encoded) > 0 {
		n := 76
		if len(encoded) < n {
			n = len(encoded)
		}
		write("%s\r\n", encoded[:n])
		encoded = encoded[n:]
	}

	write("--%s--\r\n", boundary)
	return b.Bytes(), nil
}
