// Package render produces the printable invoice document: an A4 portrait
// PDF laid out with a single-pass cursor algorithm parametrized by a
// template configuration. Rendering is deterministic: identical inputs
// produce identical bytes, and the renderer never reads the wall clock or
// mutates its input record.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"factuur/internal/domain"
	"factuur/internal/invoice"
)

// Options selects the optional inputs of a render call.
type Options struct {
	// Logo is the raw uploaded image (png/jpeg/gif); nil leaves the logo
	// slot empty. An undecodable logo is skipped with a warning, never a
	// failed render.
	Logo []byte

	// Template picks the visual template; unknown ids fall back to classic.
	Template domain.TemplateID

	// Labels carries pre-resolved display strings; nil uses the Dutch set.
	Labels *Labels

	// QRBuilder overrides the payment-QR payload format; nil uses EPC.
	QRBuilder PayloadBuilder

	// SkipQR suppresses the payment QR block even when an IBAN is present.
	SkipQR bool
}

// Document is the rendered artifact. The renderer keeps no reference to
// it after returning; it is owned by the caller.
type Document struct {
	Bytes    []byte
	Filename string

	// Warnings lists recoverable asset failures (logo, QR) that were
	// skipped; the document itself is always complete.
	Warnings []string
}

// Base64 returns the document encoded for use as an email attachment.
func (d *Document) Base64() string {
	return base64.StdEncoding.EncodeToString(d.Bytes)
}

// Render lays out and draws the invoice. It recomputes totals and the due
// date from the record (derived values are never trusted from storage)
// and returns the finished PDF with a suggested download filename.
func Render(inv *domain.InvoiceRecord, opts Options) (*Document, error) {
	tpl := TemplateByID(opts.Template)
	labels := DutchLabels()
	if opts.Labels != nil {
		labels = *opts.Labels
	}

	var warnings []string

	logo, err := decodeLogo(opts.Logo)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("logo skipped: %v", err))
		logo = nil
	}

	totals := invoice.CalculateTotals(inv.LineItems, inv.VATRate)
	dueDate := invoice.CalculateDueDate(inv.IssueDate, inv.PaymentTerm)

	var qrPNG []byte
	if !opts.SkipQR && strings.TrimSpace(inv.IBAN) != "" {
		builder := opts.QRBuilder
		if builder == nil {
			builder = EPCPayloadBuilder{}
		}
		payload, qrErr := builder.Build(PaymentInfo{
			IBAN:            inv.IBAN,
			BeneficiaryName: inv.SellerName,
			Amount:          totals.Total,
			Currency:        inv.Currency,
			Reference:       inv.InvoiceNumber,
		})
		if qrErr != nil {
			warnings = append(warnings, fmt.Sprintf("payment qr skipped: %v", qrErr))
		} else if qrPNG, qrErr = encodeQR(payload); qrErr != nil {
			warnings = append(warnings, fmt.Sprintf("payment qr skipped: %v", qrErr))
			qrPNG = nil
		}
	}

	plan := buildPlan(inv, totals, dueDate, tpl, labels, logo, qrPNG)

	pdfBytes, err := drawPlan(plan, inv)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return &Document{
		Bytes:    pdfBytes,
		Filename: buildFilename(labels, inv.InvoiceNumber),
		Warnings: warnings,
	}, nil
}

// buildFilename derives the suggested download name:
// <prefix>-<number-or-placeholder>.pdf
func buildFilename(labels Labels, invoiceNumber string) string {
	number := strings.TrimSpace(invoiceNumber)
	if number == "" {
		number = labels.Unnumbered
	}
	return fmt.Sprintf("%s-%s.pdf", labels.FilenamePrefix, number)
}

// drawPlan replays a layout plan into gofpdf. The PDF creation and
// modification dates are pinned to the issue date so output bytes carry
// no wall-clock state.
func drawPlan(plan *layoutPlan, inv *domain.InvoiceRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(inv.IssueDate)
	pdf.SetModificationDate(inv.IssueDate)
	pdf.SetTitle(tr(buildTitle(inv)), true)

	for page := 1; page <= plan.PageCount; page++ {
		pdf.AddPage()

		for _, op := range plan.Rects {
			if op.Page != page {
				continue
			}
			pdf.SetFillColor(op.Color.R, op.Color.G, op.Color.B)
			pdf.Rect(op.X, op.Y, op.W, op.H, "F")
		}

		for _, op := range plan.Rules {
			if op.Page != page {
				continue
			}
			pdf.SetDrawColor(op.Color.R, op.Color.G, op.Color.B)
			pdf.SetLineWidth(op.Weight)
			pdf.Line(op.X1, op.Y, op.X2, op.Y)
		}

		for _, op := range plan.Images {
			if op.Page != page {
				continue
			}
			imgOpts := gofpdf.ImageOptions{ImageType: op.Format}
			pdf.RegisterImageOptionsReader(op.Name, imgOpts, bytes.NewReader(op.Data))
			pdf.ImageOptions(op.Name, op.X, op.Y, op.W, op.H, false, imgOpts, 0, "")
		}

		for _, op := range plan.Texts {
			if op.Page != page {
				continue
			}
			pdf.SetFont("Helvetica", op.Style, op.Size)
			pdf.SetTextColor(op.Color.R, op.Color.G, op.Color.B)
			s := tr(op.Text)

			if op.Width > 0 {
				pdf.SetXY(op.X, op.Y)
				pdf.MultiCell(op.Width, 5, s, "", "L", false)
				continue
			}

			switch op.Align {
			case "R":
				pdf.Text(op.X-pdf.GetStringWidth(s), op.Y, s)
			case "C":
				pdf.Text(op.X-pdf.GetStringWidth(s)/2, op.Y, s)
			default:
				pdf.Text(op.X, op.Y, s)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func buildTitle(inv *domain.InvoiceRecord) string {
	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		return "Invoice"
	}
	return "Invoice " + inv.InvoiceNumber
}
