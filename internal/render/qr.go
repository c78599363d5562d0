package render

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"factuur/internal/domain"
)

// PaymentInfo is the data a payment QR payload is built from.
type PaymentInfo struct {
	IBAN            string
	BeneficiaryName string
	Amount          float64
	Currency        domain.Currency
	// Reference is the remittance text, normally the invoice number.
	Reference string
}

// PayloadBuilder turns payment info into the string a banking app scans.
// The payload format is regional; callers targeting another scheme plug in
// their own builder.
type PayloadBuilder interface {
	Build(info PaymentInfo) (string, error)
}

// EPCPayloadBuilder emits the EPC069-12 "BCD" quick-response payload used
// for SEPA credit transfers.
type EPCPayloadBuilder struct {
	// BIC is optional under version 002 and usually left empty.
	BIC string
}

// Build assembles the eleven-line EPC payload. The IBAN is normalized by
// stripping spaces; everything else is passed through as provided.
func (b EPCPayloadBuilder) Build(info PaymentInfo) (string, error) {
	iban := strings.ReplaceAll(info.IBAN, " ", "")
	if iban == "" {
		return "", fmt.Errorf("epc payload: IBAN is required")
	}

	lines := []string{
		"BCD",
		"002",
		"1",
		"SCT",
		b.BIC,
		info.BeneficiaryName,
		iban,
		fmt.Sprintf("%s%.2f", info.Currency, info.Amount),
		"", // purpose code
		"", // structured remittance
		info.Reference,
	}
	return strings.Join(lines, "\n"), nil
}

// qrPixels is the square pixel size of the generated QR image.
const qrPixels = 256

// encodeQR renders the payload as a PNG. Encoding failure is recoverable:
// the caller skips the QR block and keeps rendering.
func encodeQR(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, qrPixels)
	if err != nil {
		return nil, fmt.Errorf("encoding payment qr: %w", err)
	}
	return png, nil
}
