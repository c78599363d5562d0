package render

import (
	"fmt"

	"factuur/internal/domain"
	"factuur/internal/invoice"
)

// Labels carries every user-facing string the renderer emits, pre-resolved
// by the caller. The renderer has no ambient locale state: handing it a
// different Labels value is all it takes to render in another language.
type Labels struct {
	Title string

	// Identity field prefixes.
	CoC  string
	VAT  string
	IBAN string

	// Invoice metadata labels.
	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
	PaymentTerms  string

	// Table column headers.
	ColDescription string
	ColQuantity    string
	ColPrice       string
	ColTotal       string

	// Totals block.
	Subtotal  string
	VATFormat string // fmt verb for the VAT percentage, e.g. "BTW %.0f%%"
	Total     string

	Notes     string
	QRCaption string

	// FooterFormat takes the payment-term label.
	FooterFormat string

	// Filename parts: <prefix>-<number-or-placeholder>.pdf
	FilenamePrefix string
	Unnumbered     string

	// DateFormat is a Go reference layout for dates on the document.
	DateFormat string

	// TermLabels overrides the default payment-term display labels.
	TermLabels map[domain.PaymentTermCode]string
}

// DutchLabels returns the default Dutch label set.
func DutchLabels() Labels {
	return Labels{
		Title:          "FACTUUR",
		CoC:            "KvK",
		VAT:            "BTW",
		IBAN:           "IBAN",
		InvoiceNumber:  "Factuurnummer",
		InvoiceDate:    "Factuurdatum",
		DueDate:        "Vervaldatum",
		PaymentTerms:   "Betalingstermijn",
		ColDescription: "Omschrijving",
		ColQuantity:    "Aantal",
		ColPrice:       "Prijs",
		ColTotal:       "Totaal",
		Subtotal:       "Subtotaal",
		VATFormat:      "BTW %.0f%%",
		Total:          "Totaal",
		Notes:          "Opmerkingen",
		QRCaption:      "Scan om te betalen",
		FooterFormat:   "Gelieve te betalen binnen %s na factuurdatum.",
		FilenamePrefix: "factuur",
		Unnumbered:     "ongenummerd",
		DateFormat:     "02-01-2006",
		TermLabels: map[domain.PaymentTermCode]string{
			domain.PaymentTerm14Days: "14 dagen",
			domain.PaymentTerm30Days: "30 dagen",
			domain.PaymentTermNet15:  "15 dagen netto",
			domain.PaymentTermNet60:  "60 dagen netto",
		},
	}
}

// EnglishLabels returns the English label set.
func EnglishLabels() Labels {
	return Labels{
		Title:          "INVOICE",
		CoC:            "CoC",
		VAT:            "VAT",
		IBAN:           "IBAN",
		InvoiceNumber:  "Invoice number",
		InvoiceDate:    "Invoice date",
		DueDate:        "Due date",
		PaymentTerms:   "Payment terms",
		ColDescription: "Description",
		ColQuantity:    "Qty",
		ColPrice:       "Price",
		ColTotal:       "Total",
		Subtotal:       "Subtotal",
		VATFormat:      "VAT %.0f%%",
		Total:          "Total",
		Notes:          "Notes",
		QRCaption:      "Scan to pay",
		FooterFormat:   "Payment is due within %s of the invoice date.",
		FilenamePrefix: "invoice",
		Unnumbered:     "unnumbered",
		DateFormat:     "02-01-2006",
	}
}

// LabelsForLanguage resolves a language tag to a builtin label set with an
// nl→en fallback chain, mirroring the original form's i18n configuration.
func LabelsForLanguage(lang string) Labels {
	switch lang {
	case "nl", "nl-NL":
		return DutchLabels()
	default:
		return EnglishLabels()
	}
}

// termLabel resolves the display label for a payment-term code: explicit
// override first, then the term table, then the raw code (unknown codes
// are printed as-is, not rejected).
func (l Labels) termLabel(code domain.PaymentTermCode) string {
	if s, ok := l.TermLabels[code]; ok {
		return s
	}
	if term, ok := invoice.TermByCode(code); ok {
		return term.Label
	}
	return string(code)
}

// vatLabel formats the VAT-row label for the given rate.
func (l Labels) vatLabel(rate float64) string {
	return fmt.Sprintf(l.VATFormat, rate)
}
