package invoice

import (
	"time"

	"factuur/internal/domain"
)

// PaymentTerm maps a term code to a display label and a calendar-day
// offset. Terms are static configuration; nothing creates or destroys
// them at runtime.
type PaymentTerm struct {
	Code  domain.PaymentTermCode `json:"code"`
	Label string                 `json:"label"`
	Days  int                    `json:"days"`
}

// terms is the closed set, in the order the form presents them.
var terms = []PaymentTerm{
	{Code: domain.PaymentTerm14Days, Label: "14 days", Days: 14},
	{Code: domain.PaymentTerm30Days, Label: "30 days", Days: 30},
	{Code: domain.PaymentTermNet15, Label: "Net 15", Days: 15},
	{Code: domain.PaymentTermNet60, Label: "Net 60", Days: 60},
}

// Terms returns the payment terms in display order.
func Terms() []PaymentTerm {
	out := make([]PaymentTerm, len(terms))
	copy(out, terms)
	return out
}

// TermByCode looks up a payment term by its code.
func TermByCode(code domain.PaymentTermCode) (PaymentTerm, bool) {
	for _, t := range terms {
		if t.Code == code {
			return t, true
		}
	}
	return PaymentTerm{}, false
}

// CalculateDueDate returns the issue date plus the term's day offset in
// calendar days. An unknown or missing term code falls back to the current
// wall-clock date instead of returning an error; the never-block-the-user
// policy of the original form is a documented contract here, not a bug to
// fix.
func CalculateDueDate(issueDate time.Time, code domain.PaymentTermCode) time.Time {
	term, ok := TermByCode(code)
	if !ok {
		return time.Now()
	}
	return issueDate.AddDate(0, 0, term.Days)
}
