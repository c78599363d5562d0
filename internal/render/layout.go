package render

import (
	"fmt"
	"strconv"
	"time"

	"factuur/internal/domain"
	"factuur/internal/invoice"
)

// Page geometry in millimeters, A4 portrait. Column positions are fixed
// offsets from the page edges, not computed from text width.
const (
	pageWidth  = 210.0
	pageHeight = 297.0

	marginLeft  = 20.0
	marginRight = 20.0
	rightEdge   = pageWidth - marginRight
	topMargin   = 20.0
	centerX     = pageWidth / 2

	lineHeight = 6.0
	rowHeight  = 8.0

	// Right-anchor positions for the numeric table columns.
	colQuantityRight = 115.0
	colPriceRight    = 155.0
	colTotalRight    = rightEdge

	// Left edge of the invoice-metadata column and the totals labels.
	metaLeft        = 120.0
	totalsLabelLeft = 140.0

	// Rows past this cursor position flow onto a fresh page.
	rowLimit = 245.0

	// Bottom blocks (notes, payment QR) anchor here; the footer sits at a
	// fixed offset from the page bottom on every page.
	bottomBlockTop = 232.0
	footerY        = 287.0

	qrSize  = 30.0
	logoBox = 30.0

	bodySize    = 10.0
	smallSize   = 8.0
	captionSize = 8.0
)

// textOp places one string. X is the left edge for align "L", the right
// edge for "R" and the center for "C". Width > 0 marks a wrapped block
// whose X/Y is its top-left corner.
type textOp struct {
	Page  int
	X, Y  float64
	Text  string
	Size  float64
	Style string // "" or "B"
	Align string // "L", "R" or "C"
	Color RGB
	Width float64
}

// ruleOp is a horizontal separator line.
type ruleOp struct {
	Page   int
	X1, Y  float64
	X2     float64
	Color  RGB
	Weight float64
}

// rectOp is a filled rectangle (table-header shading).
type rectOp struct {
	Page       int
	X, Y, W, H float64
	Color      RGB
}

// imageOp places a registered raster image.
type imageOp struct {
	Page       int
	X, Y, W, H float64
	Name       string
	Format     string
	Data       []byte
}

// layoutPlan is the deterministic intermediate form of a document: every
// coordinate and string is decided here, before any PDF library is
// involved, so tests can assert on it directly.
type layoutPlan struct {
	PageCount int
	Texts     []textOp
	Rules     []ruleOp
	Rects     []rectOp
	Images    []imageOp
}

type planBuilder struct {
	plan layoutPlan
	tpl  Template
	page int
}

func newPlanBuilder(tpl Template) *planBuilder {
	return &planBuilder{tpl: tpl, page: 1, plan: layoutPlan{PageCount: 1}}
}

func (b *planBuilder) newPage() {
	b.page++
	b.plan.PageCount = b.page
}

func (b *planBuilder) text(x, y float64, s string, size float64, style, align string, color RGB) {
	b.plan.Texts = append(b.plan.Texts, textOp{
		Page: b.page, X: x, Y: y, Text: s, Size: size, Style: style, Align: align, Color: color,
	})
}

func (b *planBuilder) wrapped(x, y, width float64, s string, size float64, color RGB) {
	b.plan.Texts = append(b.plan.Texts, textOp{
		Page: b.page, X: x, Y: y, Text: s, Size: size, Align: "L", Color: color, Width: width,
	})
}

func (b *planBuilder) rule(y float64) {
	b.plan.Rules = append(b.plan.Rules, ruleOp{
		Page: b.page, X1: marginLeft, Y: y, X2: rightEdge,
		Color: b.tpl.RuleColor, Weight: b.tpl.RuleWidth,
	})
}

var textBlack = RGB{R: 0, G: 0, B: 0}
var footerGray = RGB{R: 120, G: 120, B: 120}

// tableHeader emits the column-label row (with optional shading) and its
// separator rule at baseline y, returning the baseline of the first data
// row beneath it.
func (b *planBuilder) tableHeader(y float64, labels Labels) float64 {
	if b.tpl.HeaderFill {
		b.plan.Rects = append(b.plan.Rects, rectOp{
			Page: b.page, X: marginLeft, Y: y - 5, W: rightEdge - marginLeft, H: 7,
			Color: b.tpl.HeaderFillRGB,
		})
	}
	hc := b.tpl.TableHeaderRGB
	b.text(marginLeft, y, labels.ColDescription, bodySize, "B", "L", hc)
	b.text(colQuantityRight, y, labels.ColQuantity, bodySize, "B", "R", hc)
	b.text(colPriceRight, y, labels.ColPrice, bodySize, "B", "R", hc)
	b.text(colTotalRight, y, labels.ColTotal, bodySize, "B", "R", hc)
	b.rule(y + 3)
	return y + rowHeight + 2
}

// formatQuantity prints a quantity without trailing zeros: 2, 2.5, 0.25.
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// buildPlan runs the single-pass, top-to-bottom cursor layout. It is a
// pure function of its inputs: same record, template, labels and assets
// always yield an identical plan.
func buildPlan(
	inv *domain.InvoiceRecord,
	totals domain.DerivedTotals,
	dueDate time.Time,
	tpl Template,
	labels Labels,
	logo *logoImage,
	qrPNG []byte,
) *layoutPlan {
	b := newPlanBuilder(tpl)

	// Header: title in the accent color; logo slot per template.
	var headerBottom float64
	if tpl.TitleCentered {
		titleBaseline := topMargin + 10
		b.text(centerX, titleBaseline, labels.Title, tpl.TitleSize, "B", "C", tpl.Accent)
		headerBottom = titleBaseline + 8
		if logo != nil {
			w, h := logo.fit(logoBox, logoBox)
			x := marginLeft
			if tpl.LogoSlot == LogoCenteredBelowTitle {
				x = centerX - w/2
			}
			b.plan.Images = append(b.plan.Images, imageOp{
				Page: b.page, X: x, Y: titleBaseline + 6, W: w, H: h,
				Name: "logo", Format: logo.format, Data: logo.data,
			})
			headerBottom = titleBaseline + 6 + h + 6
		}
	} else {
		titleBaseline := topMargin + 8
		b.text(marginLeft, titleBaseline, labels.Title, tpl.TitleSize, "B", "L", tpl.Accent)
		headerBottom = titleBaseline + 8
		if logo != nil {
			w, h := logo.fit(logoBox, logoBox)
			b.plan.Images = append(b.plan.Images, imageOp{
				Page: b.page, X: rightEdge - w, Y: topMargin, W: w, H: h,
				Name: "logo", Format: logo.format, Data: logo.data,
			})
			if bottom := topMargin + h + 6; bottom > headerBottom {
				headerBottom = bottom
			}
		}
	}

	// Two-column identity block: seller identity left, invoice metadata
	// right. Blank fields print as blanks; validation lives in the form.
	identTop := headerBottom + 6
	y := identTop
	leftLines := []struct {
		text string
		bold bool
	}{
		{inv.SenderName, true},
		{inv.SellerName, true},
		{inv.Address, false},
		{labels.CoC + ": " + inv.CoCNumber, false},
		{labels.VAT + ": " + inv.VATNumber, false},
		{labels.IBAN + ": " + inv.IBAN, false},
	}
	for _, line := range leftLines {
		style := ""
		if line.bold {
			style = "B"
		}
		b.text(marginLeft, y, line.text, bodySize, style, "L", textBlack)
		y += lineHeight
	}

	metaLines := []string{
		labels.InvoiceNumber + ": " + inv.InvoiceNumber,
		labels.InvoiceDate + ": " + inv.IssueDate.Format(labels.DateFormat),
		labels.DueDate + ": " + dueDate.Format(labels.DateFormat),
		labels.PaymentTerms + ": " + labels.termLabel(inv.PaymentTerm),
	}
	my := identTop
	for _, line := range metaLines {
		b.text(metaLeft, my, line, bodySize, "", "L", textBlack)
		my += lineHeight
	}

	// Separator, then the line-item table.
	b.rule(y + 2)
	y = b.tableHeader(y+12, labels)

	for _, item := range inv.LineItems {
		if y > rowLimit {
			b.newPage()
			y = b.tableHeader(topMargin+6, labels)
		}
		b.text(marginLeft, y, item.Description, bodySize, "", "L", textBlack)
		b.text(colQuantityRight, y, formatQuantity(item.Quantity), bodySize, "", "R", textBlack)
		b.text(colPriceRight, y, invoice.FormatAmount(item.UnitPrice, inv.Currency), bodySize, "", "R", textBlack)
		b.text(colTotalRight, y, invoice.FormatAmount(invoice.LineTotal(item), inv.Currency), bodySize, "", "R", textBlack)
		y += rowHeight
	}

	// Totals block, right-aligned near the right margin, total emphasized.
	b.rule(y - rowHeight + 4)
	totalsTop := y + 4
	if totalsTop+14 > bottomBlockTop-8 {
		b.newPage()
		totalsTop = topMargin + 6
	}
	ty := totalsTop
	b.text(totalsLabelLeft, ty, labels.Subtotal+":", bodySize, "", "L", textBlack)
	b.text(colTotalRight, ty, invoice.FormatAmount(totals.Subtotal, inv.Currency), bodySize, "", "R", textBlack)
	ty += 7
	b.text(totalsLabelLeft, ty, labels.vatLabel(inv.VATRate)+":", bodySize, "", "L", textBlack)
	b.text(colTotalRight, ty, invoice.FormatAmount(totals.VATAmount, inv.Currency), bodySize, "", "R", textBlack)
	ty += 7
	b.text(totalsLabelLeft, ty, labels.Total+":", bodySize, "B", "L", textBlack)
	b.text(colTotalRight, ty, invoice.FormatAmount(totals.Total, inv.Currency), bodySize, "B", "R", textBlack)

	// Bottom blocks: optional payment QR bottom-right, optional notes
	// bottom-left. The notes block narrows when the QR is present so the
	// two never collide.
	if qrPNG != nil || inv.Notes != "" {
		if ty+7 > bottomBlockTop-6 {
			b.newPage()
		}
	}
	if qrPNG != nil {
		qrX := rightEdge - qrSize
		b.plan.Images = append(b.plan.Images, imageOp{
			Page: b.page, X: qrX, Y: bottomBlockTop, W: qrSize, H: qrSize,
			Name: "payment-qr", Format: "png", Data: qrPNG,
		})
		b.text(qrX+qrSize/2, bottomBlockTop+qrSize+4, labels.QRCaption, captionSize, "", "C", textBlack)
	}
	if inv.Notes != "" {
		notesWidth := rightEdge - marginLeft
		if qrPNG != nil {
			notesWidth = (rightEdge - qrSize - 10) - marginLeft
		}
		b.text(marginLeft, bottomBlockTop+4, labels.Notes+":", bodySize, "B", "L", textBlack)
		b.wrapped(marginLeft, bottomBlockTop+7, notesWidth, inv.Notes, 9, textBlack)
	}

	// Fixed footer boilerplate on every page.
	footer := fmt.Sprintf(labels.FooterFormat, labels.termLabel(inv.PaymentTerm))
	for page := 1; page <= b.plan.PageCount; page++ {
		b.plan.Texts = append(b.plan.Texts, textOp{
			Page: page, X: centerX, Y: footerY, Text: footer,
			Size: smallSize, Align: "C", Color: footerGray,
		})
	}

	return &b.plan
}
