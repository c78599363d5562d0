package render

import "factuur/internal/domain"

// RGB is a plain 8-bit color triple.
type RGB struct {
	R, G, B int
}

// LogoSlot says where the uploaded logo goes relative to the title.
type LogoSlot int

const (
	// LogoRightOfTitle puts the logo in a right-aligned header slot.
	LogoRightOfTitle LogoSlot = iota
	// LogoCenteredBelowTitle centers the logo beneath the title.
	LogoCenteredBelowTitle
	// LogoLeftBelowTitle left-aligns the logo beneath the title.
	LogoLeftBelowTitle
)

// Template is a data-only configuration record consumed by the single
// layout routine. Templates never fork the algorithm, only its parameters.
type Template struct {
	ID          domain.TemplateID
	Name        string
	Description string

	Accent        RGB
	TitleSize     float64
	TitleCentered bool
	LogoSlot      LogoSlot

	// Separator rule styling.
	RuleColor RGB
	RuleWidth float64

	// HeaderFill shades the table header row when true.
	HeaderFill     bool
	HeaderFillRGB  RGB
	TableHeaderRGB RGB
}

var templates = []Template{
	{
		ID:          domain.TemplateClassic,
		Name:        "Classic",
		Description: "Traditional professional layout",
		Accent:      RGB{R: 17, G: 24, B: 39},
		TitleSize:   20,
		LogoSlot:    LogoRightOfTitle,
		RuleColor:   RGB{R: 200, G: 200, B: 200},
		RuleWidth:   0.1,
		TableHeaderRGB: RGB{R: 17, G: 24, B: 39},
	},
	{
		ID:            domain.TemplateModern,
		Name:          "Modern",
		Description:   "Clean and minimalist design",
		Accent:        RGB{R: 2, G: 62, B: 86},
		TitleSize:     22,
		TitleCentered: true,
		LogoSlot:      LogoCenteredBelowTitle,
		RuleColor:     RGB{R: 2, G: 62, B: 86},
		RuleWidth:     0.3,
		HeaderFill:    true,
		HeaderFillRGB: RGB{R: 236, G: 242, B: 246},
		TableHeaderRGB: RGB{R: 2, G: 62, B: 86},
	},
	{
		ID:            domain.TemplateCreative,
		Name:          "Creative",
		Description:   "Bold accents with a centered header",
		Accent:        RGB{R: 180, G: 83, B: 9},
		TitleSize:     24,
		TitleCentered: true,
		LogoSlot:      LogoLeftBelowTitle,
		RuleColor:     RGB{R: 180, G: 83, B: 9},
		RuleWidth:     0.5,
		TableHeaderRGB: RGB{R: 180, G: 83, B: 9},
	},
}

// Templates returns the available templates in display order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// TemplateByID returns the template with the given id, falling back to
// classic for unknown ids so a render request never fails on template
// choice.
func TemplateByID(id domain.TemplateID) Template {
	for _, t := range templates {
		if t.ID == id {
			return t
		}
	}
	return templates[0]
}
