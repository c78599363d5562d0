package render

import (
	"bytes"
	"fmt"
	"image"

	// Codecs for the logo formats the document embedder supports.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// logoImage is a validated, decodable logo ready for embedding.
type logoImage struct {
	data   []byte
	format string // "png", "jpeg" or "gif"
	width  int
	height int
}

// decodeLogo fully decodes the uploaded image to prove it is embeddable
// and to learn its pixel dimensions. A failure here is recoverable: the
// renderer drops the logo and continues.
func decodeLogo(data []byte) (*logoImage, error) {
	if len(data) == 0 {
		return nil, nil
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding logo image: %w", err)
	}
	switch format {
	case "png", "jpeg", "gif":
	default:
		return nil, fmt.Errorf("unsupported logo format %q", format)
	}
	bounds := img.Bounds()
	return &logoImage{
		data:   data,
		format: format,
		width:  bounds.Dx(),
		height: bounds.Dy(),
	}, nil
}

// fit scales the logo to the given box preserving aspect ratio.
func (l *logoImage) fit(boxW, boxH float64) (w, h float64) {
	if l.width <= 0 || l.height <= 0 {
		return boxW, boxH
	}
	ratio := float64(l.width) / float64(l.height)
	w, h = boxW, boxW/ratio
	if h > boxH {
		h = boxH
		w = boxH * ratio
	}
	return w, h
}
