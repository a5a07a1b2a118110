package pdfs

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // decoder
	_ "image/jpeg" // decoder
	"image/png"
	"math"
	"strings"
	"unicode"

	_ "golang.org/x/image/bmp"  // decoder
	_ "golang.org/x/image/webp" // decoder
)

// naturalDPI maps pixels to mm when fitting; images are never drawn larger than this
const naturalDPI = 96.0

// ImageBlock is a raster image centred in a BoxW x BoxH footprint
type ImageBlock struct {
	data  []byte
	kind  string // PNG or JPG
	pxW   int
	pxH   int
	BoxW  float64
	BoxH  float64
	DrawW float64
	DrawH float64
	Align Align // horizontal placement inside the allocated width
}

func (b *ImageBlock) Kind() string { return b.kind }

func (b *ImageBlock) measure(_ *engine, _ float64) float64 { return b.BoxH }

func (b *ImageBlock) draw(e *engine, x, y, w, _ float64) {
	bx := x
	switch b.Align {
	case AlignLeft:
	case AlignRight:
		bx = x + w - b.BoxW
	default:
		bx = x + (w-b.BoxW)/2
	}
	e.image(b, bx+(b.BoxW-b.DrawW)/2, y+(b.BoxH-b.DrawH)/2, b.DrawW, b.DrawH)
}

// DecodeDataURI strips an optional "data:...;base64," prefix and decodes the payload
func DecodeDataURI(encoded string) ([]byte, error) {
	s := strings.TrimSpace(encoded)
	if i := strings.Index(s, "base64,"); i >= 0 {
		s = s[i+len("base64,"):]
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	if err != nil {
		return nil, &ImageDecodeError{Stage: "base64", Err: err}
	}
	if len(raw) == 0 {
		return nil, &ImageDecodeError{Stage: "base64", Err: ErrNoImage}
	}
	return raw, nil
}

// LoadImage decodes png, jpeg, gif, webp or bmp bytes.
// JPEG is embedded as-is; everything else is re-encoded as 8-bit PNG.
func LoadImage(raw []byte) (*ImageBlock, error) {
	if len(raw) == 0 {
		return nil, &ImageDecodeError{Stage: "decode", Err: ErrNoImage}
	}
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, &ImageDecodeError{Stage: "decode", Err: err}
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, &ImageDecodeError{Stage: "decode", Err: fmt.Errorf("empty %s image", format)}
	}
	out := &ImageBlock{pxW: bounds.Dx(), pxH: bounds.Dy()}
	if format == "jpeg" {
		out.data, out.kind = raw, "JPG"
		return out, nil
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, nrgba); err != nil {
		return nil, &ImageDecodeError{Stage: "encode", Err: err}
	}
	out.data, out.kind = buf.Bytes(), "PNG"
	return out, nil
}

// Fit scales a pxW x pxH image into maxW x maxH mm keeping its aspect ratio.
// The result never exceeds the image's natural size at 96 dpi.
func Fit(pxW, pxH int, maxW, maxH float64) (w, h float64) {
	if pxW <= 0 || pxH <= 0 {
		return 0, 0
	}
	nw := float64(pxW) * 25.4 / naturalDPI
	nh := float64(pxH) * 25.4 / naturalDPI
	scale := math.Min(1, math.Min(maxW/nw, maxH/nh))
	return nw * scale, nh * scale
}

// EmbedImage turns a base64 payload into an ImageBlock of footprint maxW x maxH.
// An empty payload yields a Blank of the same footprint and no error.
// A bad payload yields the Blank and an *ImageDecodeError for the caller to log.
func EmbedImage(encoded string, maxW, maxH float64) (Block, error) {
	if strings.TrimSpace(encoded) == "" {
		return &Blank{W: maxW, H: maxH}, nil
	}
	raw, err := DecodeDataURI(encoded)
	if err != nil {
		return &Blank{W: maxW, H: maxH}, err
	}
	return EmbedImageBytes(raw, maxW, maxH)
}

// EmbedImageBytes is EmbedImage for raw file bytes
func EmbedImageBytes(raw []byte, maxW, maxH float64) (Block, error) {
	if len(raw) == 0 {
		return &Blank{W: maxW, H: maxH}, nil
	}
	img, err := LoadImage(raw)
	if err != nil {
		return &Blank{W: maxW, H: maxH}, err
	}
	img.BoxW, img.BoxH = maxW, maxH
	img.DrawW, img.DrawH = Fit(img.pxW, img.pxH, maxW, maxH)
	return img, nil
}
