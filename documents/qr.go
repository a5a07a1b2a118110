package documents

import (
	"bytes"
	"image/png"
	"strings"

	"github.com/Christosun/flotech-report-system/pdfs"
	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"go.uber.org/zap"
)

// qrPixels is the raster size of the verification mark before fitting
const qrPixels = 256

// verification is the text encoded in a document's QR mark
func (a *Assembler) verification(kind, number, date string) string {
	return strings.Join([]string{a.Company.Name, kind, number, date}, " | ")
}

// qrMark encodes content as a square QR image of side size.
// Encoding failures leave an empty square and are logged.
func (s *sheet) qrMark(content string, size float64) pdfs.Block {
	blank := &pdfs.Blank{W: size, H: size}
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err == nil {
		code, err = barcode.Scale(code, qrPixels, qrPixels)
	}
	var buf bytes.Buffer
	if err == nil {
		err = png.Encode(&buf, code)
	}
	if err != nil {
		s.a.Logger.Warn("qr mark skipped", zap.String("document", s.doc.Title), zap.Error(err))
		return blank
	}
	b, err := pdfs.EmbedImageBytes(buf.Bytes(), size, size)
	if err != nil {
		s.logImageError(err, "qr")
		return blank
	}
	return b
}
