package pdfs

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Renderer turns a Document into PDF bytes.
// Clock pins the creation date so equal input gives byte-identical output.
type Renderer struct {
	Clock func() time.Time
}

func (r Renderer) now() time.Time {
	if r.Clock == nil {
		return time.Now()
	}
	return r.Clock()
}

// Validate checks that every top-level row is laid out against the usable width
func Validate(doc *Document) error {
	usable := doc.Page.UsableWidth()
	for i, b := range doc.Blocks {
		if w, ok := DeclaredWidth(b); ok && absDiff(w, usable) > Epsilon {
			return fmt.Errorf("%w: block %d is %.2fmm, usable width %.2fmm", ErrLayoutContract, i, w, usable)
		}
	}
	return nil
}

// Render lays out and paints doc in a single pass. No bytes are returned on failure.
func (r Renderer) Render(doc *Document) ([]byte, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}
	page := doc.Page
	orientation := "P"
	if page.Landscape {
		orientation = "L"
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: page.Size.WidthMM(), Ht: page.Size.HeightMM()},
	})
	m := page.Margins
	pdf.SetMargins(m.Left, m.Top, m.Right)
	pdf.SetAutoPageBreak(false, m.Bottom)
	pdf.SetCellMargin(0)
	pdf.SetCreationDate(r.now())
	pdf.SetCatalogSort(true)
	pdf.SetCreator("flotech-report-system", false)
	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	if doc.Subject != "" {
		pdf.SetSubject(doc.Subject, true)
	}
	if doc.Author != "" {
		pdf.SetAuthor(doc.Author, true)
	}

	e := &engine{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		images: map[string]string{},
		page:   page,
	}
	if doc.Footer != nil {
		pdf.SetFooterFunc(func() { e.footer(doc.Footer(pdf.PageNo())) })
	}
	e.newPage()
	e.flow(doc.Blocks)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render %q: %w", doc.Title, err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", doc.Title, err)
	}
	return buf.Bytes(), nil
}

// engine owns the gofpdf instance during one Render call
type engine struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	images map[string]string // content hash -> registered name
	page   PageTemplate
	y      float64
}

func (e *engine) top() float64    { return e.page.Margins.Top }
func (e *engine) bottom() float64 { return e.page.PageHeight() - e.page.Margins.Bottom }
func (e *engine) left() float64   { return e.page.Margins.Left }
func (e *engine) width() float64  { return e.page.UsableWidth() }

func (e *engine) newPage() {
	e.pdf.AddPage()
	e.y = e.top()
}

// fits reports whether h more mm fit on the current page.
// A block at the top of a fresh page always "fits" so oversized blocks cannot loop.
func (e *engine) fits(h float64) bool {
	return e.y+h <= e.bottom()+Epsilon || e.y <= e.top()+Epsilon
}

func (e *engine) flow(blocks []Block) {
	for _, b := range blocks {
		switch v := b.(type) {
		case *Table:
			e.flowTable(v)
		case *TextRun:
			e.flowText(v)
		default:
			e.place(b)
		}
	}
}

func (e *engine) place(b Block) {
	h := b.measure(e, e.width())
	if !e.fits(h) {
		e.newPage()
	}
	b.draw(e, e.left(), e.y, e.width(), h)
	e.y += h
}

// flowText splits a top-level paragraph across pages when it is taller than a page
func (e *engine) flowText(t *TextRun) {
	h := t.measure(e, e.width())
	if h <= e.page.UsableHeight() {
		e.place(t)
		return
	}
	lines := e.wrap(t.Style, t.Text, e.width())
	s := t.Style
	for i, line := range lines {
		ls := s
		ls.Padding.Top, ls.Padding.Bottom = 0, 0
		if i == 0 {
			ls.Padding.Top = s.Padding.Top
		}
		if i == len(lines)-1 {
			ls.Padding.Bottom = s.Padding.Bottom
		}
		e.place(&TextRun{Text: line, Style: ls, wrapped: true})
	}
}

func (e *engine) flowTable(t *Table) {
	w := e.width()
	var headH float64
	for _, r := range t.head {
		headH += r.measure(e, w)
	}
	drawHead := func() {
		for _, r := range t.head {
			rh := r.measure(e, w)
			r.draw(e, e.left(), e.y, w, rh)
			e.y += rh
		}
	}
	if len(t.body) == 0 {
		if !e.fits(headH) {
			e.newPage()
		}
		drawHead()
		return
	}
	for i, r := range t.body {
		rh := r.measure(e, w)
		if i == 0 {
			if !e.fits(headH + rh) {
				e.newPage()
			}
			drawHead()
		} else if !e.fits(rh) {
			e.newPage()
			if t.RepeatHeader {
				drawHead()
			}
		}
		r.draw(e, e.left(), e.y, w, rh)
		e.y += rh
	}
}

func (e *engine) footer(f Footer) {
	pw, ph := e.page.PageWidth(), e.page.PageHeight()
	for _, r := range f.Rules {
		y := ph - r.Y
		e.line(Border{Width: r.Thickness, Color: r.Color}, e.page.Margins.Left, y, pw-e.page.Margins.Right, y)
	}
	for _, l := range f.Lines {
		e.useFont(l.Style)
		e.pdf.SetTextColor(l.Style.Color.R, l.Style.Color.G, l.Style.Color.B)
		txt := e.tr(l.Text)
		e.pdf.Text((pw-e.pdf.GetStringWidth(txt))/2, ph-l.Y, txt)
	}
}

func (e *engine) useFont(s Style) {
	e.pdf.SetFont(s.family(), s.Emphasis, s.size())
}

func (e *engine) lines(t *TextRun, w float64) []string {
	if t.wrapped {
		return []string{t.Text}
	}
	return e.wrap(t.Style, t.Text, w)
}

// wrap splits text into the lines it occupies at width w, after cp1252 translation
func (e *engine) wrap(s Style, text string, w float64) []string {
	e.useFont(s)
	inner := w - s.Padding.Left - s.Padding.Right
	if inner <= 0 {
		inner = Mm
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, para := range strings.Split(e.tr(text), "\n") {
		if strings.TrimSpace(para) == "" {
			out = append(out, "")
			continue
		}
		for _, l := range e.pdf.SplitLines([]byte(para), inner) {
			out = append(out, string(l))
		}
	}
	if len(out) == 0 {
		out = append(out, "")
	}
	return out
}

func (e *engine) fillRect(c Color, x, y, w, h float64) {
	e.pdf.SetFillColor(c.R, c.G, c.B)
	e.pdf.Rect(x, y, w, h, "F")
}

func (e *engine) strokeRect(b Border, x, y, w, h float64) {
	e.pdf.SetLineWidth(b.Width)
	e.pdf.SetDrawColor(b.Color.R, b.Color.G, b.Color.B)
	e.pdf.Rect(x, y, w, h, "D")
}

func (e *engine) line(b Border, x1, y1, x2, y2 float64) {
	e.pdf.SetLineWidth(b.Width)
	e.pdf.SetDrawColor(b.Color.R, b.Color.G, b.Color.B)
	e.pdf.Line(x1, y1, x2, y2)
}

func (e *engine) image(b *ImageBlock, x, y, w, h float64) {
	sum := sha256.Sum256(b.data)
	key := hex.EncodeToString(sum[:8])
	name, ok := e.images[key]
	opts := gofpdf.ImageOptions{ImageType: b.kind}
	if !ok {
		name = "img-" + key
		e.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(b.data))
		e.images[key] = name
	}
	e.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
