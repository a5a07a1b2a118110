package pdfs

import (
	"fmt"
	"math"
)

// Block is one laid-out element. The set of blocks is closed:
// TextRun, ImageBlock, Rule, RowGroup, Stack, Table, Blank and Spacer.
type Block interface {
	// measure returns the height the block needs at width w
	measure(e *engine, w float64) float64
	// draw paints the block into the box (x, y, w, h); h >= measure(w)
	draw(e *engine, x, y, w, h float64)
}

// TextRun is wrapped text in one style
type TextRun struct {
	Text  string
	Style Style

	wrapped bool // one line already split and translated by flowText
}

func Text(style Style, text string) *TextRun {
	return &TextRun{Text: text, Style: style}
}

func (t *TextRun) measure(e *engine, w float64) float64 {
	s := t.Style
	n := len(e.lines(t, w))
	return float64(n)*s.LineHeight() + s.Padding.Top + s.Padding.Bottom
}

func (t *TextRun) draw(e *engine, x, y, w, h float64) {
	s := t.Style
	if s.Filled {
		e.fillRect(s.Fill, x, y, w, h)
	}
	lines := e.lines(t, w)
	lh := s.LineHeight()
	content := float64(len(lines)) * lh
	top := y + s.Padding.Top
	switch s.VAlign {
	case VAlignMiddle:
		top = y + (h-content)/2
	case VAlignBottom:
		top = y + h - s.Padding.Bottom - content
	}
	e.useFont(s)
	e.pdf.SetTextColor(s.Color.R, s.Color.G, s.Color.B)
	inner := w - s.Padding.Left - s.Padding.Right
	for i, line := range lines {
		e.pdf.SetXY(x+s.Padding.Left, top+float64(i)*lh)
		e.pdf.CellFormat(inner, lh, line, "", 0, s.align(), false, 0, "")
	}
}

// Blank occupies w x h and draws nothing
type Blank struct {
	W, H float64
}

func (b *Blank) measure(_ *engine, _ float64) float64 { return b.H }
func (b *Blank) draw(_ *engine, _, _, _, _ float64)   {}

// Spacer is vertical whitespace
type Spacer struct {
	H float64
}

func Space(h float64) *Spacer { return &Spacer{H: h} }

func (s *Spacer) measure(_ *engine, _ float64) float64 { return s.H }
func (s *Spacer) draw(_ *engine, _, _, _, _ float64)   {}

// Rule is a horizontal line. Width 0 spans the allocated width; otherwise it is centred.
type Rule struct {
	Thickness float64 // mm
	Color     Color
	Width     float64
}

// HRule builds a rule from a thickness in points
func HRule(pt float64, c Color) *Rule {
	return &Rule{Thickness: pt * Pt, Color: c}
}

func (r *Rule) measure(_ *engine, _ float64) float64 { return r.Thickness }

func (r *Rule) draw(e *engine, x, y, w, _ float64) {
	lw := w
	if r.Width > 0 && r.Width < w {
		x += (w - r.Width) / 2
		lw = r.Width
	}
	e.line(Border{Width: r.Thickness, Color: r.Color}, x, y+r.Thickness/2, x+lw, y+r.Thickness/2)
}

// RowGroup places children side by side in fixed column widths.
// Every child is stretched to the tallest child's height.
type RowGroup struct {
	width    float64
	widths   []float64
	children []Block

	Fill      Color
	Filled    bool
	Box       Border // outline of the row
	Grid      Border // outline of every cell
	Below     Border // line under the row
	Divider   Border // vertical line after the columns listed in DividerAfter
	DividerAt []int
	MinHeight float64
}

// NewRowGroup checks that len(widths) == len(children) and that the widths sum to width.
func NewRowGroup(width float64, widths []float64, children ...Block) (*RowGroup, error) {
	if err := checkWidths(width, widths); err != nil {
		return nil, err
	}
	if len(widths) != len(children) {
		return nil, fmt.Errorf("%w: %d widths for %d children", ErrLayoutContract, len(widths), len(children))
	}
	for i, c := range children {
		if cw, ok := DeclaredWidth(c); ok && math.Abs(cw-widths[i]) > Epsilon {
			return nil, fmt.Errorf("%w: column %d is %.2fmm, nested block declares %.2fmm", ErrLayoutContract, i, widths[i], cw)
		}
	}
	return &RowGroup{width: width, widths: widths, children: children}, nil
}

func checkWidths(width float64, widths []float64) error {
	if len(widths) == 0 {
		return fmt.Errorf("%w: no columns", ErrLayoutContract)
	}
	var sum float64
	for _, w := range widths {
		if w < 0 {
			return fmt.Errorf("%w: negative column width %.2f", ErrLayoutContract, w)
		}
		sum += w
	}
	if math.Abs(sum-width) > Epsilon {
		return fmt.Errorf("%w: columns sum to %.2fmm, allocated %.2fmm", ErrLayoutContract, sum, width)
	}
	return nil
}

// WidthSlack is the largest remainder FixWidths lets the last column absorb
const WidthSlack = 1.0 // mm

// FixWidths returns a copy of widths whose last column absorbs the rounding
// remainder total - sum(widths). A remainder beyond WidthSlack either way is a
// contract error, not rounding.
func FixWidths(total float64, widths []float64) ([]float64, error) {
	if len(widths) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrLayoutContract)
	}
	out := make([]float64, len(widths))
	copy(out, widths)
	var sum float64
	for _, w := range out {
		sum += w
	}
	rest := total - sum
	if math.Abs(rest) > WidthSlack {
		return nil, fmt.Errorf("%w: columns sum to %.2fmm, allocated %.2fmm", ErrLayoutContract, sum, total)
	}
	out[len(out)-1] += rest
	return out, nil
}

// Scale multiplies every width by unit, e.g. Scale(Cm, 3, 5, 3, 6)
func Scale(unit float64, widths ...float64) []float64 {
	out := make([]float64, len(widths))
	for i, w := range widths {
		out[i] = w * unit
	}
	return out
}

func (r *RowGroup) Width() float64    { return r.width }
func (r *RowGroup) Widths() []float64 { return r.widths }
func (r *RowGroup) Children() []Block { return r.children }
func (r *RowGroup) Len() int          { return len(r.children) }
func (r *RowGroup) Child(i int) Block { return r.children[i] }
func (r *RowGroup) WithFill(c Color) *RowGroup {
	r.Fill, r.Filled = c, true
	return r
}

func (r *RowGroup) measure(e *engine, _ float64) float64 {
	h := r.MinHeight
	for i, c := range r.children {
		h = math.Max(h, c.measure(e, r.widths[i]))
	}
	return h
}

func (r *RowGroup) draw(e *engine, x, y, _, h float64) {
	if r.Filled {
		e.fillRect(r.Fill, x, y, r.width, h)
	}
	cx := x
	for i, c := range r.children {
		c.draw(e, cx, y, r.widths[i], h)
		if !r.Grid.IsZero() {
			e.strokeRect(r.Grid, cx, y, r.widths[i], h)
		}
		cx += r.widths[i]
	}
	if !r.Divider.IsZero() {
		for _, col := range r.DividerAt {
			if col < 0 || col >= len(r.widths)-1 {
				continue
			}
			dx := x
			for _, w := range r.widths[:col+1] {
				dx += w
			}
			e.line(r.Divider, dx, y, dx, y+h)
		}
	}
	if !r.Box.IsZero() {
		e.strokeRect(r.Box, x, y, r.width, h)
	}
	if !r.Below.IsZero() {
		e.line(r.Below, x, y+h, x+r.width, y+h)
	}
}

// Stack places rows vertically in one column
type Stack struct {
	width float64
	rows  []Block

	Fill   Color
	Filled bool
	Box    Border
}

// NewStack checks that nested rows declare the stack's width
func NewStack(width float64, rows ...Block) (*Stack, error) {
	s := &Stack{width: width}
	if err := s.Append(rows...); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stack) Append(rows ...Block) error {
	for _, r := range rows {
		if w, ok := DeclaredWidth(r); ok && math.Abs(w-s.width) > Epsilon {
			return fmt.Errorf("%w: nested row %.2fmm in stack %.2fmm", ErrLayoutContract, w, s.width)
		}
	}
	s.rows = append(s.rows, rows...)
	return nil
}

func (s *Stack) Width() float64 { return s.width }
func (s *Stack) Rows() []Block  { return s.rows }
func (s *Stack) Len() int       { return len(s.rows) }

func (s *Stack) measure(e *engine, _ float64) float64 {
	var h float64
	for _, r := range s.rows {
		h += r.measure(e, s.width)
	}
	return h
}

func (s *Stack) draw(e *engine, x, y, _, h float64) {
	if s.Filled {
		e.fillRect(s.Fill, x, y, s.width, h)
	}
	cy := y
	for _, r := range s.rows {
		rh := r.measure(e, s.width)
		r.draw(e, x, cy, s.width, rh)
		cy += rh
	}
	if !s.Box.IsZero() {
		e.strokeRect(s.Box, x, y, s.width, h)
	}
}

// DeclaredWidth reports the width a RowGroup, Stack or Table was built for
func DeclaredWidth(b Block) (float64, bool) {
	switch v := b.(type) {
	case *RowGroup:
		return v.width, true
	case *Stack:
		return v.width, true
	case *Table:
		return v.width, true
	}
	return 0, false
}

// Footprint is the box an image or its placeholder occupies
func Footprint(b Block) (w, h float64, ok bool) {
	switch v := b.(type) {
	case *ImageBlock:
		return v.BoxW, v.BoxH, true
	case *Blank:
		return v.W, v.H, true
	}
	return 0, 0, false
}
