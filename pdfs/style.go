package pdfs

type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

type VAlign int

const (
	VAlignTop VAlign = iota
	VAlignMiddle
	VAlignBottom
)

const (
	FontHelvetica = "Helvetica"
	defaultSize   = 10.0
	defaultLead   = 1.3
)

// Padding in mm
type Padding struct {
	Top, Right, Bottom, Left float64
}

// Pad is the same padding on all four sides
func Pad(v float64) Padding { return Padding{v, v, v, v} }

// PadXY is x on left/right and y on top/bottom
func PadXY(x, y float64) Padding { return Padding{y, x, y, x} }

// Border is a stroke. Zero width means no stroke.
type Border struct {
	Width float64 // mm
	Color Color
}

func (b Border) IsZero() bool { return b.Width <= 0 }

// Line is a Border given in points
func Line(pt float64, c Color) Border { return Border{Width: pt * Pt, Color: c} }

// Style is a property bag for text. Derive variants with the With* methods; they copy.
type Style struct {
	Family   string
	Emphasis string  // "", "B", "I", "BI"
	Size     float64 // pt
	Color    Color
	Fill     Color
	Filled   bool
	Align    Align
	VAlign   VAlign
	Padding  Padding
	Leading  float64 // line height as a multiple of Size. 0 = 1.3
}

func (s Style) family() string {
	if s.Family == "" {
		return FontHelvetica
	}
	return s.Family
}

func (s Style) size() float64 {
	if s.Size <= 0 {
		return defaultSize
	}
	return s.Size
}

func (s Style) align() string {
	if s.Align == "" {
		return string(AlignLeft)
	}
	return string(s.Align)
}

// LineHeight in mm
func (s Style) LineHeight() float64 {
	lead := s.Leading
	if lead <= 0 {
		lead = defaultLead
	}
	return s.size() * Pt * lead
}

func (s Style) Bold() Style                    { s.Emphasis = "B"; return s }
func (s Style) Regular() Style                 { s.Emphasis = ""; return s }
func (s Style) WithSize(pt float64) Style      { s.Size = pt; return s }
func (s Style) WithColor(c Color) Style        { s.Color = c; return s }
func (s Style) WithFill(c Color) Style         { s.Fill, s.Filled = c, true; return s }
func (s Style) NoFill() Style                  { s.Fill, s.Filled = Color{}, false; return s }
func (s Style) WithAlign(a Align) Style        { s.Align = a; return s }
func (s Style) WithVAlign(v VAlign) Style      { s.VAlign = v; return s }
func (s Style) WithPadding(p Padding) Style    { s.Padding = p; return s }
func (s Style) WithLeading(lead float64) Style { s.Leading = lead; return s }
