package pdfs

// Margins in mm
type Margins struct {
	Left, Top, Right, Bottom float64
}

// PageTemplate fixes the geometry of every page of a document
type PageTemplate struct {
	Size      PaperSize
	Landscape bool
	Margins   Margins
}

func (p PageTemplate) PageWidth() float64 {
	if p.Landscape {
		return p.Size.HeightMM()
	}
	return p.Size.WidthMM()
}

func (p PageTemplate) PageHeight() float64 {
	if p.Landscape {
		return p.Size.WidthMM()
	}
	return p.Size.HeightMM()
}

// UsableWidth is the width every top-level row is laid out against
func (p PageTemplate) UsableWidth() float64 {
	return p.PageWidth() - p.Margins.Left - p.Margins.Right
}

func (p PageTemplate) UsableHeight() float64 {
	return p.PageHeight() - p.Margins.Top - p.Margins.Bottom
}

// FooterRule is a horizontal line between the side margins, Y mm above the page bottom
type FooterRule struct {
	Y         float64
	Thickness float64
	Color     Color
}

// FooterLine is a centred text line whose baseline sits Y mm above the page bottom
type FooterLine struct {
	Y     float64
	Text  string
	Style Style
}

type Footer struct {
	Rules []FooterRule
	Lines []FooterLine
}

// FooterFunc is called once per physical page with its 1-based number
type FooterFunc func(page int) Footer

// Document is an ordered list of top-level blocks on one page template
type Document struct {
	Page    PageTemplate
	Title   string
	Subject string
	Author  string
	Blocks  []Block
	Footer  FooterFunc
}

func (d *Document) Add(blocks ...Block) {
	d.Blocks = append(d.Blocks, blocks...)
}
