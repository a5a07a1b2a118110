package pdfs

import "fmt"

// Table is header rows plus body rows sharing one width vector.
// At top level the renderer breaks pages between body rows and repeats the header.
type Table struct {
	width  float64
	widths []float64
	head   []*RowGroup
	body   []*RowGroup

	RepeatHeader bool
	Zebra        []Color // body row fills, cycled
	Grid         Border
	HeadFill     Color
	HeadBelow    Border
}

// NewTable checks the width vector once
func NewTable(width float64, widths []float64) (*Table, error) {
	if err := checkWidths(width, widths); err != nil {
		return nil, err
	}
	return &Table{width: width, widths: widths, RepeatHeader: true}, nil
}

func (t *Table) row(cells []Block) (*RowGroup, error) {
	if len(cells) != len(t.widths) {
		return nil, fmt.Errorf("%w: %d cells for %d columns", ErrLayoutContract, len(cells), len(t.widths))
	}
	return &RowGroup{width: t.width, widths: t.widths, children: cells, Grid: t.Grid}, nil
}

// Header appends a header row filled with HeadFill
func (t *Table) Header(cells ...Block) (*RowGroup, error) {
	r, err := t.row(cells)
	if err != nil {
		return nil, err
	}
	r.Fill, r.Filled = t.HeadFill, true
	r.Below = t.HeadBelow
	t.head = append(t.head, r)
	return r, nil
}

// Row appends a body row; Zebra colors alternate by body index
func (t *Table) Row(cells ...Block) (*RowGroup, error) {
	r, err := t.row(cells)
	if err != nil {
		return nil, err
	}
	if len(t.Zebra) > 0 {
		r.Fill, r.Filled = t.Zebra[len(t.body)%len(t.Zebra)], true
	}
	t.body = append(t.body, r)
	return r, nil
}

func (t *Table) Width() float64        { return t.width }
func (t *Table) Widths() []float64     { return t.widths }
func (t *Table) HeadRows() []*RowGroup { return t.head }
func (t *Table) BodyRows() []*RowGroup { return t.body }

func (t *Table) measure(e *engine, w float64) float64 {
	var h float64
	for _, r := range t.head {
		h += r.measure(e, w)
	}
	for _, r := range t.body {
		h += r.measure(e, w)
	}
	return h
}

func (t *Table) draw(e *engine, x, y, w, _ float64) {
	cy := y
	for _, r := range append(append([]*RowGroup{}, t.head...), t.body...) {
		rh := r.measure(e, w)
		r.draw(e, x, cy, w, rh)
		cy += rh
	}
}
