package documents

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Christosun/flotech-report-system/format"
	"github.com/Christosun/flotech-report-system/pdfs"
	"go.uber.org/zap"
)

var portraitA4 = pdfs.PageTemplate{
	Size:    pdfs.A4Size,
	Margins: pdfs.Margins{Left: 2 * pdfs.Cm, Top: 2 * pdfs.Cm, Right: 2 * pdfs.Cm, Bottom: 3.5 * pdfs.Cm},
}

// sheet is the build state of one document. The first layout error sticks
// and the blocks built after it are inert.
type sheet struct {
	a   *Assembler
	doc *pdfs.Document
	pal *pdfs.Palette
	c   pdfs.Colors
	w   float64 // usable width
	err error
}

func (a *Assembler) newSheet(page pdfs.PageTemplate, title string) *sheet {
	return &sheet{
		a: a,
		doc: &pdfs.Document{
			Page:    page,
			Title:   title,
			Author:  a.Company.Name,
			Subject: title,
		},
		pal: a.Palette,
		c:   a.Palette.Colors(),
		w:   page.UsableWidth(),
	}
}

func (s *sheet) fail(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

func (s *sheet) add(blocks ...pdfs.Block) {
	s.doc.Add(blocks...)
}

func (s *sheet) style(r pdfs.Role) pdfs.Style {
	return s.pal.Style(r)
}

// row builds a RowGroup of width w. The last column absorbs rounding only.
func (s *sheet) row(w float64, widths []float64, cells ...pdfs.Block) *pdfs.RowGroup {
	fixed, err := pdfs.FixWidths(w, widths)
	if err != nil {
		s.fail(err)
		return &pdfs.RowGroup{}
	}
	rg, err := pdfs.NewRowGroup(w, fixed, cells...)
	if err != nil {
		s.fail(err)
		return &pdfs.RowGroup{}
	}
	return rg
}

func (s *sheet) stack(w float64, rows ...pdfs.Block) *pdfs.Stack {
	st, err := pdfs.NewStack(w, rows...)
	if err != nil {
		s.fail(err)
		return &pdfs.Stack{}
	}
	return st
}

func (s *sheet) table(widths []float64) *pdfs.Table {
	fixed, err := pdfs.FixWidths(s.w, widths)
	if err != nil {
		s.fail(err)
		return &pdfs.Table{}
	}
	t, err := pdfs.NewTable(s.w, fixed)
	if err != nil {
		s.fail(err)
		return &pdfs.Table{}
	}
	return t
}

// tableRow appends a body row and reports contract errors
func (s *sheet) tableRow(t *pdfs.Table, cells ...pdfs.Block) *pdfs.RowGroup {
	r, err := t.Row(cells...)
	if err != nil {
		s.fail(err)
		return &pdfs.RowGroup{}
	}
	return r
}

func (s *sheet) tableHeader(t *pdfs.Table, cells ...pdfs.Block) {
	if _, err := t.Header(cells...); err != nil {
		s.fail(err)
	}
}

func (s *sheet) render(kind string) ([]byte, error) {
	if s.err != nil {
		return nil, s.a.fail(kind, s.err)
	}
	return s.a.render(kind, s.doc)
}

// image embeds a base64 payload; decode failures become a blank of the same footprint
func (s *sheet) image(encoded string, maxW, maxH float64, what string) pdfs.Block {
	b, err := pdfs.EmbedImage(encoded, maxW, maxH)
	s.logImageError(err, what)
	return b
}

func (s *sheet) logImageError(err error, what string) {
	if err == nil {
		return
	}
	var decodeErr *pdfs.ImageDecodeError
	if errors.As(err, &decodeErr) {
		s.a.Logger.Warn("image replaced by placeholder",
			zap.String("document", s.doc.Title), zap.String("image", what), zap.Error(err))
		return
	}
	s.fail(err)
}

// logo is the company image fitted into maxW x 1.6 cm, or the text mark
func (s *sheet) logo(maxW float64) pdfs.Block {
	fallback := pdfs.Text(s.style(pdfs.RoleLogoFallback), "FLOTECH")
	if len(s.a.Logo) == 0 {
		return fallback
	}
	b, err := pdfs.EmbedImageBytes(s.a.Logo, maxW, 1.6*pdfs.Cm)
	if err != nil {
		s.logImageError(err, "logo")
		return fallback
	}
	if img, ok := b.(*pdfs.ImageBlock); ok {
		img.Align = pdfs.AlignLeft
	}
	return b
}

// header is the logo column beside the title band, then the primary rule
func (s *sheet) header(logoW float64, title, number string, titleSize float64) {
	bandW := s.w - logoW
	band := s.stack(bandW,
		pdfs.Text(s.style(pdfs.RoleTitle).WithSize(titleSize).WithPadding(pdfs.Padding{Top: 3.5, Right: 3.5, Bottom: 0.5, Left: 3.5}), title),
		pdfs.Text(s.style(pdfs.RoleSubtitle).WithPadding(pdfs.Padding{Top: 0.5, Right: 3.5, Bottom: 3.5, Left: 3.5}), number),
	)
	band.Fill, band.Filled = s.c.Primary, true
	s.add(
		s.row(s.w, []float64{logoW, bandW}, s.logo(4.5*pdfs.Cm), band),
		pdfs.Space(0.3*pdfs.Cm),
		pdfs.HRule(2, s.c.Primary),
		pdfs.Space(0.3*pdfs.Cm),
	)
}

// pair is one label/value cell pair of a meta band or info grid
type pair struct {
	Label    string
	Value    string
	Required bool // renders "-" when empty instead of being dropped
}

// metaBand lays out label/value pairs in one accent row with a divider after the
// first pair. Optional empty pairs are dropped and their width goes to the last
// kept value column.
func (s *sheet) metaBand(pairs []pair, widthsCm ...float64) *pdfs.RowGroup {
	label := s.style(pdfs.RoleLabel)
	value := s.style(pdfs.RoleValue)
	var cells []pdfs.Block
	var widths []float64
	var dropped float64
	for i, p := range pairs {
		lw, vw := widthsCm[2*i]*pdfs.Cm, widthsCm[2*i+1]*pdfs.Cm
		v := p.Value
		if v == "" {
			if !p.Required {
				dropped += lw + vw
				continue
			}
			v = "-"
		}
		cells = append(cells, pdfs.Text(label, p.Label), pdfs.Text(value, v))
		widths = append(widths, lw, vw)
	}
	if n := len(widths); n > 0 {
		widths[n-1] += dropped
	}
	rg := s.row(s.w, widths, cells...)
	rg.Fill, rg.Filled = s.c.Accent, true
	rg.Box = pdfs.Line(0.5, s.c.Border)
	rg.Divider, rg.DividerAt = pdfs.Line(0.5, s.c.Border), []int{1}
	return rg
}

// section is a bold heading over a thin rule
func (s *sheet) section(text string) {
	s.add(
		pdfs.Text(s.style(pdfs.RoleSection), text),
		pdfs.HRule(0.5, s.c.Border),
		pdfs.Space(0.15*pdfs.Cm),
	)
}

// infoGrid places pairs two per row in [3, 5.5, 3, 5.5] cm with accent label cells.
// Pairs with empty values are skipped; an empty grid adds nothing.
func (s *sheet) infoGrid(pairs []pair) {
	var kept []pair
	for _, p := range pairs {
		if p.Value != "" || p.Required {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return
	}
	label := s.style(pdfs.RoleLabel).WithFill(s.c.Accent).WithVAlign(pdfs.VAlignTop).WithPadding(pdfs.Pad(2.5))
	value := s.style(pdfs.RoleValue).Regular().WithSize(9).WithVAlign(pdfs.VAlignTop).WithPadding(pdfs.Pad(2.5))
	t := s.table(pdfs.Scale(pdfs.Cm, 3, 5.5, 3, 5.5))
	t.RepeatHeader = false
	for i := 0; i < len(kept); i += 2 {
		left := kept[i]
		right := pair{}
		if i+1 < len(kept) {
			right = kept[i+1]
		}
		r := s.tableRow(t,
			pdfs.Text(label, left.Label), pdfs.Text(value, orEmDash(left.Value)),
			pdfs.Text(label, right.Label), pdfs.Text(value, right.Value),
		)
		r.Below = pdfs.Line(0.2, s.c.Border)
	}
	s.add(t)
}

// textBlock is a colored heading band over the text on the accent fill.
// Empty text adds nothing.
func (s *sheet) textBlock(label, text string, heading pdfs.Color) {
	if strings.TrimSpace(text) == "" {
		return
	}
	// top level runs so long text can continue on the next page
	s.add(
		pdfs.Text(s.style(pdfs.RoleHeaderBand).WithFill(heading), label),
		pdfs.Text(s.style(pdfs.RoleAccentBand), text),
		pdfs.Space(0.2*pdfs.Cm),
	)
}

// party is one side of a two-party document
type party struct {
	Name    string
	Title   string
	Company string
	Address string
}

// partyBlock stacks the role header, company (or name), name, title and address.
// Every present field adds exactly one row.
func (s *sheet) partyBlock(p party, role string, heading pdfs.Color, w float64) *pdfs.Stack {
	text := s.style(pdfs.RoleBody).WithPadding(pdfs.PadXY(3.2, 0.6))
	rows := []pdfs.Block{
		pdfs.Text(s.style(pdfs.RoleHeaderBand).WithFill(heading).WithPadding(pdfs.Pad(3.2)), role),
		pdfs.Space(1.2),
	}
	company, name := p.Company, p.Name
	if company == "" {
		company, name = name, ""
	}
	if company != "" {
		rows = append(rows, pdfs.Text(text.Bold().WithSize(11).WithColor(s.c.Dark), company))
	}
	if name != "" {
		rows = append(rows, pdfs.Text(text.WithSize(10), name))
	}
	if p.Title != "" {
		rows = append(rows, pdfs.Text(text.WithSize(9).WithColor(s.c.Gray), p.Title))
	}
	if p.Address != "" {
		rows = append(rows, pdfs.Text(text.WithSize(8).WithColor(s.c.Gray).WithLeading(1.4), p.Address))
	}
	rows = append(rows, pdfs.Space(2))
	st := s.stack(w, rows...)
	st.Fill, st.Filled = s.c.Accent, true
	st.Box = pdfs.Line(0.5, s.c.Border)
	return st
}

// twoColumns places two blocks side by side with a gap
func (s *sheet) twoColumns(left, right pdfs.Block, gap float64) *pdfs.RowGroup {
	col := (s.w - gap) / 2
	return s.row(s.w, []float64{col, gap, col}, left, &pdfs.Blank{W: gap}, right)
}

// signer is one signature column
type signer struct {
	Label     string
	Heading   pdfs.Color // zero means primary
	Signature string     // base64 image, may be empty
	Name      string
	Sub       string
	Fill      pdfs.Color // label row; zero means accent
}

const (
	sigW = 4 * pdfs.Cm
	sigH = 1.6 * pdfs.Cm
)

// signatureColumns builds one boxed column per signer in equal widths.
// Every column has the same rows: label, image or blank, rule, name, sub line.
func (s *sheet) signatureColumns(signers []signer, gap float64) *pdfs.RowGroup {
	n := len(signers)
	colW := (s.w - gap*float64(n-1)) / float64(n)
	sub := s.style(pdfs.RoleSignatureSub)
	columns := make([][]pdfs.Block, n)
	for i, sg := range signers {
		heading, fill := sg.Heading, sg.Fill
		if heading == (pdfs.Color{}) {
			heading = s.c.Primary
		}
		if fill == (pdfs.Color{}) {
			fill = s.c.Accent
		}
		label := s.style(pdfs.RoleSignatureLabel).WithColor(heading).WithFill(fill)
		img := s.image(sg.Signature, sigW, sigH, "signature "+sg.Label)
		rule := &pdfs.Rule{Thickness: 0.5 * pdfs.Pt, Color: s.c.Border, Width: colW - 1.5*pdfs.Cm}
		columns[i] = []pdfs.Block{
			pdfs.Text(label, sg.Label),
			pdfs.Space(2),
			img,
			pdfs.Space(1),
			rule,
			pdfs.Text(sub.Bold().WithColor(s.c.Dark).WithSize(9), orEmDash(sg.Name)),
			pdfs.Text(sub, sg.Sub),
		}
	}
	cells := make([]pdfs.Block, 0, 2*n-1)
	widths := make([]float64, 0, 2*n-1)
	for i, rows := range padColumns(columns) {
		if i > 0 && gap > 0 {
			cells = append(cells, &pdfs.Blank{W: gap})
			widths = append(widths, gap)
		}
		st := s.stack(colW, rows...)
		st.Box = pdfs.Line(0.5, s.c.Border)
		cells = append(cells, st)
		widths = append(widths, colW)
	}
	return s.row(s.w, widths, cells...)
}

// padColumns appends empty spacers so every column has the same number of rows
func padColumns(cols [][]pdfs.Block) [][]pdfs.Block {
	most := 0
	for _, c := range cols {
		most = max(most, len(c))
	}
	for i := range cols {
		for len(cols[i]) < most {
			cols[i] = append(cols[i], pdfs.Space(0))
		}
	}
	return cols
}

// standardFooter is the company footer of portrait documents
func (a *Assembler) standardFooter() pdfs.FooterFunc {
	c := a.Palette.Colors()
	name := pdfs.Style{Emphasis: "B", Size: 9, Color: c.Primary}
	small := pdfs.Style{Size: 8, Color: c.Gray}
	faint := pdfs.Style{Size: 8, Color: c.Faint}
	generated := format.Stamp(a.Clock())
	co := a.Company
	return func(page int) pdfs.Footer {
		return pdfs.Footer{
			Rules: []pdfs.FooterRule{{Y: 2.8 * pdfs.Cm, Thickness: 1.5 * pdfs.Pt, Color: c.Primary}},
			Lines: []pdfs.FooterLine{
				{Y: 2.3 * pdfs.Cm, Text: co.Name, Style: name},
				{Y: 2.0 * pdfs.Cm, Text: co.Address + "  |  " + co.City, Style: small},
				{Y: 1.7 * pdfs.Cm, Text: co.Telp, Style: small},
				{Y: 1.4 * pdfs.Cm, Text: co.Email, Style: small},
				{Y: 1.0 * pdfs.Cm, Text: "Generated: " + generated + "  |  Halaman " + strconv.Itoa(page), Style: faint},
			},
		}
	}
}

func orEmDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
