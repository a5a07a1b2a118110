package documents

import (
	"strconv"
	"strings"

	"github.com/Christosun/flotech-report-system/format"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/pdfs"
)

var rosterA4 = pdfs.PageTemplate{
	Size:      pdfs.A4Size,
	Landscape: true,
	Margins:   pdfs.Margins{Left: 1.5 * pdfs.Cm, Top: 2.5 * pdfs.Cm, Right: 1.5 * pdfs.Cm, Bottom: 3.2 * pdfs.Cm},
}

var rosterColumns = []column{
	{"No", 0.7, pdfs.AlignCenter},
	{"Nama Alat", 3.8, pdfs.AlignLeft},
	{"Brand", 2.4, pdfs.AlignLeft},
	{"Model", 3.0, pdfs.AlignLeft},
	{"Serial Number", 2.8, pdfs.AlignLeft},
	{"Tipe", 2.2, pdfs.AlignLeft},
	{"Kategori", 1.8, pdfs.AlignLeft},
	{"Status", 2.2, pdfs.AlignCenter},
	{"Kondisi", 2.0, pdfs.AlignLeft},
	{"Lokasi", 2.2, pdfs.AlignLeft},
	{"Keterangan", 3.6, pdfs.AlignLeft},
}

var categoryTitles = map[string]string{
	models.CategoryStock: "Stock",
	models.CategoryDemo:  "Demo Unit",
	models.CategoryAll:   "Stock & Demo Unit",
}

var categoryFileParts = map[string]string{
	models.CategoryStock: "Stock",
	models.CategoryDemo:  "DemoUnit",
	models.CategoryAll:   "StockDemo",
}

// statusFilterLabel is "Semua Status" or the printed labels of the selected statuses
func statusFilterLabel(statuses []string) string {
	if len(statuses) == 0 {
		return "Semua Status"
	}
	labels := make([]string, len(statuses))
	for i, st := range statuses {
		labels[i] = models.StatusOf(st).Label
	}
	return strings.Join(labels, ", ")
}

// StockFilename is LaporanStock_{category}_{status}_{YYYYmmdd_HHMM}.pdf.
// Several statuses are joined with "-".
func (a *Assembler) StockFilename(f models.StockFilter) string {
	return "LaporanStock_" + categoryFileParts[f.Category] + "_" + statusFilePart(f.Statuses) + "_" +
		format.FileStamp(a.Clock()) + ".pdf"
}

// statusFilePart turns "on_loan" into "Onloan"
func statusFilePart(statuses []string) string {
	if len(statuses) == 0 {
		return "SemuaStatus"
	}
	parts := make([]string, len(statuses))
	for i, st := range statuses {
		parts[i] = fileSafe(upperFirst(strings.ToLower(strings.ReplaceAll(st, "_", ""))))
	}
	return strings.Join(parts, "-")
}

// StockRoster renders the landscape unit roster for one filter. units must not be empty.
func (a *Assembler) StockRoster(units []*models.StockUnit, f models.StockFilter) ([]byte, error) {
	s := a.rosterSheet(units, f)
	return s.render(s.doc.Title)
}

func (a *Assembler) rosterSheet(units []*models.StockUnit, f models.StockFilter) *sheet {
	title := "LAPORAN STATUS " + strings.ToUpper(categoryTitles[f.Category])
	s := a.newSheet(rosterA4, title)
	s.doc.Footer = a.rosterFooter()
	now := a.Clock()

	heading := s.style(pdfs.RoleBody).WithPadding(pdfs.Padding{})
	right := s.stack(s.w*0.45,
		pdfs.Text(heading.Bold().WithSize(10).WithColor(s.c.Dark).WithAlign(pdfs.AlignRight), title),
		pdfs.Text(heading.WithSize(8).WithColor(s.c.Gray).WithAlign(pdfs.AlignRight),
			"Filter: "+statusFilterLabel(f.Statuses)+"  |  "+now.Format("02 January 2006, 15:04")+" WIB"),
	)
	s.add(
		s.row(s.w, []float64{s.w * 0.55, s.w * 0.45},
			pdfs.Text(heading.Bold().WithSize(12).WithColor(s.c.Primary).WithVAlign(pdfs.VAlignMiddle), a.Company.Name),
			right,
		),
		pdfs.Space(0.2*pdfs.Cm),
		pdfs.HRule(2, s.c.Primary),
		pdfs.Space(0.1*pdfs.Cm),
		pdfs.HRule(0.5, s.c.Secondary),
		pdfs.Space(0.4*pdfs.Cm),
		s.statBoxes(units),
		pdfs.Space(0.5*pdfs.Cm),
	)

	t := s.itemTable(rosterColumns, nil)
	t.Zebra = []pdfs.Color{pdfs.White, pdfs.Hex("#F8FAFF")}
	t.HeadBelow = pdfs.Line(1.5, s.c.Secondary)
	cell := s.style(pdfs.RoleCell).WithSize(8)
	small := cell.WithSize(7).WithColor(s.c.Gray)
	for i, u := range units {
		st := models.StatusOf(u.Status)
		category := cell.Bold()
		if u.Category == models.CategoryDemo {
			category = category.WithColor(pdfs.Hex("#1E40AF"))
		}
		s.tableRow(t,
			pdfs.Text(cell.WithColor(s.c.Gray).WithAlign(pdfs.AlignCenter), strconv.Itoa(i+1)),
			pdfs.Text(cell.Bold(), orEmDash(u.Name)),
			pdfs.Text(cell, orEmDash(u.Brand)),
			pdfs.Text(cell, orEmDash(u.Model)),
			pdfs.Text(small, orEmDash(u.SerialNumber)),
			pdfs.Text(cell, orEmDash(u.Type)),
			pdfs.Text(category, u.CategoryLabel()),
			pdfs.Text(cell.Bold().WithAlign(pdfs.AlignCenter).WithColor(pdfs.Hex(st.Ink)).WithFill(pdfs.Hex(st.Fill)), st.Label),
			pdfs.Text(cell, models.ConditionLabel(u.Condition)),
			pdfs.Text(cell, orEmDash(u.Location)),
			pdfs.Text(small, u.Notes()),
		)
	}
	s.add(t)
	return s
}

// statBoxes is the row of six counters above the roster
func (s *sheet) statBoxes(units []*models.StockUnit) *pdfs.RowGroup {
	var available, onLoan, inRepair, stock, demo int
	for _, u := range units {
		switch u.Status {
		case models.StockAvailable:
			available++
		case models.StockOnLoan:
			onLoan++
		case models.StockInRepair:
			inRepair++
		}
		if u.Category == models.CategoryDemo {
			demo++
		} else if u.Category == models.CategoryStock {
			stock++
		}
	}
	stats := []struct {
		label    string
		n        int
		fill, fg pdfs.Color
	}{
		{"Total Unit", len(units), s.c.Accent, s.c.Primary},
		{"Available", available, pdfs.Hex("#D1FAE5"), pdfs.Hex("#065F46")},
		{"On Loan", onLoan, pdfs.Hex("#FEF3C7"), pdfs.Hex("#92400E")},
		{"In Repair", inRepair, pdfs.Hex("#FEF9C3"), pdfs.Hex("#713F12")},
		{"Stock", stock, pdfs.Hex("#F3F4F6"), pdfs.Hex("#374151")},
		{"Demo Unit", demo, pdfs.Hex("#DBEAFE"), pdfs.Hex("#1E40AF")},
	}
	const gap = 0.4 * pdfs.Cm
	boxW := (s.w - gap*float64(len(stats)-1)) / float64(len(stats))
	value := pdfs.Style{Emphasis: "B", Size: 18, Align: pdfs.AlignCenter, Padding: pdfs.Padding{Top: 2.8, Bottom: 0.5}}
	label := pdfs.Style{Size: 7.5, Color: s.c.Gray, Align: pdfs.AlignCenter, Padding: pdfs.Padding{Bottom: 2.8}}
	var cells []pdfs.Block
	var widths []float64
	for i, st := range stats {
		if i > 0 {
			cells = append(cells, &pdfs.Blank{W: gap})
			widths = append(widths, gap)
		}
		box := s.stack(boxW,
			pdfs.Text(value.WithColor(st.fg), strconv.Itoa(st.n)),
			pdfs.Text(label, st.label),
		)
		box.Fill, box.Filled = st.fill, true
		box.Box = pdfs.Line(0.5, s.c.Border)
		cells = append(cells, box)
		widths = append(widths, boxW)
	}
	return s.row(s.w, widths, cells...)
}

// rosterFooter is the compact footer of the landscape roster
func (a *Assembler) rosterFooter() pdfs.FooterFunc {
	c := a.Palette.Colors()
	printed := format.Stamp(a.Clock())
	co := a.Company
	name := pdfs.Style{Emphasis: "B", Size: 8.5, Color: c.Primary}
	small := pdfs.Style{Size: 7.5, Color: c.Gray}
	faint := pdfs.Style{Size: 7.5, Color: c.Faint}
	return func(page int) pdfs.Footer {
		return pdfs.Footer{
			Rules: []pdfs.FooterRule{{Y: 2.5 * pdfs.Cm, Thickness: 1.2 * pdfs.Pt, Color: c.Primary}},
			Lines: []pdfs.FooterLine{
				{Y: 2.0 * pdfs.Cm, Text: co.Name, Style: name},
				{Y: 1.6 * pdfs.Cm, Text: co.Address + "  |  " + co.City + "  |  " + co.Telp, Style: small},
				{Y: 1.2 * pdfs.Cm, Text: "Dicetak: " + printed + "  |  Hal. " + strconv.Itoa(page) +
					"  |  Dokumen ini digenerate otomatis oleh sistem", Style: faint},
			},
		}
	}
}
