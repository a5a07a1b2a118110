package documents

import (
	"strconv"

	"github.com/Christosun/flotech-report-system/format"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/pdfs"
	"github.com/shopspring/decimal"
)

// TaxRate is the PPN applied on top of the quotation subtotal
var TaxRate = decimal.RequireFromString("0.11")

// Totals are the aggregate rows of a quotation
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals sums the item subtotals and adds PPN. Nothing is rounded here;
// format.Rupiah rounds each amount when it is printed.
func ComputeTotals(items models.QuotationItems) Totals {
	sub := items.Sum()
	tax := sub.Mul(TaxRate)
	return Totals{Subtotal: sub, Tax: tax, Total: sub.Add(tax)}
}

// column is one fixed-width column of an item table
type column struct {
	Title string
	Width float64 // cm; a table's columns sum to the usable width
	Align pdfs.Align
}

var quotationColumns = []column{
	{"No", 0.8, pdfs.AlignCenter},
	{"Deskripsi", 5.4, pdfs.AlignLeft},
	{"Brand / Model", 2.0, pdfs.AlignLeft},
	{"Qty", 1.2, pdfs.AlignCenter},
	{"Satuan", 1.2, pdfs.AlignCenter},
	{"Harga Satuan", 2.6, pdfs.AlignRight},
	{"Disc", 1.2, pdfs.AlignCenter},
	{"Subtotal", 2.6, pdfs.AlignRight},
}

var handoverColumns = []column{
	{"No", 1.2, pdfs.AlignCenter},
	{"Nama Barang / Alat", 7, pdfs.AlignLeft},
	{"Jumlah", 1.8, pdfs.AlignCenter},
	{"Satuan", 2, pdfs.AlignCenter},
	{"Keterangan", 4.5, pdfs.AlignLeft},
}

// itemTable is a bold inverse header and one zebra-striped row per item.
// The header repeats on every page the table spans.
func (s *sheet) itemTable(cols []column, rows [][]string) *pdfs.Table {
	widths := make([]float64, len(cols))
	for i, c := range cols {
		widths[i] = c.Width * pdfs.Cm
	}
	t := s.table(widths)
	t.HeadFill = s.c.Primary
	t.Zebra = []pdfs.Color{pdfs.White, s.c.ZebraRow}
	t.Grid = pdfs.Line(0.3, s.c.Border)

	head := s.style(pdfs.RoleTableHead)
	cells := make([]pdfs.Block, len(cols))
	for i, c := range cols {
		cells[i] = pdfs.Text(head, c.Title)
	}
	s.tableHeader(t, cells...)

	cell := s.style(pdfs.RoleCell)
	for _, row := range rows {
		cells := make([]pdfs.Block, len(cols))
		for i, c := range cols {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			cells[i] = pdfs.Text(cell.WithAlign(c.Align), v)
		}
		s.tableRow(t, cells...)
	}
	return t
}

// quotationRows formats the items. Zero quantity items are kept.
func quotationRows(items models.QuotationItems) [][]string {
	rows := make([][]string, len(items))
	for i, it := range items {
		brand := it.Brand
		if it.Model != "" {
			if brand != "" {
				brand += " / "
			}
			brand += it.Model
		}
		desc := it.Description
		if it.Remarks != "" {
			desc += "\n" + it.Remarks
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			desc,
			orEmDash(brand),
			format.Quantity(it.Qty.Decimal()),
			it.Unit,
			format.Rupiah(it.UnitPrice.Decimal()),
			format.Percent(it.DiscountPercent(), it.Discount.Valid),
			format.Rupiah(it.Subtotal()),
		}
	}
	return rows
}

func handoverRows(items models.HandoverItems) [][]string {
	rows := make([][]string, len(items))
	for i, it := range items {
		no := it.No.String()
		if no == "" {
			no = strconv.Itoa(i + 1)
		}
		rows[i] = []string{no, it.NamaBarang.String(), it.Jumlah.String(), it.Satuan.String(), it.Keterangan.String()}
	}
	return rows
}

// aggregates are the rows under an item table: Subtotal, PPN and the grand total.
// Each is a RowGroup of [W − 6 cm, 3.4 cm, 2.6 cm] with an empty first cell.
func (s *sheet) aggregates(t Totals) []pdfs.Block {
	rate := TaxRate.Mul(decimal.NewFromInt(100)).String()
	lines := []struct {
		label string
		value decimal.Decimal
		role  pdfs.Role
	}{
		{"Subtotal", t.Subtotal, pdfs.RoleTotalRow},
		{"PPN " + rate + "%", t.Tax, pdfs.RoleTotalRow},
		{"Total + PPN", t.Total, pdfs.RoleGrandTotalRow},
	}
	widths := []float64{s.w - 6*pdfs.Cm, 3.4 * pdfs.Cm, 2.6 * pdfs.Cm}
	blocks := make([]pdfs.Block, 0, len(lines))
	for _, l := range lines {
		st := s.style(l.role)
		r := s.row(s.w, widths,
			&pdfs.Blank{},
			pdfs.Text(st, l.label),
			pdfs.Text(st, format.Rupiah(l.value)),
		)
		r.Below = pdfs.Line(0.3, s.c.Border)
		blocks = append(blocks, r)
	}
	return blocks
}
