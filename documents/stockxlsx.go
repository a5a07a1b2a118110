package documents

import (
	"fmt"
	"io"
	"strings"

	"github.com/Christosun/flotech-report-system/format"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/xuri/excelize/v2"
)

const stockSheet = "Stock"

var workbookColumns = []struct {
	Title string
	Width float64
}{
	{"No", 5},
	{"Nama Alat", 28},
	{"Brand", 16},
	{"Model", 18},
	{"Serial Number", 18},
	{"Asset Tag", 14},
	{"Tipe", 14},
	{"Kategori", 10},
	{"Status", 12},
	{"Kondisi", 11},
	{"Lokasi", 16},
	{"Tgl Pinjam", 12},
	{"Keterangan", 36},
	{"Harga Beli", 16},
}

// StockXLSXFilename mirrors StockFilename with the .xlsx extension
func (a *Assembler) StockXLSXFilename(f models.StockFilter) string {
	return strings.TrimSuffix(a.StockFilename(f), ".pdf") + ".xlsx"
}

// StockWorkbook writes the roster rows as a single-sheet workbook to w
func (a *Assembler) StockWorkbook(w io.Writer, units []*models.StockUnit) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := a.fillStockSheet(f, units); err != nil {
		return a.fail("stock workbook", err)
	}
	if err := f.Write(w); err != nil {
		return a.fail("stock workbook", err)
	}
	return nil
}

func (a *Assembler) fillStockSheet(f *excelize.File, units []*models.StockUnit) error {
	if err := f.SetSheetName(f.GetSheetName(0), stockSheet); err != nil {
		return err
	}

	c := a.Palette.Colors()
	head, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{strings.TrimPrefix(c.Primary.String(), "#")}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	for i, col := range workbookColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(stockSheet, cell, col.Title); err != nil {
			return err
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(stockSheet, name, name, col.Width); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(workbookColumns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(stockSheet, "A1", last, head); err != nil {
		return err
	}
	if err := f.SetPanes(stockSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	for i, u := range units {
		var price any
		if u.PurchasePrice.Valid {
			price = u.PurchasePrice.Decimal.InexactFloat64()
		}
		var loanDate any
		if u.LoanDate.Valid {
			loanDate = format.ShortDate(u.LoanDate.Time)
		}
		values := []any{
			i + 1, u.Name, u.Brand, u.Model, u.SerialNumber, u.AssetTag, u.Type,
			u.CategoryLabel(), models.StatusOf(u.Status).Label, models.ConditionLabel(u.Condition),
			u.Location, loanDate, u.Notes(), price,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(stockSheet, cell, &values); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return nil
}
