package documents

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/Christosun/flotech-report-system/format"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/nullable"
	"github.com/Christosun/flotech-report-system/pdfs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 11, G: 61, B: 145, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func dataURI(raw []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
}

func newTestAssembler(t *testing.T, files map[string][]byte) (*Assembler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	a := New(
		WithClock(func() time.Time { return testNow }),
		WithLogger(zap.New(core)),
		WithFiles(func(path string) ([]byte, error) {
			if raw, ok := files[path]; ok {
				return raw, nil
			}
			return nil, os.ErrNotExist
		}),
	)
	return a, logs
}

func num(s string) models.Number {
	return models.NumberOf(decimal.RequireFromString(s))
}

func fixtureItems() models.QuotationItems {
	return models.QuotationItems{
		{Description: "Flowmeter", Qty: num("2"), Unit: "pcs", UnitPrice: num("100000"), Discount: num("0")},
		{Description: "Transmitter", Brand: "Rosemount", Model: "3051", Qty: num("1"), Unit: "pcs", UnitPrice: num("50000"), Discount: num("10")},
		{Description: "Kabel", Qty: num("5"), Unit: "m"},
	}
}

func fixtureQuotation() *models.Quotation {
	return &models.Quotation{
		ID:              1,
		QuotationNumber: "QT/2025/001",
		CustomerName:    "Budi",
		CustomerCompany: "PT Maju",
		CustomerEmail:   "budi@maju.co.id",
		CustomerAddress: "Jl. Sudirman 1\nJakarta",
		ProjectName:     "Upgrade Metering",
		Status:          "sent",
		ValidUntil:      nullable.DateOf(testNow.AddDate(0, 1, 0)),
		Currency:        "IDR",
		Notes:           "Harga belum termasuk ongkos kirim.",
		Terms:           "Pembayaran 30 hari.",
		Items:           fixtureItems(),
		CreatedAt:       nullable.TimeOf(testNow),
	}
}

func fixtureHandover(typ models.LetterType) *models.HandoverLetter {
	return &models.HandoverLetter{
		SuratNumber:            "BAST/001",
		SuratType:              string(typ),
		SuratDate:              nullable.DateOf(testNow),
		Perihal:                "Serah terima unit demo",
		PihakPertamaNama:       "Andi",
		PihakPertamaJabatan:    "Engineer",
		PihakPertamaPerusahaan: "PT Flotech Controls Indonesia",
		PihakKeduaNama:         "Sari",
		PihakKeduaPerusahaan:   "PT Maju",
		PihakKeduaAlamat:       "Jl. Sudirman 1",
		BarangItems: models.HandoverItems{
			{No: "1", NamaBarang: "Flowmeter", Jumlah: "1", Satuan: "unit"},
			{NamaBarang: "Kabel", Jumlah: "10", Satuan: "m", Keterangan: "bekas"},
		},
		Catatan: "Barang dalam kondisi baik.",
	}
}

func fixtureEngineer(sig string) *models.Engineer {
	return &models.Engineer{ID: 3, Name: "Rizky", EmployeeID: "FLO-07", Position: "Field Engineer", SignatureData: sig}
}

func fixtureUnits() []*models.StockUnit {
	return []*models.StockUnit{
		{ID: 1, Name: "Ultrasonic Flowmeter", Brand: "Siemens", Category: models.CategoryDemo, Status: models.StockOnLoan, Condition: "good", LoanTo: "PT Maju"},
		{ID: 2, Name: "Pressure Gauge", Brand: "WIKA", Category: models.CategoryStock, Status: models.StockAvailable},
		{ID: 3, Name: "Level Sensor", Category: models.CategoryStock, Status: "lost"},
	}
}

// checkWidths walks the block tree and asserts every container fills the width it was given
func checkWidths(t *testing.T, b pdfs.Block, alloc float64) {
	t.Helper()
	switch v := b.(type) {
	case *pdfs.RowGroup:
		assert.InDelta(t, alloc, v.Width(), pdfs.Epsilon)
		var sum float64
		for _, w := range v.Widths() {
			sum += w
		}
		assert.InDelta(t, v.Width(), sum, pdfs.Epsilon)
		require.Equal(t, len(v.Widths()), v.Len())
		for i := range v.Len() {
			checkWidths(t, v.Child(i), v.Widths()[i])
		}
	case *pdfs.Stack:
		assert.InDelta(t, alloc, v.Width(), pdfs.Epsilon)
		for _, r := range v.Rows() {
			checkWidths(t, r, v.Width())
		}
	case *pdfs.Table:
		assert.InDelta(t, alloc, v.Width(), pdfs.Epsilon)
		for _, r := range append(v.HeadRows(), v.BodyRows()...) {
			checkWidths(t, r, v.Width())
		}
	default:
		if w, _, ok := pdfs.Footprint(b); ok {
			assert.LessOrEqual(t, w, alloc+pdfs.Epsilon)
		}
	}
}

func checkSheet(t *testing.T, s *sheet) {
	t.Helper()
	require.NoError(t, s.err)
	require.NotEmpty(t, s.doc.Blocks)
	for _, b := range s.doc.Blocks {
		checkWidths(t, b, s.doc.Page.UsableWidth())
	}
}

func TestComputeTotalsFixture(t *testing.T) {
	totals := ComputeTotals(fixtureItems())
	assert.Equal(t, "245000", totals.Subtotal.String())
	assert.Equal(t, "26950", totals.Tax.String())
	assert.Equal(t, "271950", totals.Total.String())
}

func TestComputeTotalsRoundsOnlyWhenPrinted(t *testing.T) {
	totals := ComputeTotals(models.QuotationItems{
		{Description: "Seal", Qty: num("1"), UnitPrice: num("9"), Discount: num("50")},
	})
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("4.5")), totals.Subtotal.String())
	assert.True(t, totals.Tax.Equal(decimal.RequireFromString("0.495")), totals.Tax.String())
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("4.995")), totals.Total.String())

	assert.Equal(t, "Rp 5", format.Rupiah(totals.Subtotal))
	assert.Equal(t, "Rp 0", format.Rupiah(totals.Tax))
	assert.Equal(t, "Rp 5", format.Rupiah(totals.Total))

	totals = ComputeTotals(models.QuotationItems{
		{Description: "Gasket", Qty: num("3"), UnitPrice: num("1250.50"), Discount: num("2.5")},
	})
	// 3 × 1250.50 × 0.975 = 3657.7125; PPN 402.348375; total 4060.060875
	assert.Equal(t, "Rp 3.658", format.Rupiah(totals.Subtotal))
	assert.Equal(t, "Rp 402", format.Rupiah(totals.Tax))
	assert.Equal(t, "Rp 4.060", format.Rupiah(totals.Total))
}

func TestQuotationRows(t *testing.T) {
	items := fixtureItems()
	items = append(items, models.QuotationItem{Description: "Jasa", Qty: num("0"), UnitPrice: num("75000")})
	rows := quotationRows(items)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"1", "Flowmeter", "—", "2", "pcs", "Rp 100.000", "—", "Rp 200.000"}, rows[0])
	assert.Equal(t, "Rosemount / 3051", rows[1][2])
	assert.Equal(t, "10%", rows[1][6])
	assert.Equal(t, "Rp 45.000", rows[1][7])
	assert.Equal(t, "—", rows[2][6], "absent discount")
	assert.Equal(t, "0", rows[3][3], "zero quantity rows are kept")
	assert.Equal(t, "Rp 0", rows[3][7])
}

func TestEveryRowFillsUsableWidth(t *testing.T) {
	raw := pngBytes(t, 60, 30)
	a, _ := newTestAssembler(t, map[string][]byte{"uploads/1.png": raw})
	a.Logo = pngBytes(t, 200, 60)

	report := &models.Report{
		ID: 9, ReportNumber: "SR-9", ReportType: "Troubleshooting", ClientName: "PT Maju",
		ReportDate: nullable.DateOf(testNow), Status: "final",
		Data: models.DataFields{
			{Key: "problem", Value: "Reading drifts"},
			{Key: "diagnosis", Value: "Loose grounding"},
			{Key: "weather", Value: "Rain"},
		},
		Images: []*models.ReportImage{
			{ID: 1, FilePath: "uploads/1.png", Caption: "Before"},
			{ID: 2, FilePath: "uploads/2.png"},
			{ID: 3, FilePath: "uploads/1.png"},
		},
	}
	service, err := a.serviceSheet(context.Background(), report, fixtureEngineer(dataURI(raw)))
	require.NoError(t, err)

	onsite := &models.OnsiteReport{
		ReportNumber: "OS-1", ClientName: "Budi", ClientCompany: "PT Maju",
		EquipmentTag: "FT-101", WorkPerformed: "Recalibrated", Engineer: fixtureEngineer(""),
	}

	sheets := map[string]*sheet{
		"service":   service,
		"onsite":    a.onsiteSheet(onsite),
		"quotation": a.quotationSheet(fixtureQuotation()),
		"quotation without validity": a.quotationSheet(func() *models.Quotation {
			q := fixtureQuotation()
			q.ValidUntil = nullable.Date{}
			return q
		}()),
		"serah":     a.handoverSheet(fixtureHandover(models.LetterSerah)),
		"terima":    a.handoverSheet(fixtureHandover(models.LetterTerima)),
		"roster":    a.rosterSheet(fixtureUnits(), models.ParseStockFilter("all", "")),
	}
	for name, s := range sheets {
		t.Run(name, func(t *testing.T) {
			checkSheet(t, s)
		})
	}
}

func findSignatureRow(t *testing.T, s *sheet) *pdfs.RowGroup {
	t.Helper()
	var found *pdfs.RowGroup
	for _, b := range s.doc.Blocks {
		rg, ok := b.(*pdfs.RowGroup)
		if !ok || rg.Len() == 0 {
			continue
		}
		if st, ok := rg.Child(0).(*pdfs.Stack); ok && st.Len() > 2 {
			if _, _, ok := pdfs.Footprint(st.Rows()[2]); ok {
				found = rg
			}
		}
	}
	require.NotNil(t, found, "no signature row")
	return found
}

func TestAbsentSignaturesShareFootprint(t *testing.T) {
	a, logs := newTestAssembler(t, nil)
	s := a.handoverSheet(fixtureHandover(models.LetterSerah))
	checkSheet(t, s)

	row := findSignatureRow(t, s)
	require.Equal(t, 3, row.Len(), "two columns and the gap")
	left := row.Child(0).(*pdfs.Stack)
	right := row.Child(2).(*pdfs.Stack)
	assert.Equal(t, left.Len(), right.Len())

	lw, lh, ok := pdfs.Footprint(left.Rows()[2])
	require.True(t, ok)
	rw, rh, ok := pdfs.Footprint(right.Rows()[2])
	require.True(t, ok)
	assert.Equal(t, lw, rw)
	assert.Equal(t, lh, rh)
	assert.InDelta(t, sigW, lw, pdfs.Epsilon)
	assert.InDelta(t, sigH, lh, pdfs.Epsilon)

	assert.Zero(t, logs.FilterMessage("image replaced by placeholder").Len())
}

func TestMalformedSignatureIsLoggedAndKeepsFootprint(t *testing.T) {
	a, logs := newTestAssembler(t, nil)
	good := dataURI(pngBytes(t, 300, 100))
	r := &models.OnsiteReport{
		ReportNumber:      "OS-2",
		ClientName:        "Budi",
		CustomerSignature: "data:image/png;base64,bm90IGFuIGltYWdl",
		Engineer:          fixtureEngineer(good),
	}
	s := a.onsiteSheet(r)
	checkSheet(t, s)

	row := findSignatureRow(t, s)
	eng := row.Child(0).(*pdfs.Stack)
	cust := row.Child(1).(*pdfs.Stack)
	assert.Equal(t, eng.Len(), cust.Len())
	_, isImage := eng.Rows()[2].(*pdfs.ImageBlock)
	assert.True(t, isImage)
	_, isBlank := cust.Rows()[2].(*pdfs.Blank)
	assert.True(t, isBlank)

	ew, eh, _ := pdfs.Footprint(eng.Rows()[2])
	cw, ch, _ := pdfs.Footprint(cust.Rows()[2])
	assert.Equal(t, ew, cw)
	assert.Equal(t, eh, ch)

	warned := logs.FilterMessage("image replaced by placeholder")
	require.Equal(t, 1, warned.Len())
	assert.Equal(t, zapcore.WarnLevel, warned.All()[0].Level)
}

func TestRenderIsByteIdentical(t *testing.T) {
	a, _ := newTestAssembler(t, nil)
	first, err := a.Quotation(fixtureQuotation())
	require.NoError(t, err)
	second, err := a.Quotation(fixtureQuotation())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(first, []byte("%PDF-")))
	assert.Equal(t, first, second)

	letter, err := a.HandoverLetter(fixtureHandover(models.LetterTerima))
	require.NoError(t, err)
	again, err := a.HandoverLetter(fixtureHandover(models.LetterTerima))
	require.NoError(t, err)
	assert.Equal(t, letter, again)
}

func TestServiceReportSections(t *testing.T) {
	a, logs := newTestAssembler(t, nil)
	report := &models.Report{
		ID: 4, ReportNumber: "SR-4", ReportType: "unknown",
		Data:   models.DataFields{{Key: "zeta", Value: "z"}, {Key: "scope", Value: "Kalibrasi"}, {Key: "alpha", Value: "a"}},
		Images: []*models.ReportImage{{ID: 1, FilePath: "missing.jpg"}},
	}
	s, err := a.serviceSheet(context.Background(), report, nil)
	require.NoError(t, err)
	checkSheet(t, s)
	assert.Equal(t, "SERVICE REPORT", s.doc.Title)

	var texts []string
	var leftovers *pdfs.Table
	for _, b := range s.doc.Blocks {
		switch v := b.(type) {
		case *pdfs.TextRun:
			texts = append(texts, v.Text)
		case *pdfs.Table:
			if len(v.Widths()) == 2 {
				leftovers = v
			}
		}
	}
	assert.Contains(t, texts, "Scope Pekerjaan")
	assert.Contains(t, texts, "DATA LAINNYA")
	require.NotNil(t, leftovers)
	require.Len(t, leftovers.BodyRows(), 2)
	assert.Equal(t, "Zeta", leftovers.BodyRows()[0].Child(0).(*pdfs.TextRun).Text)
	assert.Equal(t, "Alpha", leftovers.BodyRows()[1].Child(0).(*pdfs.TextRun).Text)

	assert.Equal(t, 1, logs.FilterMessage("photo replaced by placeholder").Len())
}

func TestServiceReportCanceled(t *testing.T) {
	a, _ := newTestAssembler(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report := &models.Report{ID: 1, Images: []*models.ReportImage{{FilePath: "a.png"}}}
	_, err := a.ServiceReport(ctx, report, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLayoutErrorsWrapGeneration(t *testing.T) {
	a, logs := newTestAssembler(t, nil)
	s := a.newSheet(portraitA4, "broken")
	s.add(s.row(s.w, []float64{10, 10}, pdfs.Space(1)))
	_, err := s.render("broken")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, pdfs.ErrLayoutContract)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestRowRejectsShortWidths(t *testing.T) {
	a, _ := newTestAssembler(t, nil)
	s := a.newSheet(portraitA4, "short")
	body := s.style(pdfs.RoleBody)
	s.row(s.w, pdfs.Scale(pdfs.Cm, 3, 5), pdfs.Text(body, "a"), pdfs.Text(body, "b"))
	assert.ErrorIs(t, s.err, pdfs.ErrLayoutContract)

	s = a.newSheet(portraitA4, "table")
	s.table(pdfs.Scale(pdfs.Cm, 3, 5.5, 3, 5))
	assert.ErrorIs(t, s.err, pdfs.ErrLayoutContract)

	s = a.newSheet(portraitA4, "nested")
	s.row(s.w, []float64{s.w / 2, s.w / 2}, s.stack(s.w/3), pdfs.Text(body, "b"))
	assert.ErrorIs(t, s.err, pdfs.ErrLayoutContract)
}

func TestMetaBandWidensLastKeptValue(t *testing.T) {
	a, _ := newTestAssembler(t, nil)
	s := a.newSheet(portraitA4, "meta")
	rg := s.metaBand([]pair{
		{Label: "Berlaku s/d", Value: ""},
		{Label: "Status", Value: "SENT", Required: true},
	}, 3, 5, 3, 6)
	require.NoError(t, s.err)
	require.Equal(t, 2, rg.Len())
	assert.InDelta(t, 3*pdfs.Cm, rg.Widths()[0], pdfs.Epsilon)
	assert.InDelta(t, 14*pdfs.Cm, rg.Widths()[1], pdfs.WidthSlack)

	rg = s.metaBand([]pair{
		{Label: "Nomor", Value: "", Required: true},
		{Label: "Catatan", Value: ""},
	}, 3, 5, 3, 6)
	require.NoError(t, s.err)
	require.Equal(t, 2, rg.Len())
	assert.InDelta(t, 14*pdfs.Cm, rg.Widths()[1], pdfs.WidthSlack)
}

func TestTableColumnsFillTheirPages(t *testing.T) {
	sum := func(cols []column) float64 {
		var w float64
		for _, c := range cols {
			w += c.Width * pdfs.Cm
		}
		return w
	}
	assert.InDelta(t, portraitA4.UsableWidth(), sum(quotationColumns), pdfs.WidthSlack)
	assert.InDelta(t, letterA4.UsableWidth(), sum(handoverColumns), pdfs.WidthSlack)
	assert.InDelta(t, rosterA4.UsableWidth(), sum(rosterColumns), pdfs.WidthSlack)
}

func TestLabelsAreRuneSafe(t *testing.T) {
	assert.Equal(t, "Action Taken", keyLabel("action_taken"))
	assert.Equal(t, "Éclairage Zone", keyLabel("éclairage_zone"))
	assert.Equal(t, "Ölçüm Değeri", keyLabel("ölçüm-değeri"))
	assert.True(t, utf8.ValidString(keyLabel("ñandú")))
	assert.Equal(t, "Commissioning", variantLabel(models.ReportCommissioning))
	assert.Equal(t, "", upperFirst(""))
}

func TestFilenames(t *testing.T) {
	a, _ := newTestAssembler(t, nil)
	assert.Equal(t, "report_12.pdf", ReportFilename(12))
	assert.Equal(t, "Quotation_QT-2025-001.pdf", QuotationFilename(fixtureQuotation()))
	assert.Equal(t, "Surat_BAST-001.pdf", HandoverFilename(fixtureHandover(models.LetterSerah)))
	assert.Equal(t, "OnsiteReport_OS-1.pdf", OnsiteFilename(&models.OnsiteReport{ReportNumber: "OS-1"}))

	assert.Equal(t, "LaporanStock_StockDemo_SemuaStatus_20250301_0830.pdf",
		a.StockFilename(models.ParseStockFilter("", "")))
	assert.Equal(t, "LaporanStock_DemoUnit_Onloan_20250301_0830.pdf",
		a.StockFilename(models.ParseStockFilter("demo", "on_loan")))
	assert.Equal(t, "LaporanStock_Stock_Available-Inrepair_20250301_0830.xlsx",
		a.StockXLSXFilename(models.ParseStockFilter("stock", "available,in_repair")))
}

func TestHandoverWordingSwaps(t *testing.T) {
	a, _ := newTestAssembler(t, nil)
	serah := a.handoverSheet(fixtureHandover(models.LetterSerah))
	terima := a.handoverSheet(fixtureHandover(models.LetterTerima))
	assert.Equal(t, "BERITA ACARA SERAH TERIMA BARANG", serah.doc.Title)
	assert.Equal(t, "BERITA ACARA PENERIMAAN BARANG", terima.doc.Title)
	assert.Equal(t, "PIHAK PERTAMA\n(Yang Menerima)", roleLines(wordings[models.LetterTerima].FirstRole))
}

func TestStockWorkbook(t *testing.T) {
	a, _ := newTestAssembler(t, nil)
	var buf bytes.Buffer
	require.NoError(t, a.StockWorkbook(&buf, fixtureUnits()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{stockSheet}, f.GetSheetList())

	rows, err := f.GetRows(stockSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Nama Alat", rows[0][1])
	assert.Equal(t, "Ultrasonic Flowmeter", rows[1][1])
	assert.Equal(t, "On Loan", rows[1][8])
	assert.Equal(t, "lost", rows[3][8])
}

func TestStockRosterRenders(t *testing.T) {
	a, _ := newTestAssembler(t, nil)
	out, err := a.StockRoster(fixtureUnits(), models.ParseStockFilter("demo", "on_loan,available"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestLoadLogoMissingFile(t *testing.T) {
	raw, err := LoadLogo(t.TempDir() + "/nope.png")
	require.NoError(t, err)
	assert.Nil(t, raw)

	_, err = LoadLogo(t.TempDir())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, os.ErrNotExist))
}
