package stores

import (
	"context"
	"testing"
	"time"

	"github.com/Christosun/flotech-report-system/db/sqldb"
	"github.com/Christosun/flotech-report-system/db/sqldb/impls/sqlite"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/nullable"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)

func newTestStores(t *testing.T) (*Stores, *sqlite.Client) {
	t.Helper()
	c := &sqlite.Client{Conf: &sqldb.Conf{Type: sqlite.DBType, DB: sqlite.MemoryDB}}
	require.NoError(t, c.Init())
	t.Cleanup(func() { _ = c.Close() })

	stmts, err := sqldb.LoadRawStmts(sqlite.DBType)
	require.NoError(t, err)
	require.NoError(t, InitSchema(context.Background(), c, stmts))
	// idempotent
	require.NoError(t, InitSchema(context.Background(), c, stmts))

	return New(c, stmts, WithClock(func() time.Time { return testNow })), c
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStores(t)

	u := &models.User{Name: "Admin", Email: " Admin@Flotech.co.id ", PasswordHash: "x"}
	require.NoError(t, s.Users.Create(ctx, u))
	assert.NotZero(t, u.ID)
	assert.Equal(t, models.RoleEngineer, u.Role)

	got, err := s.Users.GetByEmail(ctx, "ADMIN@flotech.co.id")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.CreatedAt.Time.Equal(testNow))

	err = s.Users.Create(ctx, &models.User{Email: "admin@flotech.co.id", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = s.Users.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, sqldb.ErrNoRows)
}

func TestEngineers(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStores(t)

	budi := &models.Engineer{Name: "Budi", EmployeeID: "FL-01", SignatureData: "data:image/png;base64,AAAA"}
	require.NoError(t, s.Engineers.Create(ctx, budi))
	require.NoError(t, s.Engineers.Create(ctx, &models.Engineer{Name: "Andi"}))
	require.NoError(t, s.Engineers.Create(ctx, &models.Engineer{Name: "Citra"}))

	err := s.Engineers.Create(ctx, &models.Engineer{Name: "Dup", EmployeeID: "FL-01"})
	assert.ErrorIs(t, err, ErrDuplicate)

	list, err := s.Engineers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Andi", list[0].Name)
	assert.False(t, list[0].HasSignature)
	assert.Equal(t, "Budi", list[1].Name)
	assert.True(t, list[1].HasSignature)
	assert.Empty(t, list[1].SignatureData)

	got, err := s.Engineers.Get(ctx, budi.ID)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", got.SignatureData)

	got.Position = "Senior Engineer"
	require.NoError(t, s.Engineers.Update(ctx, got))
	require.NoError(t, s.Engineers.SetSignature(ctx, budi.ID, "data:image/png;base64,BBBB"))
	got, err = s.Engineers.Get(ctx, budi.ID)
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", got.Position)
	assert.Equal(t, "data:image/png;base64,BBBB", got.SignatureData)

	require.NoError(t, s.Engineers.Delete(ctx, budi.ID))
	assert.ErrorIs(t, s.Engineers.Delete(ctx, budi.ID), ErrNotFound)
}

func TestOnsiteLinksEngineers(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStores(t)

	eng := &models.Engineer{Name: "Budi", Position: "Engineer", SignatureData: "sig"}
	require.NoError(t, s.Engineers.Create(ctx, eng))

	withEng := &models.OnsiteReport{ReportNumber: "OSR-1", EngineerID: nullable.IntOf(eng.ID), CustomerSignature: "csig"}
	require.NoError(t, s.Onsite.Create(ctx, withEng))
	require.NoError(t, s.Onsite.Create(ctx, &models.OnsiteReport{ReportNumber: "OSR-2"}))

	list, err := s.Onsite.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "OSR-2", list[0].ReportNumber)
	assert.Nil(t, list[0].Engineer)
	require.NotNil(t, list[1].Engineer)
	assert.Equal(t, "Budi", list[1].Engineer.Name)
	assert.Equal(t, models.StatusDraft, list[1].Status)

	got, err := s.Onsite.Get(ctx, withEng.ID)
	require.NoError(t, err)
	assert.Equal(t, "csig", got.CustomerSignature)
	assert.Equal(t, "sig", got.Engineer.SignatureData)

	got.EngineerID = nullable.Int{}
	got.Findings = "Loose wiring"
	require.NoError(t, s.Onsite.Update(ctx, got))
	got, err = s.Onsite.Get(ctx, withEng.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Engineer)
	assert.Equal(t, "Loose wiring", got.Findings)

	require.NoError(t, s.Onsite.Delete(ctx, withEng.ID))
	_, err = s.Onsite.Get(ctx, withEng.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportsWithImages(t *testing.T) {
	ctx := context.Background()
	s, c := newTestStores(t)

	r := &models.Report{
		ReportNumber: "SR-01",
		ReportType:   "commissioning",
		ReportDate:   nullable.DateOf(testNow),
		Status:       models.StatusDraft,
		Data:         models.DataFields{}.Set("scope", "Install").Set("notes", "ok"),
	}
	require.NoError(t, s.Reports.Create(ctx, r))
	require.NoError(t, s.Reports.AddImage(ctx, &models.ReportImage{ReportID: r.ID, FilePath: "uploads/a.jpg"}))
	require.NoError(t, s.Reports.AddImage(ctx, &models.ReportImage{ReportID: r.ID, FilePath: "uploads/b.jpg", Caption: "panel"}))

	got, err := s.Reports.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"scope", "notes"}, got.Data.Keys())
	assert.Equal(t, "2025-03-01", got.ReportDate.String())
	require.Len(t, got.Images, 2)
	assert.Equal(t, "uploads/a.jpg", got.Images[0].FilePath)
	assert.Equal(t, "panel", got.Images[1].Caption)

	list, err := s.Reports.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Images)

	require.NoError(t, s.Reports.Delete(ctx, r.ID))
	n, err := sqldb.QueryInt64(ctx, c, `SELECT COUNT(*) FROM report_images`)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestQuotations(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStores(t)

	q := &models.Quotation{
		QuotationNumber: "Q-001",
		Status:          models.StatusDraft,
		Currency:        "IDR",
		Notes:           "Harga belum termasuk ongkir",
		Items: models.QuotationItems{
			{Description: "Flowmeter", Qty: models.NumberOf(decimal.NewFromInt(2)), UnitPrice: models.NumberOf(decimal.NewFromInt(100000))},
			{Description: "Sensor", Qty: models.NumberOf(decimal.NewFromInt(1)), UnitPrice: models.NumberOf(decimal.NewFromInt(50000)), Discount: models.NumberOf(decimal.NewFromInt(10))},
		},
	}
	q.TotalAmount = q.Items.Sum()
	require.NoError(t, s.Quotations.Create(ctx, q))

	err := s.Quotations.Create(ctx, &models.Quotation{QuotationNumber: "Q-001"})
	assert.ErrorIs(t, err, ErrDuplicate)
	// numberless quotations never collide
	require.NoError(t, s.Quotations.Create(ctx, &models.Quotation{}))
	require.NoError(t, s.Quotations.Create(ctx, &models.Quotation{}))

	got, err := s.Quotations.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(245000)))
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Sensor", got.Items[1].Description)
	assert.Equal(t, "Harga belum termasuk ongkir", got.Notes)

	list, err := s.Quotations.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, item := range list {
		assert.Empty(t, item.Items)
		assert.Empty(t, item.Notes)
	}

	require.NoError(t, s.Quotations.SetStatus(ctx, q.ID, "sent"))
	got, err = s.Quotations.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "sent", got.Status)
	assert.ErrorIs(t, s.Quotations.SetStatus(ctx, 999, "sent"), ErrNotFound)
}

func TestHandovers(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStores(t)

	l := &models.HandoverLetter{
		SuratNumber:           "BAST-01",
		SuratType:             "whatever",
		PihakPertamaNama:      "Budi",
		PihakPertamaSignature: "sig1",
		BarangItems:           models.HandoverItems{{No: "1", NamaBarang: "Flowmeter", Jumlah: "2", Satuan: "unit"}},
	}
	require.NoError(t, s.Handovers.Create(ctx, l))

	got, err := s.Handovers.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.LetterSerah), got.SuratType)
	assert.Equal(t, models.StatusDraft, got.Status)
	assert.Equal(t, "sig1", got.PihakPertamaSignature)
	require.Len(t, got.BarangItems, 1)
	assert.Equal(t, "Flowmeter", got.BarangItems[0].NamaBarang.String())

	got.SuratType = "terima"
	got.PihakKeduaSignature = "sig2"
	require.NoError(t, s.Handovers.Update(ctx, got))

	list, err := s.Handovers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "terima", list[0].SuratType)
	assert.Empty(t, list[0].PihakPertamaSignature)
	assert.Empty(t, list[0].PihakKeduaSignature)
}

func TestStockFind(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStores(t)

	units := []*models.StockUnit{
		{Name: "Flowmeter", Brand: "Endress", Category: models.CategoryStock, Status: models.StockAvailable},
		{Name: "Analyzer", Brand: "ABB", Category: models.CategoryDemo, Status: models.StockOnLoan, LoanTo: "PT ABC"},
		{Name: "Analyzer", Brand: "Yokogawa", Category: models.CategoryStock, Status: models.StockInRepair},
		{Name: "Gauge", Brand: "Wika", Category: models.CategoryDemo, Status: models.StockAvailable,
			PurchasePrice: decimal.NewNullDecimal(decimal.NewFromInt(1250000))},
	}
	for _, u := range units {
		require.NoError(t, s.Stock.Create(ctx, u))
	}

	names := func(list []*models.StockUnit) []string {
		out := make([]string, len(list))
		for i, u := range list {
			out[i] = u.Name + "/" + u.Brand
		}
		return out
	}

	all, err := s.Stock.Find(ctx, models.ParseStockFilter("all", ""), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Analyzer/ABB", "Analyzer/Yokogawa", "Flowmeter/Endress", "Gauge/Wika"}, names(all))

	demo, err := s.Stock.Find(ctx, models.ParseStockFilter("demo", ""), "-name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Gauge/Wika", "Analyzer/ABB"}, names(demo))
	assert.True(t, demo[0].PurchasePrice.Decimal.Equal(decimal.NewFromInt(1250000)))

	some, err := s.Stock.Find(ctx, models.ParseStockFilter("", "available,in_repair"), "name; DROP TABLE stock_units")
	require.NoError(t, err)
	assert.Equal(t, []string{"Analyzer/Yokogawa", "Flowmeter/Endress", "Gauge/Wika"}, names(some))

	none, err := s.Stock.Find(ctx, models.ParseStockFilter("stock", "sold"), "")
	require.NoError(t, err)
	assert.Empty(t, none)

	u := all[0]
	u.Status = models.StockAvailable
	u.ReturnDate = nullable.DateOf(testNow)
	require.NoError(t, s.Stock.Update(ctx, u))
	got, err := s.Stock.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StockAvailable, got.Status)
	assert.Equal(t, "2025-03-01", got.ReturnDate.String())

	require.NoError(t, s.Stock.Delete(ctx, u.ID))
	_, err = s.Stock.Get(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpandForPgsql(t *testing.T) {
	store := sqldb.NewRawStore("pgsql")
	require.NoError(t, sqldb.LoadRawStmtsToStore(store, "pgsql", '$'))
	b := &base{stmts: store, group: "stock"}
	stmt, err := b.expand("filter", 4, 2)
	require.NoError(t, err)
	assert.Contains(t, stmt, "($1 = '' OR category = $2)")
	assert.Contains(t, stmt, "($3 = 0 OR status IN ($4, $5))")

	schema, err := store.Stmt("schema", "create")
	require.NoError(t, err)
	assert.Contains(t, schema, "BIGSERIAL")
}
