package handlers

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Christosun/flotech-report-system/db/kvdb/impls/memory"
	"github.com/Christosun/flotech-report-system/db/sqldb"
	"github.com/Christosun/flotech-report-system/db/sqldb/impls/sqlite"
	"github.com/Christosun/flotech-report-system/documents"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/responses"
	"github.com/Christosun/flotech-report-system/routing"
	"github.com/Christosun/flotech-report-system/sec"
	"github.com/Christosun/flotech-report-system/stores"
	"github.com/Christosun/flotech-report-system/throttle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)

const (
	adminEmail = "admin@flotech.co.id"
	adminPW    = "rahasia123"
)

type testEnv struct {
	api     *API
	handler http.Handler
	kv      *memory.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	c := &sqlite.Client{Conf: &sqldb.Conf{Type: sqlite.DBType, DB: sqlite.MemoryDB}}
	require.NoError(t, c.Init())
	t.Cleanup(func() { _ = c.Close() })
	stmts, err := sqldb.LoadRawStmts(sqlite.DBType)
	require.NoError(t, err)
	require.NoError(t, stores.InitSchema(context.Background(), c, stmts))

	clock := func() time.Time { return testNow }
	st := stores.New(c, stmts, stores.WithClock(clock))
	hash, err := sec.HashPassword(adminPW)
	require.NoError(t, err)
	require.NoError(t, st.Users.Create(context.Background(),
		&models.User{Name: "Admin", Email: adminEmail, PasswordHash: hash, Role: models.RoleAdmin}))

	issuer, err := sec.NewIssuer("flotech", sec.TokenConf{Secret: strings.Repeat("k", 32)})
	require.NoError(t, err)
	issuer.Now = clock

	kv := memory.New(nil)
	kv.Now = clock
	api := &API{
		Stores:      st,
		Docs:        documents.New(documents.WithClock(clock)),
		Issuer:      issuer,
		Revocations: &sec.Revocations{KV: kv, Prefix: "flotech", Now: clock},
		LoginGuard:  &sec.LoginGuard{KV: kv, Prefix: "flotech", MaxFailures: 3, Window: 15 * time.Minute},
		Now:         clock,
	}
	return &testEnv{api: api, handler: api.Router(), kv: kv}
}

func (e *testEnv) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.MarshalWrite(&buf, body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": adminEmail, "password": adminPW})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) responses.Message {
	t.Helper()
	var m responses.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func decodeCreated(t *testing.T, rec *httptest.ResponseRecorder) created {
	t.Helper()
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c created
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	require.NotZero(t, c.ID)
	return c
}

func TestHome(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Flotech Report System Running", decodeMessage(t, rec).Message)
	assert.NotEmpty(t, rec.Header().Get(routing.RequestIDHeader))

	rec = e.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogin(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": adminEmail})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "nobody@x.id", "password": "whatever1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, msgBadCredentials, decodeMessage(t, rec).Message)

	token := e.login(t)
	rec = e.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, adminEmail, me.Email)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLoginLockout(t *testing.T) {
	e := newTestEnv(t)
	bad := map[string]string{"email": adminEmail, "password": "wrongpass"}
	for range 3 {
		rec := e.do(t, http.MethodPost, "/api/auth/login", "", bad)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": adminEmail, "password": adminPW})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, responses.CodeLocked, decodeMessage(t, rec).Code)

	// the window runs from the first failure
	e.kv.Now = func() time.Time { return testNow.Add(16 * time.Minute) }
	e.login(t)
}

func TestAuthRequired(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/api/engineer/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing Authorization Header", decodeMessage(t, rec).Message)

	rec = e.do(t, http.MethodGet, "/api/engineer/", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", decodeMessage(t, rec).Message)

	token := e.login(t)
	rec = e.do(t, http.MethodGet, "/api/engineer/", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = e.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodGet, "/api/engineer/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been revoked", decodeMessage(t, rec).Message)
}

func TestEngineers(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	rec := e.do(t, http.MethodPost, "/api/engineer/create", token, map[string]string{"employee_id": "FL-01"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := map[string]string{"name": "Budi Santoso", "employee_id": "FL-01", "position": "Field Engineer"}
	id := decodeCreated(t, e.do(t, http.MethodPost, "/api/engineer/create", token, body)).ID

	rec = e.do(t, http.MethodPost, "/api/engineer/create", token, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgEmployeeIDTaken, decodeMessage(t, rec).Message)

	rec = e.do(t, http.MethodPost, "/api/engineer/signature/"+itoa(id), token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = e.do(t, http.MethodPost, "/api/engineer/signature/"+itoa(id), token,
		map[string]string{"signature_data": "data:image/png;base64,AAAA"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/engineer/"+itoa(id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "data:image/png;base64,AAAA")

	rec = e.do(t, http.MethodGet, "/api/engineer/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodDelete, "/api/engineer/delete/"+itoa(id), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodGet, "/api/engineer/"+itoa(id), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportPDF(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	rec := e.do(t, http.MethodPost, "/api/report/create", token, map[string]any{
		"report_number": "SR-001",
		"report_type":   "Calibration",
		"client_name":   "PT Air",
		"report_date":   "01/03/2025",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/report/create", token, map[string]any{
		"report_number": "SR-001",
		"report_type":   "Calibration",
		"client_name":   "PT Air",
		"report_date":   "2025-03-01",
		"data_json":     map[string]any{"location": "Cikarang", "analysis": "OK"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var rc reportCreated
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rc))

	rec = e.do(t, http.MethodPost, "/api/report/images/"+itoa(rc.ReportID), token, map[string]any{
		"images": []map[string]string{{"file_path": "../etc/passwd"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// no engineer assigned still renders
	rec = e.do(t, http.MethodGet, "/api/report/pdf/"+itoa(rc.ReportID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, responses.ContentTypePDF, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), documents.ReportFilename(rc.ReportID))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = e.do(t, http.MethodGet, "/api/report/pdf/"+itoa(rc.ReportID)+"?preview=1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "inline")

	rec = e.do(t, http.MethodGet, "/api/report/pdf/999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOnsite(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	id := decodeCreated(t, e.do(t, http.MethodPost, "/api/onsite/create", token, map[string]any{
		"report_number":      "OS/2025/001",
		"visit_date":         "2025-03-01",
		"client_company":     "PT Air",
		"customer_signature": "data:image/png;base64,AAAA",
	})).ID

	rec := e.do(t, http.MethodGet, "/api/onsite/list", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "base64")

	rec = e.do(t, http.MethodPut, "/api/onsite/update/"+itoa(id), token, map[string]any{"findings": "Seal bocor"})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodPut, "/api/onsite/update/999", token, map[string]any{"findings": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/onsite/pdf/preview/"+itoa(id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "inline")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "OnsiteReport_")
}

func TestQuotations(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	body := map[string]any{
		"quotation_number": "Q-2025-001",
		"customer_name":    "Sari",
		"customer_company": "PT Air",
		"items":            []map[string]any{{"description": "Flowmeter", "qty": 2, "unit_price": 1500000}},
	}
	id := decodeCreated(t, e.do(t, http.MethodPost, "/api/quotation/create", token, body)).ID

	rec := e.do(t, http.MethodPost, "/api/quotation/create", token, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgQuotationNumberUsed, decodeMessage(t, rec).Message)

	rec = e.do(t, http.MethodPut, "/api/quotation/status/"+itoa(id), token, map[string]string{"status": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = e.do(t, http.MethodPut, "/api/quotation/status/"+itoa(id), token, map[string]string{"status": "sent"})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodPut, "/api/quotation/status/999", token, map[string]string{"status": "sent"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/quotation/detail/"+itoa(id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var q models.Quotation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	assert.Equal(t, "sent", q.Status)

	rec = e.do(t, http.MethodGet, "/api/quotation/pdf/"+itoa(id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Quotation_Q-2025-001.pdf")
}

func TestHandovers(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	id := decodeCreated(t, e.do(t, http.MethodPost, "/api/surat/create", token, map[string]any{
		"surat_number": "ST/001/III/2025",
		"surat_date":   "2025-03-01",
		"barang_items": []map[string]any{{"nama_barang": "Flowmeter", "jumlah": 1}},
	})).ID

	rec := e.do(t, http.MethodGet, "/api/surat/detail/"+itoa(id), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/surat/pdf/"+itoa(id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	rec = e.do(t, http.MethodDelete, "/api/surat/delete/"+itoa(id), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodDelete, "/api/surat/delete/"+itoa(id), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStockExport(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	rec := e.do(t, http.MethodGet, "/api/stock/pdf/export", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgNoStockMatch, decodeMessage(t, rec).Message)

	rec = e.do(t, http.MethodPost, "/api/stock/create", token, map[string]any{"brand": "Krohne"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	decodeCreated(t, e.do(t, http.MethodPost, "/api/stock/create", token, map[string]any{
		"name": "Ultrasonic Flowmeter", "brand": "Krohne", "category": "demo", "status": "on_loan",
	}))
	decodeCreated(t, e.do(t, http.MethodPost, "/api/stock/create", token, map[string]any{
		"name": "Pressure Gauge", "category": "stock",
	}))

	rec = e.do(t, http.MethodGet, "/api/stock/list", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var units []models.StockUnit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &units))
	assert.Len(t, units, 2)

	rec = e.do(t, http.MethodGet, "/api/stock/pdf/export?category=stock&status=on_loan", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/stock/pdf/export?category=demo", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "LaporanStock_DemoUnit_SemuaStatus_")

	rec = e.do(t, http.MethodGet, "/api/stock/xlsx/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, responses.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestPDFThrottle(t *testing.T) {
	e := newTestEnv(t)
	bs := throttle.NewBucketStore[string](context.Background(), time.Minute, time.Hour)
	bs.Now = func() time.Time { return testNow }
	require.NoError(t, bs.SetBucketGroup(ThrottlePDF, throttle.BucketConf{Burst: 1, Increment: 1, PeriodMS: 60000}))
	e.api.Throttle = bs
	e.handler = e.api.Router()
	token := e.login(t)

	rec := e.do(t, http.MethodGet, "/api/report/pdf/1", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = e.do(t, http.MethodGet, "/api/report/pdf/1", token, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
