// Package handlers serves the Flotech JSON API and the document downloads.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Christosun/flotech-report-system/documents"
	"github.com/Christosun/flotech-report-system/requests"
	"github.com/Christosun/flotech-report-system/responses"
	"github.com/Christosun/flotech-report-system/routing"
	"github.com/Christosun/flotech-report-system/sec"
	"github.com/Christosun/flotech-report-system/stores"
	"github.com/Christosun/flotech-report-system/throttle"
	"go.uber.org/zap"
)

// Throttle bucket groups keyed by client IP
const (
	ThrottleLogin = "login"
	ThrottlePDF   = "pdf"
)

// API holds everything the handlers need. Throttle and LoginGuard are optional.
type API struct {
	Stores      *stores.Stores
	Docs        *documents.Assembler
	Issuer      *sec.Issuer
	Revocations *sec.Revocations
	LoginGuard  *sec.LoginGuard
	Throttle    *throttle.BucketStore[string]
	Now         func() time.Time
}

func (a *API) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// Router registers every route and wraps the mux with request ids, access logs and panic recovery
func (a *API) Router() http.Handler {
	router := routing.NewBaseRouter()
	auth := &sec.Authenticator{Issuer: a.Issuer, Revocations: a.Revocations}
	loginLimit := a.limit(ThrottleLogin)
	pdfLimit := a.limit(ThrottlePDF)

	router.HandleFunc("GET /{$}", home)
	router.Group("/api", func(api *routing.RouteGroup) {
		api.Group("/auth", func(g *routing.RouteGroup) {
			g.HandleFunc("POST /login", a.login, loginLimit...)
			g.HandleFunc("POST /logout", a.logout, auth)
			g.HandleFunc("GET /me", a.me, auth)
		})
		api.Group("/engineer", func(g *routing.RouteGroup) {
			g.HandleFunc("GET /{$}", a.listEngineers)
			g.HandleFunc("GET /{id}", a.engineerDetail)
			g.HandleFunc("POST /create", a.createEngineer)
			g.HandleFunc("PUT /update/{id}", a.updateEngineer)
			g.HandleFunc("POST /signature/{id}", a.setEngineerSignature)
			g.HandleFunc("DELETE /delete/{id}", a.deleteEngineer)
		}, auth)
		api.Group("/report", func(g *routing.RouteGroup) {
			g.HandleFunc("GET /list", a.listReports)
			g.HandleFunc("GET /detail/{id}", a.reportDetail)
			g.HandleFunc("POST /create", a.createReport)
			g.HandleFunc("POST /images/{id}", a.addReportImages)
			g.HandleFunc("DELETE /delete/{id}", a.deleteReport)
			g.HandleFunc("GET /pdf/{id}", a.reportPDF, pdfLimit...)
		}, auth)
		api.Group("/onsite", func(g *routing.RouteGroup) {
			g.HandleFunc("GET /list", a.listOnsite)
			g.HandleFunc("GET /detail/{id}", a.onsiteDetail)
			g.HandleFunc("POST /create", a.createOnsite)
			g.HandleFunc("PUT /update/{id}", a.updateOnsite)
			g.HandleFunc("DELETE /delete/{id}", a.deleteOnsite)
			g.HandleFunc("GET /pdf/{id}", a.onsitePDF(true), pdfLimit...)
			g.HandleFunc("GET /pdf/preview/{id}", a.onsitePDF(false), pdfLimit...)
		}, auth)
		api.Group("/quotation", func(g *routing.RouteGroup) {
			g.HandleFunc("GET /list", a.listQuotations)
			g.HandleFunc("GET /detail/{id}", a.quotationDetail)
			g.HandleFunc("POST /create", a.createQuotation)
			g.HandleFunc("PUT /status/{id}", a.setQuotationStatus)
			g.HandleFunc("DELETE /delete/{id}", a.deleteQuotation)
			g.HandleFunc("GET /pdf/{id}", a.quotationPDF(true), pdfLimit...)
			g.HandleFunc("GET /pdf/preview/{id}", a.quotationPDF(false), pdfLimit...)
		}, auth)
		api.Group("/surat", func(g *routing.RouteGroup) {
			g.HandleFunc("GET /list", a.listHandovers)
			g.HandleFunc("GET /detail/{id}", a.handoverDetail)
			g.HandleFunc("POST /create", a.createHandover)
			g.HandleFunc("PUT /update/{id}", a.updateHandover)
			g.HandleFunc("DELETE /delete/{id}", a.deleteHandover)
			g.HandleFunc("GET /pdf/{id}", a.handoverPDF(true), pdfLimit...)
			g.HandleFunc("GET /pdf/preview/{id}", a.handoverPDF(false), pdfLimit...)
		}, auth)
		api.Group("/stock", func(g *routing.RouteGroup) {
			g.HandleFunc("GET /list", a.listStock)
			g.HandleFunc("GET /detail/{id}", a.stockDetail)
			g.HandleFunc("POST /create", a.createStock)
			g.HandleFunc("PUT /update/{id}", a.updateStock)
			g.HandleFunc("DELETE /delete/{id}", a.deleteStock)
			g.HandleFunc("GET /pdf/export", a.stockPDF, pdfLimit...)
			g.HandleFunc("GET /xlsx/export", a.stockXLSX, pdfLimit...)
		}, auth)
	})

	return routing.RequestIDWrapper(routing.AccessLogWrapper(routing.RecoverWrapper(router)))
}

// limit returns the throttle wrapper of group, or none when throttling is off
func (a *API) limit(group string) []routing.HandlerWrapper {
	if a.Throttle == nil {
		return nil
	}
	if _, ok := a.Throttle.GetBucketGroup(group); !ok {
		return nil
	}
	return []routing.HandlerWrapper{&throttle.LimitWrapper[string]{
		Store: a.Throttle,
		Group: group,
		Key:   requests.ClientIP,
	}}
}

func home(w http.ResponseWriter, _ *http.Request) {
	responses.WriteMessage(w, http.StatusOK, "Flotech Report System Running")
}

// created is the body of a 201 answer
type created struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// pathID answers 400 itself when the id wildcard is malformed
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := requests.PathInt64(r, "id")
	if err != nil {
		responses.WriteError(w, http.StatusBadRequest, err.Error(), responses.CodeInvalidInput)
		return 0, false
	}
	return id, true
}

// decode answers 400 itself when the body is not the expected JSON
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := requests.DecodeJSON(w, r, v); err != nil {
		responses.WriteError(w, http.StatusBadRequest, "Invalid JSON body", responses.CodeInvalidInput)
		return false
	}
	return true
}

// userID is the id of the authenticated user, 0 when unknown
func userID(r *http.Request) int64 {
	claims, ok := sec.ClaimsFrom(r.Context())
	if !ok {
		return 0
	}
	id, err := claims.UserID()
	if err != nil {
		return 0
	}
	return id
}

func badRequest(w http.ResponseWriter, msg string) {
	responses.WriteError(w, http.StatusBadRequest, msg, responses.CodeInvalidInput)
}

// writeStoreError maps store and generation errors to a status code.
// notFound and duplicate are the messages of the variant.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, notFound, duplicate string) {
	switch {
	case errors.Is(err, stores.ErrNotFound):
		responses.WriteError(w, http.StatusNotFound, notFound, responses.CodeNotFound)
		return
	case errors.Is(err, stores.ErrDuplicate):
		responses.WriteError(w, http.StatusBadRequest, duplicate, responses.CodeDuplicate)
		return
	}
	fields := []zap.Field{
		zap.String("request_id", routing.RequestIDFrom(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	}
	switch {
	case errors.Is(err, context.Canceled):
		zap.L().Info("request canceled", fields...)
		responses.WriteError(w, http.StatusServiceUnavailable, "Request canceled", responses.CodeInternal)
	case errors.Is(err, documents.ErrGeneration):
		zap.L().Error("document generation failed", fields...)
		responses.WriteError(w, http.StatusInternalServerError, "Failed to generate document", responses.CodeInternal)
	default:
		zap.L().Error("request failed", fields...)
		responses.WriteError(w, http.StatusInternalServerError, "internal server error", responses.CodeInternal)
	}
}
