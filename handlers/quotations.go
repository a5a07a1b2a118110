package handlers

import (
	"net/http"
	"strings"

	"github.com/Christosun/flotech-report-system/documents"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/responses"
)

const msgQuotationNumberUsed = "Nomor quotation sudah ada"

func (a *API) listQuotations(w http.ResponseWriter, r *http.Request) {
	quotations, err := a.Stores.Quotations.List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, quotations)
}

func (a *API) quotationDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	q, err := a.Stores.Quotations.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, q)
}

func (a *API) createQuotation(w http.ResponseWriter, r *http.Request) {
	var in models.QuotationInput
	if !decode(w, r, &in) {
		return
	}
	in.QuotationNumber = strings.TrimSpace(in.QuotationNumber)
	q := in.ToQuotation(userID(r), a.now())
	if err := a.Stores.Quotations.Create(r.Context(), q); err != nil {
		writeStoreError(w, r, err, msgNotFound, msgQuotationNumberUsed)
		return
	}
	responses.EncodeWriteJSON(w, http.StatusCreated, created{Message: "Quotation created", ID: q.ID})
}

type statusBody struct {
	Status string `json:"status"`
}

func (a *API) setQuotationStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body statusBody
	if !decode(w, r, &body) {
		return
	}
	if body.Status = strings.TrimSpace(body.Status); body.Status == "" {
		badRequest(w, "status is required")
		return
	}
	if err := a.Stores.Quotations.SetStatus(r.Context(), id, body.Status); err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.WriteMessage(w, http.StatusOK, "Status updated")
}

func (a *API) deleteQuotation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.Stores.Quotations.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.WriteMessage(w, http.StatusOK, "Deleted")
}

func (a *API) quotationPDF(attachment bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		q, err := a.Stores.Quotations.Get(r.Context(), id)
		if err != nil {
			writeStoreError(w, r, err, msgNotFound, "")
			return
		}
		out, err := a.Docs.Quotation(q)
		if err != nil {
			writeStoreError(w, r, err, msgNotFound, "")
			return
		}
		writePDF(w, documents.QuotationFilename(q), attachment, out)
	}
}
