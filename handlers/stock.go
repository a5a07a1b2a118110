package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/responses"
)

const msgNoStockMatch = "Tidak ada data yang sesuai filter"

func (a *API) listStock(w http.ResponseWriter, r *http.Request) {
	units, err := a.Stores.Stock.Find(r.Context(), models.StockFilter{Category: models.CategoryAll}, "-created_at")
	if err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, units)
}

func (a *API) stockDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	u, err := a.Stores.Stock.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, u)
}

func (a *API) createStock(w http.ResponseWriter, r *http.Request) {
	var patch models.StockPatch
	if !decode(w, r, &patch) {
		return
	}
	if patch.Name == nil || strings.TrimSpace(*patch.Name) == "" {
		badRequest(w, "name is required")
		return
	}
	u := &models.StockUnit{}
	patch.Apply(u, a.now())
	if err := a.Stores.Stock.Create(r.Context(), u); err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusCreated, created{Message: "Unit created", ID: u.ID})
}

func (a *API) updateStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch models.StockPatch
	if !decode(w, r, &patch) {
		return
	}
	ctx := r.Context()
	u, err := a.Stores.Stock.Get(ctx, id)
	if err == nil {
		patch.Apply(u, a.now())
		err = a.Stores.Stock.Update(ctx, u)
	}
	if err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.WriteMessage(w, http.StatusOK, "Updated")
}

func (a *API) deleteStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.Stores.Stock.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.WriteMessage(w, http.StatusOK, "Deleted")
}

// filteredStock answers 404 itself when nothing matches ?category=&status=
func (a *API) filteredStock(w http.ResponseWriter, r *http.Request) ([]*models.StockUnit, models.StockFilter, bool) {
	q := r.URL.Query()
	f := models.ParseStockFilter(q.Get("category"), q.Get("status"))
	units, err := a.Stores.Stock.Find(r.Context(), f, "name")
	if err != nil {
		writeStoreError(w, r, err, msgNoStockMatch, "")
		return nil, f, false
	}
	if len(units) == 0 {
		responses.WriteError(w, http.StatusNotFound, msgNoStockMatch, responses.CodeNotFound)
		return nil, f, false
	}
	return units, f, true
}

func (a *API) stockPDF(w http.ResponseWriter, r *http.Request) {
	units, f, ok := a.filteredStock(w, r)
	if !ok {
		return
	}
	out, err := a.Docs.StockRoster(units, f)
	if err != nil {
		writeStoreError(w, r, err, msgNoStockMatch, "")
		return
	}
	responses.WritePDFAttachment(w, a.Docs.StockFilename(f), out)
}

func (a *API) stockXLSX(w http.ResponseWriter, r *http.Request) {
	units, f, ok := a.filteredStock(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := a.Docs.StockWorkbook(&buf, units); err != nil {
		writeStoreError(w, r, err, msgNoStockMatch, "")
		return
	}
	responses.WriteDocument(w, responses.ContentTypeXLSX, a.Docs.StockXLSXFilename(f), true, buf.Bytes())
}
