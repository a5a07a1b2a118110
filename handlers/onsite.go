package handlers

import (
	"net/http"

	"github.com/Christosun/flotech-report-system/documents"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/nullable"
	"github.com/Christosun/flotech-report-system/responses"
)

const msgNotFound = "Not found"

func (a *API) listOnsite(w http.ResponseWriter, r *http.Request) {
	reports, err := a.Stores.Onsite.List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	views := make([]models.OnsiteView, len(reports))
	for i, rep := range reports {
		views[i] = rep.View(false)
	}
	responses.EncodeWriteJSON(w, http.StatusOK, views)
}

func (a *API) onsiteDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rep, err := a.Stores.Onsite.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, rep.View(true))
}

func (a *API) createOnsite(w http.ResponseWriter, r *http.Request) {
	var patch models.OnsitePatch
	if !decode(w, r, &patch) {
		return
	}
	rep := &models.OnsiteReport{}
	patch.Apply(rep, a.now())
	if uid := userID(r); uid != 0 {
		rep.CreatedBy = nullable.IntOf(uid)
	}
	if err := a.Stores.Onsite.Create(r.Context(), rep); err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusCreated, created{Message: "Created", ID: rep.ID})
}

func (a *API) updateOnsite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch models.OnsitePatch
	if !decode(w, r, &patch) {
		return
	}
	ctx := r.Context()
	rep, err := a.Stores.Onsite.Get(ctx, id)
	if err == nil {
		patch.Apply(rep, a.now())
		err = a.Stores.Onsite.Update(ctx, rep)
	}
	if err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.WriteMessage(w, http.StatusOK, "Updated")
}

func (a *API) deleteOnsite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.Stores.Onsite.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.WriteMessage(w, http.StatusOK, "Deleted")
}

func (a *API) onsitePDF(attachment bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		rep, err := a.Stores.Onsite.Get(r.Context(), id)
		if err != nil {
			writeStoreError(w, r, err, msgNotFound, "")
			return
		}
		out, err := a.Docs.OnsiteReport(rep)
		if err != nil {
			writeStoreError(w, r, err, msgNotFound, "")
			return
		}
		writePDF(w, documents.OnsiteFilename(rep), attachment, out)
	}
}
