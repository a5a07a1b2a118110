package handlers

import (
	"net/http"

	"github.com/Christosun/flotech-report-system/documents"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/nullable"
	"github.com/Christosun/flotech-report-system/responses"
)

func (a *API) listHandovers(w http.ResponseWriter, r *http.Request) {
	letters, err := a.Stores.Handovers.List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	views := make([]models.HandoverView, len(letters))
	for i, l := range letters {
		views[i] = l.View(false)
	}
	responses.EncodeWriteJSON(w, http.StatusOK, views)
}

func (a *API) handoverDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	l, err := a.Stores.Handovers.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, l.View(true))
}

func (a *API) createHandover(w http.ResponseWriter, r *http.Request) {
	var patch models.HandoverPatch
	if !decode(w, r, &patch) {
		return
	}
	l := &models.HandoverLetter{}
	patch.Apply(l, a.now())
	if uid := userID(r); uid != 0 {
		l.CreatedBy = nullable.IntOf(uid)
	}
	if err := a.Stores.Handovers.Create(r.Context(), l); err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusCreated, created{Message: "Created", ID: l.ID})
}

func (a *API) updateHandover(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch models.HandoverPatch
	if !decode(w, r, &patch) {
		return
	}
	ctx := r.Context()
	l, err := a.Stores.Handovers.Get(ctx, id)
	if err == nil {
		patch.Apply(l, a.now())
		err = a.Stores.Handovers.Update(ctx, l)
	}
	if err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.WriteMessage(w, http.StatusOK, "Updated")
}

func (a *API) deleteHandover(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.Stores.Handovers.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, msgNotFound, "")
		return
	}
	responses.WriteMessage(w, http.StatusOK, "Deleted")
}

func (a *API) handoverPDF(attachment bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		l, err := a.Stores.Handovers.Get(r.Context(), id)
		if err != nil {
			writeStoreError(w, r, err, msgNotFound, "")
			return
		}
		out, err := a.Docs.HandoverLetter(l)
		if err != nil {
			writeStoreError(w, r, err, msgNotFound, "")
			return
		}
		writePDF(w, documents.HandoverFilename(l), attachment, out)
	}
}
