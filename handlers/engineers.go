package handlers

import (
	"net/http"
	"strings"

	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/responses"
)

const (
	msgEngineerNotFound  = "Engineer not found"
	msgEmployeeIDTaken   = "Employee ID already exists"
	msgSignatureRequired = "signature_data is required"
)

func (a *API) listEngineers(w http.ResponseWriter, r *http.Request) {
	engineers, err := a.Stores.Engineers.List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, msgEngineerNotFound, "")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, engineers)
}

func (a *API) engineerDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := a.Stores.Engineers.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, msgEngineerNotFound, "")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, e)
}

func (a *API) createEngineer(w http.ResponseWriter, r *http.Request) {
	var patch models.EngineerPatch
	if !decode(w, r, &patch) {
		return
	}
	if patch.Name == nil || strings.TrimSpace(*patch.Name) == "" {
		badRequest(w, "name is required")
		return
	}
	e := &models.Engineer{}
	patch.Apply(e, a.now())
	e.CreatedAt = e.UpdatedAt
	if err := a.Stores.Engineers.Create(r.Context(), e); err != nil {
		writeStoreError(w, r, err, msgEngineerNotFound, msgEmployeeIDTaken)
		return
	}
	responses.EncodeWriteJSON(w, http.StatusCreated, created{Message: "Engineer created", ID: e.ID})
}

func (a *API) updateEngineer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch models.EngineerPatch
	if !decode(w, r, &patch) {
		return
	}
	ctx := r.Context()
	e, err := a.Stores.Engineers.Get(ctx, id)
	if err == nil {
		patch.Apply(e, a.now())
		err = a.Stores.Engineers.Update(ctx, e)
	}
	if err != nil {
		writeStoreError(w, r, err, msgEngineerNotFound, msgEmployeeIDTaken)
		return
	}
	responses.WriteMessage(w, http.StatusOK, "Engineer updated")
}

type signatureBody struct {
	SignatureData string `json:"signature_data"`
}

func (a *API) setEngineerSignature(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body signatureBody
	if !decode(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.SignatureData) == "" {
		badRequest(w, msgSignatureRequired)
		return
	}
	if err := a.Stores.Engineers.SetSignature(r.Context(), id, body.SignatureData); err != nil {
		writeStoreError(w, r, err, msgEngineerNotFound, "")
		return
	}
	responses.WriteMessage(w, http.StatusOK, "Signature saved")
}

func (a *API) deleteEngineer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.Stores.Engineers.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, msgEngineerNotFound, "")
		return
	}
	responses.WriteMessage(w, http.StatusOK, "Engineer deleted")
}
