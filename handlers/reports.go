package handlers

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/Christosun/flotech-report-system/documents"
	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/requests"
	"github.com/Christosun/flotech-report-system/responses"
	"github.com/Christosun/flotech-report-system/stores"
	"go.uber.org/zap"
)

const msgReportNotFound = "Report not found"

func (a *API) listReports(w http.ResponseWriter, r *http.Request) {
	reports, err := a.Stores.Reports.List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, msgReportNotFound, "")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, reports)
}

func (a *API) reportDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	report, err := a.Stores.Reports.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, msgReportNotFound, "")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, report)
}

type reportCreated struct {
	Message  string `json:"message"`
	ReportID int64  `json:"report_id"`
}

func (a *API) createReport(w http.ResponseWriter, r *http.Request) {
	var in models.ReportInput
	if !decode(w, r, &in) {
		return
	}
	report, err := in.ToReport()
	if err != nil {
		badRequest(w, "report_date must be YYYY-MM-DD")
		return
	}
	if err = a.Stores.Reports.Create(r.Context(), report); err != nil {
		writeStoreError(w, r, err, msgReportNotFound, "Report number already exists")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusCreated, reportCreated{Message: "Report created successfully", ReportID: report.ID})
}

type imagesBody struct {
	Images []struct {
		FilePath string `json:"file_path"`
		Caption  string `json:"caption"`
	} `json:"images"`
}

type imagesAdded struct {
	Message string                `json:"message"`
	Images  []*models.ReportImage `json:"images"`
}

// addReportImages records files that already sit in the upload directory
func (a *API) addReportImages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body imagesBody
	if !decode(w, r, &body) {
		return
	}
	if len(body.Images) == 0 {
		badRequest(w, "No images given")
		return
	}
	for _, img := range body.Images {
		if !storedPath(img.FilePath) {
			badRequest(w, "Invalid file_path "+img.FilePath)
			return
		}
	}
	ctx := r.Context()
	if _, err := a.Stores.Reports.Get(ctx, id); err != nil {
		writeStoreError(w, r, err, msgReportNotFound, "")
		return
	}
	added := make([]*models.ReportImage, 0, len(body.Images))
	for _, in := range body.Images {
		img := &models.ReportImage{ReportID: id, FilePath: path.Clean(in.FilePath), Caption: in.Caption}
		if err := a.Stores.Reports.AddImage(ctx, img); err != nil {
			writeStoreError(w, r, err, msgReportNotFound, "")
			return
		}
		added = append(added, img)
	}
	responses.EncodeWriteJSON(w, http.StatusCreated, imagesAdded{Message: "Images attached", Images: added})
}

// storedPath accepts relative slash paths that stay inside the upload directory
func storedPath(p string) bool {
	if p == "" || strings.ContainsRune(p, '\\') || path.IsAbs(p) {
		return false
	}
	clean := path.Clean(p)
	return clean != "." && clean != ".." && !strings.HasPrefix(clean, "../")
}

func (a *API) deleteReport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.Stores.Reports.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, msgReportNotFound, "")
		return
	}
	responses.WriteMessage(w, http.StatusOK, "Report deleted")
}

// reportPDF downloads report_{id}.pdf, or shows it inline with ?preview=1
func (a *API) reportPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	report, err := a.Stores.Reports.Get(ctx, id)
	if err != nil {
		writeStoreError(w, r, err, msgReportNotFound, "")
		return
	}
	var eng *models.Engineer
	if report.EngineerID.Valid {
		eng, err = a.Stores.Engineers.Get(ctx, report.EngineerID.Int64)
		if errors.Is(err, stores.ErrNotFound) {
			zap.L().Warn("report engineer missing", zap.Int64("report_id", id), zap.Int64("engineer_id", report.EngineerID.Int64))
			eng, err = nil, nil
		}
		if err != nil {
			writeStoreError(w, r, err, msgReportNotFound, "")
			return
		}
	}
	out, err := a.Docs.ServiceReport(ctx, report, eng)
	if err != nil {
		writeStoreError(w, r, err, msgReportNotFound, "")
		return
	}
	writePDF(w, documents.ReportFilename(id), !requests.QueryFlag(r, "preview"), out)
}

// writePDF sends a generated PDF as a download or inline
func writePDF(w http.ResponseWriter, filename string, attachment bool, out []byte) {
	if attachment {
		responses.WritePDFAttachment(w, filename, out)
		return
	}
	responses.WritePDFBytesWithFilename(w, filename, out)
}
