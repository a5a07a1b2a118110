package responses

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// Content types of the generated documents
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WritePDFBytesWithFilename writes an inline PDF the browser can preview
func WritePDFBytesWithFilename(w http.ResponseWriter, filename string, PDFBytes []byte) {
	WriteDocument(w, ContentTypePDF, filename, false, PDFBytes)
}

// WritePDFAttachment writes a PDF the browser saves as filename
func WritePDFAttachment(w http.ResponseWriter, filename string, PDFBytes []byte) {
	WriteDocument(w, ContentTypePDF, filename, true, PDFBytes)
}

// WriteDocument writes a complete generated file. attachment selects the Content-Disposition type.
func WriteDocument(w http.ResponseWriter, contentType, filename string, attachment bool, body []byte) {
	WriteDocumentHeaders(w, contentType, filename, attachment, len(body))
	if _, err := w.Write(body); err != nil {
		zap.L().Error("writing document to response", zap.String("filename", filename), zap.Error(err))
	}
}

// WriteDocumentHeaders write HTTP response headers for a document response. i.e. headers are frozen
func WriteDocumentHeaders(w http.ResponseWriter, contentType, filename string, attachment bool, size int) {
	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	if size >= 0 {
		h.Set("Content-Length", strconv.Itoa(size))
	}
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK) // Response Header Sent & Frozen
}
