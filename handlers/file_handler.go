package handlers

import (
	"net/http"
	"os"

	"p9e.in/sendreq/models"
)

// UploadFileHandler routes to the appropriate upload handler based on environment
func UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	// Check if running in production (Google Cloud)
	// Google Cloud sets GOOGLE_APPLICATION_CREDENTIALS or K_SERVICE (Cloud Run)
	useGCS := os.Getenv("USE_GCS") == "true" ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
		os.Getenv("K_SERVICE") != "" // Cloud Run indicator

	if useGCS {
		// Production: Use Google Cloud Storage
		UploadFileGCS(w, r)
	} else {
		// Development: Use local file storage
		UploadFileLocal(w, r)
	}
}

// attachmentType reads and validates the attachment type form field,
// defaulting to "other"
func attachmentType(r *http.Request) models.FileType {
	switch models.FileType(r.FormValue("type")) {
	case models.FileTypeMemo:
		return models.FileTypeMemo
	case models.FileTypeInvoice:
		return models.FileTypeInvoice
	default:
		return models.FileTypeOther
	}
}
