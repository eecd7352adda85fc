package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/storage"
)

// UploadFileGCS handles file uploads to Google Cloud Storage
func UploadFileGCS(w http.ResponseWriter, r *http.Request) {
	bucketName := os.Getenv("GCS_BUCKET")
	if bucketName == "" {
		http.Error(w, "GCS_BUCKET not configured", http.StatusInternalServerError)
		return
	}

	// Parse the multipart form (max 50MB)
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileType := attachmentType(r)

	ctx := r.Context()
	client, err := storage.NewClient(ctx)
	if err != nil {
		http.Error(w, "failed to create storage client: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer client.Close()

	// Object name mirrors the local naming scheme
	timestamp := time.Now().Format("20060102-150405")
	objectName := fmt.Sprintf("attachments/%s-%s", timestamp, header.Filename)

	obj := client.Bucket(bucketName).Object(objectName)
	writer := obj.NewWriter(ctx)
	writer.ContentType = header.Header.Get("Content-Type")

	if _, err := io.Copy(writer, file); err != nil {
		writer.Close()
		http.Error(w, "failed to upload file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := writer.Close(); err != nil {
		http.Error(w, "failed to finalize upload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectName)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"url":      url,
		"filename": objectName,
		"name":     header.Filename,
		"type":     string(fileType),
	})
}
