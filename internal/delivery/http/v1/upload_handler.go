package v1

import (
	"net/http"
	"path/filepath"
	"strings"

	"velora-backend/pkg/logger"
	"velora-backend/pkg/storage"
	"velora-backend/pkg/utils"

	json "github.com/goccy/go-json"
)

var (
	allowedMimeTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
	}
	allowedExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
		".gif":  true,
	}
)

type UploadHandler struct {
	storage       *storage.R2Storage
	maxUploadSize int64
}

func NewUploadHandler(s *storage.R2Storage, maxUploadSizeMB int64) *UploadHandler {
	return &UploadHandler{
		storage:       s,
		maxUploadSize: maxUploadSizeMB << 20, // Convert MB to bytes
	}
}

// UploadFile accepts a multipart image, validates its type, re-encodes it
// (resize + WebP) and pushes it to object storage, returning the public URL.
func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedMimeTypes[contentType] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file type. Allowed: JPEG, PNG, WebP, GIF")
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file extension")
		return
	}

	processedData, newContentType, err := utils.ProcessImage(file, header.Filename)
	if err != nil {
		logger.Error().Err(err).Str("filename", header.Filename).Msg("Image processing failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to process image")
		return
	}

	url, err := h.storage.UploadBuffer(r.Context(), processedData, newContentType)
	if err != nil {
		logger.Error().Err(err).Msg("Upload to object storage failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}

type deleteUploadReq struct {
	URL string `json:"url"`
}

// DeleteUpload removes a previously uploaded file by its public URL.
func (h *UploadHandler) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	var req deleteUploadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.storage.DeleteFile(r.Context(), req.URL); err != nil {
		logger.Error().Err(err).Str("url", req.URL).Msg("Delete from object storage failed")
		utils.WriteError(w, http.StatusBadRequest, "Failed to delete file")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "File deleted"})
}
