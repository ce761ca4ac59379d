package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"backoffice/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUploadBytes = 32 << 20

type createFolderRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}
	id := uuid.NewString()
	if err := h.deps.Files.CreateFolder(r.Context(), id, req.Name); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"folder_id": id})
}

func (h *Handler) ListFolders(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Files.ListFolders(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"folders": rows})
}

// UploadFile stores the bytes under the upload directory with a generated
// name and records the metadata row. The client-supplied name is never used
// on disk.
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	upload, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer upload.Close()

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		h.logger.Error("upload dir", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	id := uuid.NewString()
	storedName := id + filepath.Ext(header.Filename)
	destPath := filepath.Join(h.cfg.UploadDir, storedName)
	dest, err := os.Create(destPath)
	if err != nil {
		h.logger.Error("upload create", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	size, err := io.Copy(dest, upload)
	closeErr := dest.Close()
	if err != nil || closeErr != nil {
		_ = os.Remove(destPath)
		respondError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	err = h.deps.Files.CreateFile(r.Context(), store.FileInput{
		ID:          id,
		FolderID:    optString(r.FormValue("folder_id")),
		Name:        filepath.Base(header.Filename),
		StoredName:  storedName,
		ContentType: contentType,
		SizeBytes:   size,
	})
	if err != nil {
		_ = os.Remove(destPath)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"file_id": id, "size_bytes": size})
}

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Files.ListFiles(r.Context(), r.URL.Query().Get("folder_id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"files": rows})
}

func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	row, err := h.deps.Files.GetFile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondNotFoundOr500(w, err)
		return
	}
	path := filepath.Join(h.cfg.UploadDir, row.StoredName)
	source, err := os.Open(path)
	if err != nil {
		h.logger.Error("file missing on disk", zap.String("file_id", row.ID), zap.Error(err))
		respondError(w, http.StatusNotFound, "not_found")
		return
	}
	defer source.Close()

	w.Header().Set("Content-Type", row.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+row.Name+`"`)
	_, _ = io.Copy(w, source)
}
