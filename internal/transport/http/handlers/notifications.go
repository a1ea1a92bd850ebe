package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/forum-engagement/internal/models"
	apierrors "github.com/pribylovaa/forum-engagement/internal/transport/http/errors"
)

type notificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

// ListNotifications — GET /notifications?limit=N, новые первыми.
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	list, err := h.Service.ListNotifications(r.Context(), uid, limit)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if list == nil {
		list = []models.Notification{}
	}

	writeJSON(w, http.StatusOK, notificationsResponse{Notifications: list})
}

func (h *Handlers) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	n, err := h.Service.MarkAllRead(r.Context(), uid)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"updated": n})
}

// DeleteNotification — DELETE /notifications/{id}; чужое уведомление не найдётся (404).
func (h *Handlers) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteNotification(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Achievements(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	list, err := h.Service.Achievements(r.Context(), uid)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]models.Achievement{"achievements": list})
}
