package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/forum-engagement/internal/models"
	apierrors "github.com/pribylovaa/forum-engagement/internal/transport/http/errors"
)

type reconcileResponse struct {
	CommunityID string `json:"community_id"`
	Members     int64  `json:"members"`
	Repaired    bool   `json:"repaired"`
}

// ReconcileCommunity — POST /admin/communities/{id}/reconcile.
func (h *Handlers) ReconcileCommunity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	members, repaired, err := h.Service.ReconcileMembers(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reconcileResponse{CommunityID: id, Members: members, Repaired: repaired})
}

// ListDeadLetters — GET /admin/dead-letters?limit=N.
func (h *Handlers) ListDeadLetters(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	list, err := h.Service.ListDeadLetters(r.Context(), int(limit))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if list == nil {
		list = []models.DeadLetter{}
	}

	writeJSON(w, http.StatusOK, map[string][]models.DeadLetter{"dead_letters": list})
}

// ReplayDeadLetters — POST /admin/dead-letters/replay?limit=N.
func (h *Handlers) ReplayDeadLetters(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	n, err := h.Service.ReplayDeadLetters(r.Context(), int(limit))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"replayed": n})
}
