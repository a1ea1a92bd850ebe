package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/forum-engagement/internal/service"
	apierrors "github.com/pribylovaa/forum-engagement/internal/transport/http/errors"
)

type createCommunityRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	BannerURL   string `json:"banner_url"`
}

// CreateCommunity — POST /communities; создатель — текущий пользователь.
func (h *Handlers) CreateCommunity(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	var in createCommunityRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}

	c, err := h.Service.CreateCommunity(r.Context(), service.CreateCommunityInput{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		BannerURL:   in.BannerURL,
		CreatorID:   uid,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

func (h *Handlers) JoinCommunity(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, h.Service.Join)
}

func (h *Handlers) LeaveCommunity(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, h.Service.Leave)
}

type membershipFunc func(ctx context.Context, userID, communityID string) (service.MembershipResult, error)

func (h *Handlers) membership(w http.ResponseWriter, r *http.Request, apply membershipFunc) {
	uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}

	res, err := apply(r.Context(), uid, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
