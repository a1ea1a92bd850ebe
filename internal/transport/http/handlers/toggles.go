package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/forum-engagement/internal/transport/http/errors"
)

type savedResponse struct {
	PostID string `json:"post_id"`
	Saved  bool   `json:"saved"`
}

type likeResponse struct {
	VideoID string `json:"video_id"`
	Liked   bool   `json:"liked"`
}

type voteResponse struct {
	PostID string `json:"post_id"`
	Voted  bool   `json:"voted"`
	Votes  int64  `json:"votes"`
}

func (h *Handlers) ToggleSavedPost(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	postID := chi.URLParam(r, "id")
	saved, err := h.Service.ToggleSavedPost(r.Context(), uid, postID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, savedResponse{PostID: postID, Saved: saved})
}

// SavedPosts — GET /saved-posts: сохранённые посты текущего пользователя.
func (h *Handlers) SavedPosts(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	posts, err := h.Service.SavedPosts(r.Context(), uid)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if posts == nil {
		posts = []string{}
	}

	writeJSON(w, http.StatusOK, map[string][]string{"posts": posts})
}

func (h *Handlers) ToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	videoID := chi.URLParam(r, "id")
	liked, err := h.Service.ToggleVideoLike(r.Context(), uid, videoID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, likeResponse{VideoID: videoID, Liked: liked})
}

// ToggleVote — POST /posts/{id}/votes/toggle. Счётчик в ответе читается после записи.
func (h *Handlers) ToggleVote(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	postID := chi.URLParam(r, "id")
	voted, err := h.Service.ToggleVote(r.Context(), uid, postID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	votes, err := h.Service.VoteCount(r.Context(), postID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, voteResponse{PostID: postID, Voted: voted, Votes: votes})
}
