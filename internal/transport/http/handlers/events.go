package handlers

import (
	"errors"
	"net/http"

	"github.com/pribylovaa/forum-engagement/internal/service"
	apierrors "github.com/pribylovaa/forum-engagement/internal/transport/http/errors"
)

type postCreatedRequest struct {
	PostID      string `json:"post_id"`
	CommunityID string `json:"community_id"`
	Title       string `json:"title"`
	AuthorName  string `json:"author_name"`
}

type commentCreatedRequest struct {
	CommentID  string `json:"comment_id"`
	PostID     string `json:"post_id"`
	AuthorName string `json:"author_name"`
}

// eventResponse — итог обработки события. Warnings — коды стадий, которые не удались;
// сам контент уже создан, поэтому ответ успешный.
type eventResponse struct {
	service.EventOutcome
	Warnings []string `json:"warnings,omitempty"`
}

// PostCreated — POST /events/posts. Автор — аутентифицированный пользователь.
func (h *Handlers) PostCreated(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	var in postCreatedRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}

	out, err := h.Service.OnPostCreated(r.Context(), service.PostCreated{
		PostID:      in.PostID,
		AuthorID:    uid,
		AuthorName:  in.AuthorName,
		CommunityID: in.CommunityID,
		Title:       in.Title,
	})
	writeEvent(w, r, out, err)
}

// CommentCreated — POST /events/comments.
func (h *Handlers) CommentCreated(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	var in commentCreatedRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}

	out, err := h.Service.OnCommentCreated(r.Context(), service.CommentCreated{
		CommentID:  in.CommentID,
		PostID:     in.PostID,
		AuthorID:   uid,
		AuthorName: in.AuthorName,
	})
	writeEvent(w, r, out, err)
}

func writeEvent(w http.ResponseWriter, r *http.Request, out service.EventOutcome, err error) {
	if errors.Is(err, service.ErrInvalidEvent) {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, eventResponse{EventOutcome: out, Warnings: warnings(err)})
}

// warnings раскладывает errors.Join на стабильные коды без дубликатов.
func warnings(err error) []string {
	if err == nil {
		return nil
	}

	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	seen := make(map[string]struct{}, len(errs))
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		code := apierrors.Code(e)
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}

	return out
}
