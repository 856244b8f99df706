package post

import (
	"errors"
	"net/http"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/handler/http/pathutil"
	"techup-blog/internal/handler/http/respond"
	postUC "techup-blog/internal/usecase/post"
)

// GetHandler reads one post. Without Admin only published posts are visible.
type GetHandler struct {
	Svc   *postUC.Service
	Admin bool
}

// ServeHTTP returns a published post.
// @Summary      Get post
// @Description  Returns a published post with its category name and status label. Drafts answer 404.
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200 {object} DTO
// @Failure      400 {object} map[string]string "Invalid post ID"
// @Failure      404 {object} map[string]string "Post not found"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /posts/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, MsgInvalidID)
		return
	}

	var post *entity.PostView
	if h.Admin {
		post, err = h.Svc.Get(r.Context(), id)
	} else {
		post, err = h.Svc.GetPublished(r.Context(), id)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(*post))
}

type AdminGetHandler struct{ Svc *postUC.Service }

// ServeHTTP returns a post of any status.
// @Summary      Get post (admin)
// @Description  Returns a post regardless of status.
// @Tags         posts
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200 {object} DTO
// @Failure      400 {object} map[string]string "Invalid post ID"
// @Failure      401 {object} map[string]string "Token missing or invalid"
// @Failure      403 {object} map[string]string "Not an admin"
// @Failure      404 {object} map[string]string "Post not found"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /posts/admin/{id} [get]
func (h AdminGetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	GetHandler{Svc: h.Svc, Admin: true}.ServeHTTP(w, r)
}

// writeError maps post use case errors onto responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, postUC.ErrInvalidPostID):
		respond.Fail(w, http.StatusBadRequest, MsgInvalidID)
	case errors.Is(err, postUC.ErrPostNotFound):
		respond.Fail(w, http.StatusNotFound, MsgNotFound)
	case errors.Is(err, postUC.ErrInvalidReference):
		respond.WriteError(w, http.StatusBadRequest, respond.NewAppError(http.StatusBadRequest, MsgInvalidRef, err))
	default:
		respond.WriteError(w, http.StatusInternalServerError, err)
	}
}
