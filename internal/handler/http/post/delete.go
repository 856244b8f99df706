package post

import (
	"net/http"

	"techup-blog/internal/handler/http/pathutil"
	"techup-blog/internal/handler/http/respond"
	postUC "techup-blog/internal/usecase/post"
)

type DeleteHandler struct{ Svc *postUC.Service }

// ServeHTTP deletes a post.
// @Summary      Delete post
// @Tags         posts
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200 {object} map[string]string "Deleted post successfully"
// @Failure      400 {object} map[string]string "Invalid post ID"
// @Failure      401 {object} map[string]string "Token missing or invalid"
// @Failure      403 {object} map[string]string "Not an admin"
// @Failure      404 {object} map[string]string "Post not found"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /posts/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, MsgInvalidID)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	respond.Message(w, http.StatusOK, MsgDeleted)
}
