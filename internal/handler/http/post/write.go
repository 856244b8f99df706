package post

import (
	"errors"
	"net/http"
	"strings"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/handler/http/form"
	"techup-blog/internal/handler/http/pathutil"
	"techup-blog/internal/handler/http/respond"
	postUC "techup-blog/internal/usecase/post"
)

type CreateHandler struct{ Svc *postUC.Service }

// ServeHTTP creates a post.
// @Summary      Create post
// @Description  Accepts JSON or multipart/form-data. A multipart imageFile is uploaded to object storage before the row is written; image may instead carry an existing URL.
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        title       formData string true  "Title"
// @Param        category_id formData int    true  "Category ID"
// @Param        status_id   formData int    true  "Status ID (1 draft, 2 published)"
// @Param        description formData string false "Description"
// @Param        content     formData string false "Content"
// @Param        image       formData string false "Existing image URL"
// @Param        imageFile   formData file   false "Cover image"
// @Success      201 {object} map[string]string "Created post successfully"
// @Failure      400 {object} map[string]string "Validation failure or unknown category/status"
// @Failure      401 {object} map[string]string "Token missing or invalid"
// @Failure      403 {object} map[string]string "Not an admin"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /posts [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	in, done, ok := readWriteInput(w, r)
	if !ok {
		return
	}
	defer done()

	if _, err := h.Svc.Create(r.Context(), in); err != nil {
		writeError(w, err)
		return
	}
	respond.Message(w, http.StatusCreated, MsgCreated)
}

type UpdateHandler struct{ Svc *postUC.Service }

// ServeHTTP rewrites a post.
// @Summary      Update post
// @Description  Rewrites every column and stamps the date. Without a new imageFile the post keeps the image URL sent in image.
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        id          path     int    true  "Post ID"
// @Param        title       formData string true  "Title"
// @Param        category_id formData int    true  "Category ID"
// @Param        status_id   formData int    true  "Status ID"
// @Param        description formData string false "Description"
// @Param        content     formData string false "Content"
// @Param        image       formData string false "Current image URL"
// @Param        imageFile   formData file   false "Replacement image"
// @Success      200 {object} map[string]string "Updated post successfully"
// @Failure      400 {object} map[string]string "Validation failure or unknown category/status"
// @Failure      401 {object} map[string]string "Token missing or invalid"
// @Failure      403 {object} map[string]string "Not an admin"
// @Failure      404 {object} map[string]string "Post not found"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /posts/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, MsgInvalidID)
		return
	}

	in, done, ok := readWriteInput(w, r)
	if !ok {
		return
	}
	defer done()

	if _, err := h.Svc.Update(r.Context(), id, in); err != nil {
		writeError(w, err)
		return
	}
	respond.Message(w, http.StatusOK, MsgUpdated)
}

// readWriteInput decodes a create or update body. On failure the response
// has been written and ok is false.
func readWriteInput(w http.ResponseWriter, r *http.Request) (in postUC.WriteInput, done func(), ok bool) {
	v, err := form.Parse(r, multipartMaxMemory)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Fail(w, http.StatusRequestEntityTooLarge, "request body too large")
			return in, nil, false
		}
		respond.Fail(w, http.StatusBadRequest, msgInvalidBody)
		return in, nil, false
	}

	categoryID, err := v.Int64("category_id")
	if err == nil {
		var statusID int64
		statusID, err = v.Int64("status_id")
		in.StatusID = entity.PostStatus(statusID)
	}
	if err != nil {
		v.Close()
		respond.WriteError(w, http.StatusBadRequest, err)
		return in, nil, false
	}

	in.Title = strings.TrimSpace(v.Get("title"))
	in.Description = v.Get("description")
	in.Content = v.Get("content")
	in.CategoryID = categoryID
	in.ImageURL = strings.TrimSpace(v.Get("image"))
	in.Image = v.File
	return in, v.Close, true
}
