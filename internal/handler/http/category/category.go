// Package category serves category CRUD. Reads are public, writes need an admin.
package category

import (
	"encoding/json"
	"errors"
	"net/http"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/handler/http/auth"
	"techup-blog/internal/handler/http/pathutil"
	"techup-blog/internal/handler/http/respond"
	catUC "techup-blog/internal/usecase/category"
)

// Response messages.
const (
	MsgCreated     = "Created category successfully"
	MsgUpdated     = "Updated category successfully"
	MsgDeleted     = "Deleted category successfully"
	MsgNotFound    = "Category not found"
	MsgInvalidID   = "Invalid category ID"
	MsgInUse       = "Category is still used by posts"
	msgInvalidBody = "invalid request body"
)

// DTO is a category row.
type DTO struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Tech"`
}

type writeRequest struct {
	Name string `json:"name" example:"Tech"`
}

// Register wires the category routes.
func Register(mux *http.ServeMux, svc *catUC.Service, guard *auth.Guard) {
	mux.Handle("GET /categories", ListHandler{svc})
	mux.Handle("GET /categories/{id}", GetHandler{svc})
	mux.Handle("POST /categories", guard.RequireAdmin(CreateHandler{svc}))
	mux.Handle("PUT /categories/{id}", guard.RequireAdmin(UpdateHandler{svc}))
	mux.Handle("DELETE /categories/{id}", guard.RequireAdmin(DeleteHandler{svc}))
}

type ListHandler struct{ Svc *catUC.Service }

// ServeHTTP lists categories.
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200 {array}  DTO
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /categories [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.List(r.Context())
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]DTO, 0, len(list))
	for _, c := range list {
		out = append(out, toDTO(c))
	}
	respond.JSON(w, http.StatusOK, out)
}

type GetHandler struct{ Svc *catUC.Service }

// ServeHTTP returns one category.
// @Summary      Get category
// @Tags         categories
// @Produce      json
// @Param        id path int true "Category ID"
// @Success      200 {object} DTO
// @Failure      400 {object} map[string]string "Invalid category ID"
// @Failure      404 {object} map[string]string "Category not found"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /categories/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}

	c, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(c))
}

type CreateHandler struct{ Svc *catUC.Service }

// ServeHTTP creates a category.
// @Summary      Create category
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        category body writeRequest true "Category"
// @Success      201 {object} map[string]string "Created category successfully"
// @Failure      400 {object} map[string]string "Name missing or too long"
// @Failure      401 {object} map[string]string "Token missing or invalid"
// @Failure      403 {object} map[string]string "Not an admin"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /categories [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, ok := readBody(w, r)
	if !ok {
		return
	}

	if _, err := h.Svc.Create(r.Context(), req.Name); err != nil {
		writeError(w, err)
		return
	}
	respond.Message(w, http.StatusCreated, MsgCreated)
}

type UpdateHandler struct{ Svc *catUC.Service }

// ServeHTTP renames a category.
// @Summary      Update category
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path int          true "Category ID"
// @Param        category body writeRequest true "Category"
// @Success      200 {object} map[string]string "Updated category successfully"
// @Failure      400 {object} map[string]string "Invalid ID, name missing or too long"
// @Failure      401 {object} map[string]string "Token missing or invalid"
// @Failure      403 {object} map[string]string "Not an admin"
// @Failure      404 {object} map[string]string "Category not found"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /categories/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}
	req, ok := readBody(w, r)
	if !ok {
		return
	}

	if _, err := h.Svc.Update(r.Context(), id, req.Name); err != nil {
		writeError(w, err)
		return
	}
	respond.Message(w, http.StatusOK, MsgUpdated)
}

type DeleteHandler struct{ Svc *catUC.Service }

// ServeHTTP deletes a category that no post references.
// @Summary      Delete category
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Category ID"
// @Success      200 {object} map[string]string "Deleted category successfully"
// @Failure      400 {object} map[string]string "Invalid category ID"
// @Failure      401 {object} map[string]string "Token missing or invalid"
// @Failure      403 {object} map[string]string "Not an admin"
// @Failure      404 {object} map[string]string "Category not found"
// @Failure      409 {object} map[string]string "Category is still used by posts"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /categories/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	respond.Message(w, http.StatusOK, MsgDeleted)
}

func toDTO(c *entity.Category) DTO {
	return DTO{ID: c.ID, Name: c.Name}
}

func readID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, MsgInvalidID)
		return 0, false
	}
	return id, true
}

func readBody(w http.ResponseWriter, r *http.Request) (writeRequest, bool) {
	var req writeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, http.StatusBadRequest, msgInvalidBody)
		return req, false
	}
	return req, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catUC.ErrInvalidCategoryID):
		respond.Fail(w, http.StatusBadRequest, MsgInvalidID)
	case errors.Is(err, catUC.ErrCategoryNotFound):
		respond.Fail(w, http.StatusNotFound, MsgNotFound)
	case errors.Is(err, catUC.ErrCategoryInUse):
		respond.Fail(w, http.StatusConflict, MsgInUse)
	default:
		respond.WriteError(w, http.StatusInternalServerError, err)
	}
}
