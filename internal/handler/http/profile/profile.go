// Package profile serves the caller's profile update.
package profile

import (
	"errors"
	"log/slog"
	"net/http"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/handler/http/auth"
	"techup-blog/internal/handler/http/form"
	"techup-blog/internal/handler/http/respond"
	"techup-blog/internal/observability/logging"
	profileUC "techup-blog/internal/usecase/profile"
)

// Response messages.
const (
	MsgUpdated         = "Profile updated successfully"
	MsgNoFields        = "No fields to update provided"
	MsgInvalidName     = "Name cannot be empty or exceed 100 characters"
	MsgInvalidUsername = "Username cannot be empty or exceed 50 characters"
	MsgUsernameTaken   = "This username is already taken"
	MsgUserNotFound    = "User not found"
	msgInvalidBody     = "invalid request body"
	multipartMaxMemory = 8 << 20
)

// Register wires PUT /profile behind the user guard.
func Register(mux *http.ServeMux, svc *profileUC.Service, guard *auth.Guard) {
	mux.Handle("PUT /profile", guard.RequireUser(UpdateHandler{svc}))
}

type UpdateHandler struct{ Svc *profileUC.Service }

// ServeHTTP updates the caller's name, username and picture. Only the
// fields that are sent are written; the role never changes.
// @Summary      Update profile
// @Tags         profile
// @Security     BearerAuth
// @Accept       mpfd
// @Accept       json
// @Produce      json
// @Param        name      formData string false "Display name (1-100 characters)"
// @Param        username  formData string false "Username (1-50 characters)"
// @Param        imageFile formData file   false "Profile picture"
// @Success      200 {object} map[string]string "Profile updated successfully"
// @Failure      400 {object} map[string]string "Invalid field, username taken or nothing to update"
// @Failure      401 {object} map[string]string "Token missing or invalid"
// @Failure      404 {object} map[string]string "User not found"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /profile [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, auth.MsgTokenMissing)
		return
	}

	v, err := form.Parse(r, multipartMaxMemory)
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	defer v.Close()

	err = h.Svc.Update(r.Context(), p.Identity.ID, profileUC.UpdateInput{
		Name:     v.Optional("name"),
		Username: v.Optional("username"),
		Picture:  v.File,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	logging.WithRequestID(r.Context(), slog.Default()).Info("profile updated",
		slog.String("user_id", p.Identity.ID.String()),
		slog.Bool("picture", v.File != nil))
	respond.Message(w, http.StatusOK, MsgUpdated)
}

func writeError(w http.ResponseWriter, err error) {
	var ve *entity.ValidationError
	switch {
	case errors.Is(err, profileUC.ErrNoFieldsToUpdate):
		respond.Fail(w, http.StatusBadRequest, MsgNoFields)
	case errors.Is(err, profileUC.ErrUsernameTaken):
		respond.Fail(w, http.StatusBadRequest, MsgUsernameTaken)
	case errors.Is(err, profileUC.ErrUserNotFound):
		respond.Fail(w, http.StatusNotFound, MsgUserNotFound)
	case errors.As(err, &ve) && ve.Field == "name":
		respond.Fail(w, http.StatusBadRequest, MsgInvalidName)
	case errors.As(err, &ve) && ve.Field == "username":
		respond.Fail(w, http.StatusBadRequest, MsgInvalidUsername)
	default:
		respond.WriteError(w, http.StatusInternalServerError, err)
	}
}
