package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/handler/http/respond"
	"techup-blog/internal/observability/logging"
	acctUC "techup-blog/internal/usecase/account"
)

// Account endpoint messages.
const (
	MsgUserCreated         = "User created successfully"
	MsgSignedIn            = "Signed in successfully"
	MsgPasswordUpdated     = "Password updated successfully"
	MsgUsernameTaken       = "This username is already taken"
	MsgEmailTaken          = "User with this email already exists"
	MsgSignUpFailed        = "Failed to create user. Please try again."
	MsgBadCredentials      = "Your password is incorrect or this email doesn’t exist"
	MsgSignInFailed        = "Failed to sign in. Please try again."
	MsgNewPasswordRequired = "New password is required"
	MsgInvalidOldPassword  = "Invalid old password"
	MsgPasswordRejected    = "New password was rejected"
	msgInvalidBody         = "invalid request body"
)

// Register wires the account routes. throttle limits the unauthenticated
// credential endpoints; pass nil to disable it.
func Register(mux *http.ServeMux, svc *acctUC.Service, guard *Guard, throttle func(http.Handler) http.Handler) {
	if throttle == nil {
		throttle = func(h http.Handler) http.Handler { return h }
	}
	mux.Handle("POST /auth/register", throttle(RegisterHandler{svc}))
	mux.Handle("POST /auth/login", throttle(LoginHandler{svc}))
	mux.Handle("GET /auth/get-user", guard.RequireUser(GetUserHandler{svc}))
	mux.Handle("PUT /auth/reset-password", guard.RequireUser(ResetPasswordHandler{svc}))
}

type RegisterHandler struct{ Svc *acctUC.Service }

// ServeHTTP creates an account.
// @Summary      Register
// @Description  Creates the identity-provider account and the local user row with role "user".
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body registerRequest true "Account details"
// @Success      201 {object} registerResponse
// @Failure      400 {object} map[string]string "Validation failure, username or email taken"
// @Failure      429 {object} map[string]string "Too many requests"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /auth/register [post]
func (h RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	user, err := h.Svc.Register(r.Context(), acctUC.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		Name:     req.Name,
	})
	if err != nil {
		var code int
		var msg string
		switch {
		case errors.Is(err, acctUC.ErrUsernameTaken):
			code, msg = http.StatusBadRequest, MsgUsernameTaken
		case errors.Is(err, acctUC.ErrEmailTaken):
			code, msg = http.StatusBadRequest, MsgEmailTaken
		case errors.Is(err, acctUC.ErrSignUpRejected):
			code, msg = http.StatusBadRequest, MsgSignUpFailed
		default:
			respond.WriteError(w, http.StatusInternalServerError, err)
			return
		}
		respond.WriteError(w, code, respond.NewAppError(code, msg, err))
		return
	}

	logging.WithRequestID(r.Context(), slog.Default()).Info("user registered",
		slog.String("user_id", user.ID.String()))
	respond.JSON(w, http.StatusCreated, registerResponse{Message: MsgUserCreated, User: toUserDTO(user)})
}

type LoginHandler struct{ Svc *acctUC.Service }

// ServeHTTP signs a user in.
// @Summary      Login
// @Description  Exchanges email and password for a provider access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Credentials"
// @Success      200 {object} loginResponse
// @Failure      400 {object} map[string]string "Invalid credentials"
// @Failure      429 {object} map[string]string "Too many requests"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /auth/login [post]
func (h LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	session, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, acctUC.ErrInvalidCredentials):
			respond.WriteError(w, http.StatusBadRequest, respond.NewAppError(http.StatusBadRequest, MsgBadCredentials, nil))
		case errors.Is(err, acctUC.ErrSignInRejected):
			respond.WriteError(w, http.StatusBadRequest, respond.NewAppError(http.StatusBadRequest, MsgSignInFailed, err))
		default:
			respond.WriteError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, loginResponse{Message: MsgSignedIn, AccessToken: session.AccessToken})
}

type GetUserHandler struct{ Svc *acctUC.Service }

// ServeHTTP returns the caller's identity joined with the local profile.
// @Summary      Current user
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} CurrentUserDTO
// @Failure      401 {object} map[string]string "Token missing or invalid"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /auth/get-user [get]
func (h GetUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, MsgTokenMissing)
		return
	}

	acct, err := h.Svc.CurrentUser(r.Context(), p.Identity)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, currentUser(acct))
}

func currentUser(acct *acctUC.Account) CurrentUserDTO {
	return CurrentUserDTO{
		ID:         acct.Identity.ID.String(),
		Email:      acct.Identity.Email,
		Username:   acct.User.Username,
		Name:       acct.User.Name,
		Role:       string(acct.User.Role),
		ProfilePic: acct.User.ProfilePic,
	}
}

type ResetPasswordHandler struct{ Svc *acctUC.Service }

// ServeHTTP rotates the caller's password after re-verifying the old one.
// @Summary      Reset password
// @Tags         auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body resetPasswordRequest true "Old and new password"
// @Success      200 {object} map[string]string "Password updated successfully"
// @Failure      400 {object} map[string]string "Missing new password or invalid old password"
// @Failure      401 {object} map[string]string "Token missing or invalid"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /auth/reset-password [put]
func (h ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, MsgTokenMissing)
		return
	}

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := h.Svc.ResetPassword(r.Context(), p.Identity, p.Token, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
		respond.Message(w, http.StatusOK, MsgPasswordUpdated)
	case errors.Is(err, acctUC.ErrNewPasswordRequired):
		respond.Fail(w, http.StatusBadRequest, MsgNewPasswordRequired)
	case errors.Is(err, acctUC.ErrInvalidOldPassword):
		respond.Fail(w, http.StatusBadRequest, MsgInvalidOldPassword)
	case errors.Is(err, entity.ErrInvalidToken):
		respond.Fail(w, http.StatusUnauthorized, MsgInvalidToken)
	case errors.Is(err, acctUC.ErrPasswordRejected):
		respond.WriteError(w, http.StatusBadRequest, respond.NewAppError(http.StatusBadRequest, MsgPasswordRejected, err))
	default:
		respond.WriteError(w, http.StatusInternalServerError, err)
	}
}
