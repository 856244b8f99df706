// Package respond writes JSON responses and maps errors to safe client messages.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"techup-blog/internal/domain/entity"
)

// InternalMessage is the only body ever returned for a 5xx.
const InternalMessage = "internal server error"

// ErrorBody is the shape of every failure response.
type ErrorBody struct {
	Error string `json:"error" example:"Post not found"`
}

// MessageBody is the shape of success responses that carry no resource.
type MessageBody struct {
	Message string `json:"message" example:"Created post successfully"`
}

// JSON encodes v with the given status. A nil v writes no body.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, MessageBody{Message: msg})
}

// Fail writes {"error": msg} as is.
func Fail(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, ErrorBody{Error: msg})
}

// clientSafe lists fragments that mark an error text as a validation failure.
var clientSafe = []string{
	"required", "invalid", "not found", "already exists",
	"must be", "cannot be", "too long", "too short",
}

func readsClientSafe(msg string) bool {
	msg = strings.ToLower(msg)
	for _, frag := range clientSafe {
		if strings.Contains(msg, frag) {
			return true
		}
	}
	return false
}

// SafeError echoes err's text only for a 4xx whose text reads like a
// validation failure. Anything else is logged with credentials masked and
// answered with InternalMessage.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}
	if code < http.StatusInternalServerError && readsClientSafe(err.Error()) {
		Fail(w, code, err.Error())
		return
	}
	slog.Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.Any("error", SanitizeError(err)))
	Fail(w, code, InternalMessage)
}

// AppError pairs an HTTP status and a client message with the internal cause.
type AppError struct {
	Code    int
	UserMsg string
	Err     error
}

func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.UserMsg
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error { return e.Err }

// clientMessage hides the user message behind InternalMessage for a 5xx.
func (e *AppError) clientMessage() string {
	if e.Code >= http.StatusInternalServerError {
		return InternalMessage
	}
	return e.UserMsg
}

func (e *AppError) log() {
	if e.Err == nil {
		return
	}
	logf := slog.Warn
	if e.Code >= http.StatusInternalServerError {
		logf = slog.Error
	}
	logf("application error",
		slog.String("status", http.StatusText(e.Code)),
		slog.Int("code", e.Code),
		slog.String("user_message", e.UserMsg),
		slog.Any("error", SanitizeError(e.Err)))
}

// WriteError answers err. An *AppError in the chain supplies the status and
// message, an *entity.ValidationError becomes a 400 with its field message,
// and anything else goes through SafeError with code.
func WriteError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		appErr.log()
		Fail(w, appErr.Code, appErr.clientMessage())
		return
	}
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		Fail(w, http.StatusBadRequest, ve.Message)
		return
	}
	SafeError(w, code, err)
}
