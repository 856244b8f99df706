package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techup-blog/internal/domain/entity"
)

// captureLog routes the default logger into a buffer for the duration of t.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]any{"id": 1, "title": "Hello"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1,"title":"Hello"}`, rec.Body.String())
}

func TestJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestJSON_EncodingErrorIsLogged(t *testing.T) {
	logs := captureLog(t)
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusOK, make(chan int))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, logs.String(), "failed to encode JSON response")
}

func TestMessageAndFail(t *testing.T) {
	rec := httptest.NewRecorder()
	Message(rec, http.StatusCreated, "Created post successfully")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, map[string]string{"message": "Created post successfully"}, decode(t, rec))

	rec = httptest.NewRecorder()
	Fail(rec, http.StatusNotFound, "Post not found")
	assert.Equal(t, map[string]string{"error": "Post not found"}, decode(t, rec))
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		err     error
		want    string
		wantLog bool
	}{
		{name: "validation text on 400", code: http.StatusBadRequest, err: errors.New("title is required"), want: "title is required"},
		{name: "not found on 404", code: http.StatusNotFound, err: errors.New("category not found"), want: "category not found"},
		{name: "unknown text on 400", code: http.StatusBadRequest, err: errors.New("pq: relation posts does not exist"), want: InternalMessage, wantLog: true},
		{name: "safe text on 500", code: http.StatusInternalServerError, err: errors.New("id is invalid"), want: InternalMessage, wantLog: true},
		{name: "credentials on 502", code: http.StatusBadGateway, err: errors.New("postgres://app:hunter2@db/blog refused"), want: InternalMessage, wantLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLog(t)
			rec := httptest.NewRecorder()

			SafeError(rec, tt.code, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.want, decode(t, rec)["error"])
			if tt.wantLog {
				assert.Contains(t, logs.String(), "internal server error")
				assert.NotContains(t, logs.String(), "hunter2")
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}

func TestSafeError_Nil(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusBadRequest, nil)
	assert.Empty(t, rec.Body.String())
}

func TestAppError(t *testing.T) {
	cause := errors.New("insert failed")
	err := NewAppError(http.StatusConflict, "Category is in use", cause)

	assert.Equal(t, "insert failed", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Category is in use", NewAppError(http.StatusConflict, "Category is in use", nil).Error())
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		err      error
		wantCode int
		want     string
	}{
		{
			name:     "app error keeps its user message",
			code:     http.StatusInternalServerError,
			err:      fmt.Errorf("Delete: %w", NewAppError(http.StatusConflict, "Category is in use", errors.New("fk violation"))),
			wantCode: http.StatusConflict,
			want:     "Category is in use",
		},
		{
			name:     "5xx app error is generic",
			code:     http.StatusBadRequest,
			err:      NewAppError(http.StatusBadGateway, "provider down", errors.New("dial tcp")),
			wantCode: http.StatusBadGateway,
			want:     InternalMessage,
		},
		{
			name:     "validation error is a 400",
			code:     http.StatusInternalServerError,
			err:      fmt.Errorf("Create: %w", &entity.ValidationError{Field: "title", Message: "Title is required"}),
			wantCode: http.StatusBadRequest,
			want:     "Title is required",
		},
		{
			name:     "plain error falls back to SafeError",
			code:     http.StatusInternalServerError,
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			want:     InternalMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLog(t)
			rec := httptest.NewRecorder()

			WriteError(rec, tt.code, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, map[string]string{"error": tt.want}, decode(t, rec))
		})
	}
}

func TestWriteError_LogsSanitizedCause(t *testing.T) {
	logs := captureLog(t)
	rec := httptest.NewRecorder()

	WriteError(rec, 0, NewAppError(http.StatusBadGateway, "upstream", errors.New("Bearer abc.def rejected")))

	assert.Contains(t, logs.String(), `"level":"ERROR"`)
	assert.Contains(t, logs.String(), "Bearer ****")
	assert.NotContains(t, logs.String(), "abc.def")
}
