package profile_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/handler/http/auth"
	"techup-blog/internal/handler/http/profile"
	"techup-blog/internal/repository"
	profileUC "techup-blog/internal/usecase/profile"
	"techup-blog/internal/usecase/upload"
)

/* ───────── stubs ───────── */

var userID = uuid.MustParse("cccccccc-0000-0000-0000-000000000001")

type stubVerifier struct{}

func (stubVerifier) VerifyToken(_ context.Context, token string) (entity.Identity, error) {
	if token == "user-token" {
		return entity.Identity{ID: userID, Email: "u@example.com"}, nil
	}
	return entity.Identity{}, entity.ErrInvalidToken
}

type stubUsers struct {
	updates []repository.ProfileUpdate
	err     error
}

func (s *stubUsers) Get(context.Context, uuid.UUID) (*entity.User, error) { return nil, nil }
func (s *stubUsers) GetRole(context.Context, uuid.UUID) (entity.Role, error) {
	return entity.RoleUser, nil
}
func (s *stubUsers) UsernameExists(context.Context, string) (bool, error) { return false, nil }
func (s *stubUsers) Create(context.Context, *entity.User) error           { return nil }
func (s *stubUsers) UpdateProfile(_ context.Context, id uuid.UUID, upd repository.ProfileUpdate) error {
	if id != userID {
		return fmt.Errorf("update profile: %w", entity.ErrNotFound)
	}
	if s.err != nil {
		return s.err
	}
	s.updates = append(s.updates, upd)
	return nil
}

type stubStore struct{ paths []string }

func (s *stubStore) Upload(_ context.Context, _, path, _ string, body io.Reader) error {
	_, _ = io.ReadAll(body)
	s.paths = append(s.paths, path)
	return nil
}
func (s *stubStore) Remove(context.Context, string, string) error { return nil }
func (s *stubStore) PublicURL(bucket, path string) string {
	return "https://cdn.example/" + bucket + "/" + path
}

func setup() (*http.ServeMux, *stubUsers, *stubStore) {
	users, store := &stubUsers{}, &stubStore{}
	svc := &profileUC.Service{
		Users:    users,
		Uploads:  &upload.Service{Store: store},
		Pictures: upload.Target{Bucket: "user-profile-pictures", Prefix: "profiles"},
		Now:      func() time.Time { return time.UnixMilli(1700000000000) },
	}
	mux := http.NewServeMux()
	profile.Register(mux, svc, &auth.Guard{Verifier: stubVerifier{}})
	return mux, users, store
}

func putJSON(mux *http.ServeMux, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func field(t *testing.T, rr *httptest.ResponseRecorder, key string) string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&m))
	return m[key]
}

/* ───────── tests ───────── */

func TestUpdate_NameOnly(t *testing.T) {
	mux, users, _ := setup()

	rr := putJSON(mux, "user-token", `{"name":" New Name "}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, profile.MsgUpdated, field(t, rr, "message"))
	require.Len(t, users.updates, 1)
	upd := users.updates[0]
	require.NotNil(t, upd.Name)
	assert.Equal(t, "New Name", *upd.Name)
	assert.Nil(t, upd.Username)
	assert.Nil(t, upd.ProfilePic)
}

func TestUpdate_MultipartPicture(t *testing.T) {
	mux, users, store := setup()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("username", "reader2"))
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="imageFile"; filename="me.jpg"`)
	h.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpeg"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/profile", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer user-token")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	wantPath := "profiles/" + userID.String() + "-1700000000000"
	assert.Equal(t, []string{wantPath}, store.paths)
	require.Len(t, users.updates, 1)
	require.NotNil(t, users.updates[0].ProfilePic)
	assert.Equal(t, "https://cdn.example/user-profile-pictures/"+wantPath, *users.updates[0].ProfilePic)
	assert.Equal(t, "reader2", *users.updates[0].Username)
}

func TestUpdate_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantMsg  string
	}{
		{"no fields", `{}`, http.StatusBadRequest, profile.MsgNoFields},
		{"empty strings count as absent", `{"name":"","username":""}`, http.StatusBadRequest, profile.MsgNoFields},
		{"blank name", `{"name":"   "}`, http.StatusBadRequest, profile.MsgInvalidName},
		{"long name", `{"name":"` + strings.Repeat("n", 101) + `"}`, http.StatusBadRequest, profile.MsgInvalidName},
		{"long username", `{"username":"` + strings.Repeat("u", 51) + `"}`, http.StatusBadRequest, profile.MsgInvalidUsername},
		{"malformed", `{"name":`, http.StatusBadRequest, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, users, _ := setup()

			rr := putJSON(mux, "user-token", tt.body)

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantMsg, field(t, rr, "error"))
			assert.Empty(t, users.updates)
		})
	}
}

func TestUpdate_UsernameTaken(t *testing.T) {
	mux, users, _ := setup()
	users.err = fmt.Errorf("update users: %w", entity.ErrConflict)

	rr := putJSON(mux, "user-token", `{"username":"admin"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, profile.MsgUsernameTaken, field(t, rr, "error"))
}

func TestUpdate_DatabaseFailure(t *testing.T) {
	mux, users, _ := setup()
	users.err = errors.New("connection reset by peer")

	rr := putJSON(mux, "user-token", `{"name":"x"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "internal server error", field(t, rr, "error"))
}

func TestUpdate_RequiresToken(t *testing.T) {
	mux, users, _ := setup()

	rr := putJSON(mux, "", `{"name":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = putJSON(mux, "stale", `{"name":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, auth.MsgInvalidToken, field(t, rr, "error"))
	assert.Empty(t, users.updates)
}
