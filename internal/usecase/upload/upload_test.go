package upload_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/usecase/upload"
)

/* ───────── stub ───────── */

type stubStore struct {
	uploaded map[string]string
	removed  []string
	err      error
}

func newStubStore() *stubStore { return &stubStore{uploaded: map[string]string{}} }

func (s *stubStore) Upload(_ context.Context, bucket, path, _ string, body io.Reader) error {
	if s.err != nil {
		return s.err
	}
	b, _ := io.ReadAll(body)
	s.uploaded[bucket+"/"+path] = string(b)
	return nil
}

func (s *stubStore) Remove(_ context.Context, bucket, path string) error {
	s.removed = append(s.removed, bucket+"/"+path)
	return nil
}

func (s *stubStore) PublicURL(bucket, path string) string {
	return "https://cdn.example/" + bucket + "/" + path
}

/* ───────── tests ───────── */

func TestService_Put(t *testing.T) {
	store := newStubStore()
	svc := &upload.Service{Store: store, MaxBytes: 100}

	obj, err := svc.Put(context.Background(), upload.Target{Bucket: "b", Prefix: "posts/"}, "1-x", upload.File{
		ContentType: "image/png", Size: 3, Body: strings.NewReader("abc"),
	})
	if err != nil {
		t.Fatalf("Put err=%v", err)
	}
	if obj.Path != "posts/1-x" {
		t.Errorf("Path = %q", obj.Path)
	}
	if obj.URL != "https://cdn.example/b/posts/1-x" {
		t.Errorf("URL = %q", obj.URL)
	}
	if store.uploaded["b/posts/1-x"] != "abc" {
		t.Errorf("stored body = %q", store.uploaded["b/posts/1-x"])
	}
}

func TestService_PutRejects(t *testing.T) {
	svc := &upload.Service{
		Store:    newStubStore(),
		MaxBytes: 2,
		Allowed:  func(ct string) bool { return ct == "image/png" },
	}

	cases := []struct {
		name string
		file upload.File
		want error
	}{
		{"too large", upload.File{ContentType: "image/png", Size: 3, Body: strings.NewReader("abc")}, upload.ErrTooLarge},
		{"wrong type", upload.File{ContentType: "text/plain", Size: 1, Body: strings.NewReader("a")}, upload.ErrUnsupportedType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Put(context.Background(), upload.Target{Bucket: "b"}, "n", tc.file)
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
			if !errors.Is(err, entity.ErrValidationFailed) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestService_PutStoreError(t *testing.T) {
	store := newStubStore()
	store.err = errors.New("storage down")
	svc := &upload.Service{Store: store}

	_, err := svc.Put(context.Background(), upload.Target{Bucket: "b"}, "n", upload.File{Body: strings.NewReader("a")})
	if err == nil || !strings.Contains(err.Error(), "storage down") {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestService_Discard(t *testing.T) {
	store := newStubStore()
	svc := &upload.Service{Store: store}

	svc.Discard(context.Background(), upload.Object{})
	svc.Discard(context.Background(), upload.Object{Bucket: "b", Path: "posts/1"})

	if len(store.removed) != 1 || store.removed[0] != "b/posts/1" {
		t.Errorf("removed = %v", store.removed)
	}
}
