package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/edapp/pkg/apperror"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type memStore struct {
	objects map[string][]byte
	types   map[string]string
	failPut bool
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memStore) Put(_ context.Context, key string, r io.Reader, contentType string) error {
	if m.failPut {
		return errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = data
	m.types[key] = contentType
	return nil
}

func (m *memStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	return "https://bucket.example/" + key + "?ttl=" + ttl.String(), nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func fileHeader(t *testing.T, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", "avatar.png")
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	w.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(MaxImageSize * 2); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["image"][0]
}

func TestProfileImageLifecycle(t *testing.T) {
	store := newMemStore()
	svc := NewMediaService(store, time.Hour)
	ctx := context.Background()

	if err := svc.PutProfileImage(ctx, 42, fileHeader(t, pngHeader)); err != nil {
		t.Fatalf("PutProfileImage() error = %v", err)
	}
	if store.types["Image-EdApp:42"] != "image/png" {
		t.Errorf("content type = %q, want image/png", store.types["Image-EdApp:42"])
	}

	url, err := svc.ProfileImageURL(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if url != "https://bucket.example/Image-EdApp:42?ttl=1h0m0s" {
		t.Errorf("url = %q", url)
	}

	if err := svc.DeleteProfileImage(ctx, 42); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.objects["Image-EdApp:42"]; ok {
		t.Error("expected object to be removed")
	}
}

func TestPutRejectsNonImage(t *testing.T) {
	svc := NewMediaService(newMemStore(), time.Hour)

	err := svc.PutOrgIcon(context.Background(), 3, fileHeader(t, []byte("plain text, not a picture")))
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestPutRejectsOversized(t *testing.T) {
	svc := NewMediaService(newMemStore(), time.Hour)

	big := append(append([]byte{}, pngHeader...), make([]byte, MaxImageSize)...)
	err := svc.PutProfileImage(context.Background(), 1, fileHeader(t, big))
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestPutStoreFailure(t *testing.T) {
	store := newMemStore()
	store.failPut = true
	svc := NewMediaService(store, time.Hour)

	err := svc.PutOrgIcon(context.Background(), 3, fileHeader(t, pngHeader))
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Fatalf("error = %v, want ErrUpstream", err)
	}
}

func TestOrgIconKey(t *testing.T) {
	store := newMemStore()
	svc := NewMediaService(store, 10*time.Minute)

	if err := svc.PutOrgIcon(context.Background(), 7, fileHeader(t, pngHeader)); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.objects["OrgIcon-7"]; !ok {
		t.Fatalf("stored keys = %v, want OrgIcon-7", store.objects)
	}
}
