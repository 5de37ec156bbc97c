package cloudinary

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, apiURL string) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := New("testcloud", "key", "secret", logger)
	if apiURL != "" {
		c.apiURL = apiURL
	}
	return c
}

func TestPhotoURL(t *testing.T) {
	c := newTestClient(t, "")
	assert.Equal(t,
		"https://res.cloudinary.com/testcloud/image/upload/diia_photos/user_42",
		c.PhotoURL(42))
}

func TestSignDeterministic(t *testing.T) {
	c := newTestClient(t, "")
	params := map[string]string{
		"public_id": "user_1",
		"folder":    "diia_photos",
		"timestamp": "1700000000",
	}
	first := c.sign(params)
	second := c.sign(params)
	assert.Equal(t, first, second)
	assert.Len(t, first, 40) // hex-кодированный SHA-1
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "/testcloud/image/upload", r.URL.Path)
		assert.Equal(t, "diia_photos", r.FormValue("folder"))
		assert.Equal(t, "user_7", r.FormValue("public_id"))
		assert.Equal(t, "true", r.FormValue("overwrite"))
		assert.NotEmpty(t, r.FormValue("signature"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/testcloud/image/upload/diia_photos/user_7"}`))
	}))
	defer srv.Close()

	photoPath := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(photoPath, []byte("jpegdata"), 0o600))

	c := newTestClient(t, srv.URL)
	got, err := c.Upload(context.Background(), photoPath, 7)
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/testcloud/image/upload/diia_photos/user_7", got)
}

func TestUploadUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	photoPath := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(photoPath, []byte("jpegdata"), 0o600))

	c := newTestClient(t, srv.URL)
	_, err := c.Upload(context.Background(), photoPath, 7)
	require.Error(t, err)
}

func TestDeleteSwallowsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	// Не должно паниковать и не возвращает ошибку
	c.Delete(context.Background(), 7)
}
