// internal/services/storage_service_test.go
package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalStorage(t *testing.T) *StorageService {
	t.Helper()
	storage, err := NewStorageService(testConfig(t))
	require.NoError(t, err)
	return storage
}

func TestObjectKeyFormat(t *testing.T) {
	storage := newLocalStorage(t)
	ts := time.UnixMilli(1700000000000)

	key := storage.ObjectKey(ts, 2, "front view.jpg")
	assert.Equal(t, "cars/1700000000000-2-front-view.jpg", key)
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "photo.jpg", "photo.jpg"},
		{"spaces", "front view.png", "front-view.png"},
		{"path traversal", "../../etc/passwd", "passwd"},
		{"accents", "veículo.jpg", "ve-culo.jpg"},
		{"kept punctuation", "img_01-final.webp", "img_01-final.webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFileName(tt.in))
		})
	}
}

func TestSanitizeFileNameEmptyFallsBackToUUID(t *testing.T) {
	got := sanitizeFileName("")
	assert.NotEmpty(t, got)
	assert.NotEqual(t, ".", got)
	assert.Len(t, got, 36)
}

func TestSaveImageLocalRoundTrip(t *testing.T) {
	storage := newLocalStorage(t)
	data := pngPayload()
	key := storage.ObjectKey(time.Now(), 0, "onix.png")

	object, err := storage.SaveImage(data, key, "image/png")
	require.NoError(t, err)
	assert.Equal(t, key, object.Key)
	assert.Equal(t, int64(len(data)), object.Size)
	assert.Contains(t, object.URL, key)

	path := filepath.Join(storage.config.Storage.LocalPath, filepath.FromSlash(key))
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, written)

	require.NoError(t, storage.Delete(key))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveImageRejectsOversizedPayload(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.MaxImageSize = 8
	storage, err := NewStorageService(cfg)
	require.NoError(t, err)

	_, err = storage.SaveImage(pngPayload(), "cars/too-big.png", "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestSaveImageRejectsNonImagePayload(t *testing.T) {
	storage := newLocalStorage(t)

	_, err := storage.SaveImage([]byte("definitely not an image"), "cars/fake.png", "image/png")
	require.Error(t, err)
}

func TestDeleteMissingObjectIsNoOp(t *testing.T) {
	storage := newLocalStorage(t)
	assert.NoError(t, storage.Delete("cars/never-written.png"))
}

func TestIsValidImageType(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		valid bool
	}{
		{"png", pngPayload(), true},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, true},
		{"gif", []byte("GIF89a trailer"), true},
		{"webp", []byte("RIFF....WEBPVP8 "), true},
		{"text", []byte("hello world, not an image"), false},
		{"truncated", []byte{0xFF, 0xD8}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, isValidImageType(tt.data))
		})
	}
}
