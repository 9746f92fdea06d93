package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubImageStore(t *testing.T) {
	ctx := context.Background()

	t.Run("upload returns a URL under the base", func(t *testing.T) {
		store := NewStubImageStore()

		url, err := store.Upload(ctx, "cars/1-abc.jpg", strings.NewReader("bytes"), "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/cars/1-abc.jpg", url)

		data, ok := store.Object("cars/1-abc.jpg")
		assert.True(t, ok)
		assert.Equal(t, []byte("bytes"), data)
	})

	t.Run("upload requires a key", func(t *testing.T) {
		store := NewStubImageStore()

		_, err := store.Upload(ctx, "", strings.NewReader("bytes"), "image/jpeg")
		assert.Error(t, err)
	})

	t.Run("custom base URL is used", func(t *testing.T) {
		store := NewStubImageStore()
		store.BaseURL = "https://cdn.test"

		url, err := store.Upload(ctx, "k", strings.NewReader(""), "image/png")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.test/k", url)
	})

	t.Run("delete forgets the object", func(t *testing.T) {
		store := NewStubImageStore()

		_, err := store.Upload(ctx, "k", strings.NewReader("x"), "image/png")
		require.NoError(t, err)

		exists, err := store.ObjectExists(ctx, "k")
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, store.DeleteObject(ctx, "k"))

		exists, err = store.ObjectExists(ctx, "k")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("deleting an unknown key succeeds", func(t *testing.T) {
		store := NewStubImageStore()

		assert.NoError(t, store.DeleteObject(ctx, "missing"))
	})
}

func TestPublicBaseURL(t *testing.T) {
	t.Run("explicit public base URL wins", func(t *testing.T) {
		cfg := testStorageConfig()
		cfg.PublicBaseURL = "https://cdn.carhive.example/"

		assert.Equal(t, "https://cdn.carhive.example", publicBaseURL(cfg, "http://localhost:9000", "us-east-1"))
	})

	t.Run("path style serves under endpoint and bucket", func(t *testing.T) {
		cfg := testStorageConfig()
		cfg.Endpoint = "localhost:9000"
		cfg.UsePathStyle = true

		assert.Equal(t, "http://localhost:9000/carhive-images", publicBaseURL(cfg, "http://localhost:9000", "us-east-1"))
	})

	t.Run("bare AWS uses the virtual-host bucket URL", func(t *testing.T) {
		cfg := testStorageConfig()

		assert.Equal(t, "https://carhive-images.s3.eu-west-1.amazonaws.com", publicBaseURL(cfg, "https://s3.eu-west-1.amazonaws.com", "eu-west-1"))
	})
}
