package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/rocketcart/internal/port"
	"github.com/nikolayk812/rocketcart/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStorageContract checks the behaviour every port.CartStorage must share.
func runStorageContract(t *testing.T, storage port.CartStorage) {
	t.Helper()

	t.Run("read missing key: not found", func(t *testing.T) {
		value, found, err := storage.Read(t.Context(), gofakeit.UUID())
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("write then read: ok", func(t *testing.T) {
		key := "@RocketShoes:cart:" + gofakeit.UUID()
		value := `[{"id":1,"title":"Shoe","price":"100","image":"","amount":1}]`

		require.NoError(t, storage.Write(t.Context(), key, value))

		got, found, err := storage.Read(t.Context(), key)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, value, got)
	})

	t.Run("overwrite: last write wins", func(t *testing.T) {
		key := gofakeit.UUID()

		require.NoError(t, storage.Write(t.Context(), key, "[]"))
		require.NoError(t, storage.Write(t.Context(), key, `[{"id":2}]`))

		got, found, err := storage.Read(t.Context(), key)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `[{"id":2}]`, got)
	})

	t.Run("empty key: error", func(t *testing.T) {
		_, _, err := storage.Read(t.Context(), "")
		require.ErrorIs(t, err, repository.ErrEmptyKey)

		err = storage.Write(t.Context(), "", "[]")
		require.ErrorIs(t, err, repository.ErrEmptyKey)
	})
}
