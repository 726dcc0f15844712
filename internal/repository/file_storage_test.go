package repository_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikolayk812/rocketcart/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")

	runStorageContract(t, repository.NewFile(path))
}

func TestFileStorage_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")

	first := repository.NewFile(path)
	require.NoError(t, first.Write(t.Context(), "a", "1"))
	require.NoError(t, first.Write(t.Context(), "b", "2"))

	second := repository.NewFile(path)
	got, found, err := second.Read(t.Context(), "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1", got)

	got, found, err = second.Read(t.Context(), "b")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "2", got)
}

func TestFileStorage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, _, err := repository.NewFile(path).Read(t.Context(), "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is corrupt")
}
