package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/posjarabe-admin/internal/infrastructure/storage"
)

func TestFileStorage_SetGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	fs, err := storage.NewFileStorage(path)
	require.NoError(t, err)

	_, ok := fs.Get("k")
	assert.False(t, ok)

	require.NoError(t, fs.Set("k", "v"))
	v, ok := fs.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, fs.Delete("k"))
	_, ok = fs.Get("k")
	assert.False(t, ok)
}

func TestFileStorage_SobreviveReapertura(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	fs, err := storage.NewFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, fs.Set("posjarabe.session.user", `{"userId":"u-1"}`))

	reopened, err := storage.NewFileStorage(path)
	require.NoError(t, err)
	v, ok := reopened.Get("posjarabe.session.user")
	assert.True(t, ok)
	assert.Equal(t, `{"userId":"u-1"}`, v)
}

func TestFileStorage_CreaDirectoriosIntermedios(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anidado", "profundo", "session.json")
	fs, err := storage.NewFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, fs.Set("k", "v"))

	_, err = os.Stat(path)
	assert.NoError(t, err, "el archivo debe existir con sus directorios")
}

// Un archivo corrupto no tumba el arranque: se arranca vacío.
func TestFileStorage_JSONInvalidoArrancaVacio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{rotura"), 0o600))

	fs, err := storage.NewFileStorage(path)
	require.NoError(t, err)
	_, ok := fs.Get("k")
	assert.False(t, ok)
}

func TestFileStorage_DeleteInexistenteNoEscribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	fs, err := storage.NewFileStorage(path)
	require.NoError(t, err)

	require.NoError(t, fs.Delete("no-existe"))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "borrar una clave ausente no debe crear el archivo")
}
