package uploads

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestDiskStore_Save(t *testing.T) {
	t.Run("writes file with generated name", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested")
		store := NewDiskStore(dir)

		name, err := store.Save(".png", strings.NewReader("image-bytes"))

		require.NoError(t, err)
		require.True(t, strings.HasSuffix(name, ".png"))
		content, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		require.Equal(t, "image-bytes", string(content))
		require.Equal(t, dir, store.Dir())
	})

	t.Run("partial file is removed on copy error", func(t *testing.T) {
		original := newName
		t.Cleanup(func() { newName = original })
		newName = func(ext string) string { return "fixed" + ext }

		dir := t.TempDir()
		store := NewDiskStore(dir)

		_, err := store.Save(".jpg", failingReader{})

		require.Error(t, err)
		_, statErr := os.Stat(filepath.Join(dir, "fixed.jpg"))
		require.True(t, os.IsNotExist(statErr))
	})

	t.Run("existing name is not overwritten", func(t *testing.T) {
		original := newName
		t.Cleanup(func() { newName = original })
		newName = func(ext string) string { return "same" + ext }

		dir := t.TempDir()
		store := NewDiskStore(dir)

		_, err := store.Save(".jpg", strings.NewReader("first"))
		require.NoError(t, err)
		_, err = store.Save(".jpg", strings.NewReader("second"))
		require.Error(t, err)

		content, readErr := os.ReadFile(filepath.Join(dir, "same.jpg"))
		require.NoError(t, readErr)
		require.Equal(t, "first", string(content))
	})
}
