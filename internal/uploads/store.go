package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store guarda una imagen y devuelve el nombre con el que quedó.
type Store interface {
	Save(ext string, content io.Reader) (string, error)
}

// newName se reemplaza en tests.
var newName = func(ext string) string {
	return uuid.NewString() + ext
}

// DiskStore guarda las imágenes en un directorio local.
type DiskStore struct {
	dir string
}

// NewDiskStore crea el store. El directorio se crea en el primer Save.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Dir devuelve el directorio servido en /files/.
func (store *DiskStore) Dir() string {
	return store.dir
}

// Save escribe el contenido en un archivo nuevo con nombre aleatorio.
// Si la copia falla el archivo parcial se borra.
func (store *DiskStore) Save(ext string, content io.Reader) (string, error) {
	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := newName(ext)
	path := filepath.Join(store.dir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	_, copyErr := io.Copy(file, content)
	closeErr := file.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write %s: %w", name, err)
	}

	return name, nil
}
