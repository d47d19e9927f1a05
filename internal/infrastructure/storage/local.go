// Package storage contiene el adaptador de almacenamiento de archivos en disco
// local para los adjuntos de tickets de servicio.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/comprint/mualish-plus-api/internal/application/service"
)

var _ service.FileStorage = (*LocalStorage)(nil)

// LocalStorage guarda blobs bajo un directorio base. Las rutas devueltas son
// relativas al directorio base y opacas para el resto del sistema.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage construye el adaptador asegurando que el directorio base exista.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de almacenamiento: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Save persiste el contenido bajo una ruta generada YYYY/MM/<uuid><ext>.
// Se genera un nombre propio en lugar de usar el del cliente para evitar
// colisiones y path traversal.
func (s *LocalStorage) Save(ctx context.Context, fileName string, data []byte) (string, error) {
	now := time.Now()
	rel := filepath.Join(
		now.Format("2006"), now.Format("01"),
		uuid.NewString()+filepath.Ext(fileName),
	)
	full := filepath.Join(s.basePath, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("crear subdirectorio: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	return rel, nil
}

// Delete elimina un blob por su ruta relativa. Un blob ya ausente no es error.
func (s *LocalStorage) Delete(ctx context.Context, storagePath string) error {
	full := filepath.Join(s.basePath, filepath.Clean(storagePath))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar archivo: %w", err)
	}
	return nil
}

// Open devuelve la ruta absoluta de un blob para servirlo en descargas.
func (s *LocalStorage) Open(storagePath string) string {
	return filepath.Join(s.basePath, filepath.Clean(storagePath))
}
