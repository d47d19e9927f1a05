package service

import "context"

// FileStorage puerto de almacenamiento de blobs para los adjuntos de tickets.
// Save persiste el contenido y devuelve la ruta interna donde quedó guardado;
// Delete la elimina. Las rutas son opacas para el caso de uso.
type FileStorage interface {
	Save(ctx context.Context, fileName string, data []byte) (storagePath string, err error)
	Delete(ctx context.Context, storagePath string) error
}
