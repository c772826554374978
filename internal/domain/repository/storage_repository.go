package repository

import "context"

// StorageRepository publishes a rendered report file and returns its location.
type StorageRepository interface {
	Upload(ctx context.Context, localPath string) (string, error)
}
