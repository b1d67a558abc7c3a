package stores

import (
	"context"
	"errors"
	"fmt"

	"api-log-analytics/internal/ingestors"
	"api-log-analytics/internal/models"
	"api-log-analytics/internal/shared/filestorages"
)

var (
	ErrLogBatchNotFound = errors.New("log batch not found")
)

// LogBatchStore reads raw log batches (a JSON array of records) from file storage.
// Decoding errors are returned unwrapped so that callers see the ingestors ServiceError codes.
//
//go:generate mockgen -source=log_batch_store.go -destination=./mocks/log_batch_store_mock.go -package=mocks
type LogBatchStore interface {
	Get(ctx context.Context, key string) ([]models.RawRecord, error)
}

type logBatchStore struct {
	fileStorage filestorages.FileStorage
}

func NewLogBatchStore(fileStorage filestorages.FileStorage) LogBatchStore {
	return &logBatchStore{fileStorage: fileStorage}
}

func (s *logBatchStore) Get(ctx context.Context, key string) ([]models.RawRecord, error) {
	readCloser, err := s.fileStorage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLogBatchNotFound, key)
		}
		return nil, fmt.Errorf("failed to get log batch: %w", err)
	}
	defer readCloser.Close()

	return ingestors.DecodeBatch(readCloser)
}
