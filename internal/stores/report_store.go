package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"api-log-analytics/internal/models"
	"api-log-analytics/internal/shared/filestorages"
)

var (
	ErrReportAlreadyExist = errors.New("report already exists")
)

// ReportStore persists analysis reports as indented JSON.
// Without overwrite, Save is create-if-not-exists: an existing report is never clobbered and
// ErrReportAlreadyExist is returned instead.
//
//go:generate mockgen -source=report_store.go -destination=./mocks/report_store_mock.go -package=mocks
type ReportStore interface {
	Save(ctx context.Context, key string, report *models.Report, overwrite bool) error
}

type reportStore struct {
	fileStorage filestorages.FileStorage
}

func NewReportStore(fileStorage filestorages.FileStorage) ReportStore {
	return &reportStore{fileStorage: fileStorage}
}

func (s *reportStore) Save(ctx context.Context, key string, report *models.Report, overwrite bool) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	jsonData = append(jsonData, '\n')

	_, err = s.fileStorage.Put(ctx, key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: overwrite})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrReportAlreadyExist
		}
		return fmt.Errorf("failed to put report: %w", err)
	}
	return nil
}
