package stores

import (
	"context"
	"errors"
	"io"
	"testing"

	"api-log-analytics/internal/models"
	"api-log-analytics/internal/shared/filestorages"
	"api-log-analytics/internal/shared/filestorages/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReportStore_Save_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewReportStore(mockFileStorage)

	ctx := context.Background()
	report := &models.Report{Summary: models.Summary{TotalRequests: 2, InvalidLogCount: 1}}

	mockFileStorage.EXPECT().
		Put(ctx, "reports/out.json", gomock.Any(), filestorages.PutOptions{AllowOverwrite: false}).
		DoAndReturn(func(ctx context.Context, key string, r io.Reader, opts filestorages.PutOptions) (*filestorages.PutResult, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Contains(t, string(data), "\"total_requests\": 2")
			assert.Contains(t, string(data), "\"time_range\": null")
			assert.Equal(t, byte('\n'), data[len(data)-1])
			return &filestorages.PutResult{FileKey: key}, nil
		})

	err := store.Save(ctx, "reports/out.json", report, false)
	assert.NoError(t, err)
}

func TestReportStore_Save_Overwrite(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewReportStore(mockFileStorage)

	mockFileStorage.EXPECT().
		Put(gomock.Any(), "out.json", gomock.Any(), filestorages.PutOptions{AllowOverwrite: true}).
		Return(&filestorages.PutResult{FileKey: "out.json"}, nil)

	assert.NoError(t, store.Save(context.Background(), "out.json", &models.Report{}, true))
}

func TestReportStore_Save_AlreadyExists(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewReportStore(mockFileStorage)

	mockFileStorage.EXPECT().
		Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, filestorages.ErrFileAlreadyExists)

	err := store.Save(context.Background(), "out.json", &models.Report{}, false)
	assert.ErrorIs(t, err, ErrReportAlreadyExist)
}

func TestReportStore_Save_PutError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewReportStore(mockFileStorage)

	putErr := errors.New("disk full")
	mockFileStorage.EXPECT().
		Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, putErr)

	err := store.Save(context.Background(), "out.json", &models.Report{}, false)
	assert.ErrorIs(t, err, putErr)
	assert.Contains(t, err.Error(), "failed to put report")
}
