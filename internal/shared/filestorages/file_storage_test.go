package filestorages

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPut_ValidKey(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	validKeys := []string{
		"logs.json",
		"reports/sample_small.report.json",
		"nested/deep/path/file.txt",
		"file-with-dashes.json",
		"file.with.dots.json",
		"..hidden/file",
	}

	for _, key := range validKeys {
		t.Run(key, func(t *testing.T) {
			data := `[{"endpoint":"/api/users"}]`

			result, err := storage.Put(ctx, key, strings.NewReader(data), PutOptions{})
			require.NoError(t, err, "key %q should be valid", key)
			assert.Equal(t, key, result.FileKey)

			content, err := os.ReadFile(filepath.Join(storage.(*fileStorage).dir, key))
			require.NoError(t, err)
			assert.Equal(t, data, string(content))
		})
	}
}

func TestPut_AllowOverwrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		overwrite bool
		wantErr   error
		wantData  string
	}{
		{name: "create-if-not-exists keeps original", overwrite: false, wantErr: ErrFileAlreadyExists, wantData: "first"},
		{name: "overwrite replaces content", overwrite: true, wantData: "second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newTestStorage(t)
			ctx := context.Background()
			key := "reports/report.json"

			_, err := storage.Put(ctx, key, strings.NewReader("first"), PutOptions{})
			require.NoError(t, err)

			_, err = storage.Put(ctx, key, strings.NewReader("second"), PutOptions{AllowOverwrite: tt.overwrite})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			content, err := os.ReadFile(filepath.Join(storage.(*fileStorage).dir, key))
			require.NoError(t, err)
			assert.Equal(t, tt.wantData, string(content))
		})
	}
}

func TestPut_NoTempFilesLeftBehind(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	_, err := storage.Put(context.Background(), "out/report.json", strings.NewReader("{}"), PutOptions{AllowOverwrite: true})
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(storage.(*fileStorage).dir, "out"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report.json", entries[0].Name())
}

func TestPutGet_InvalidKey(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	invalidKeys := []string{
		"",
		"/absolute/path",
		"..",
		"../file.txt",
		"../../etc/passwd",
		"reports/../../etc/passwd",
		"../",
		"a/../..",
		".",
	}

	for _, key := range invalidKeys {
		t.Run(key, func(t *testing.T) {
			_, err := storage.Put(ctx, key, strings.NewReader("data"), PutOptions{})
			assert.ErrorIs(t, err, ErrInvalidKey, "put key %q should be invalid", key)

			_, err = storage.Get(ctx, key)
			assert.ErrorIs(t, err, ErrInvalidKey, "get key %q should be invalid", key)
		})
	}
}

func TestGet_FileNotFound(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)

	_, err := storage.Get(context.Background(), "nonexistent.json")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestPutGet_RoundTrip(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	key := "logs/sample.json"
	data := strings.Repeat(`{"endpoint":"/api/users","method":"GET"},`, 50000)

	_, err := storage.Put(ctx, key, strings.NewReader(data), PutOptions{})
	require.NoError(t, err)

	readCloser, err := storage.Get(ctx, key)
	require.NoError(t, err)
	defer readCloser.Close()

	content, err := io.ReadAll(readCloser)
	require.NoError(t, err)
	assert.Equal(t, data, string(content))
}

func TestNewFileStorage_EmptyRootDir(t *testing.T) {
	t.Parallel()

	_, err := NewFileStorage("")
	assert.ErrorIs(t, err, ErrInvalidRootDir)
}

func newTestStorage(t *testing.T) FileStorage {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return storage
}
