package services_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoiceworks/backend/domain"
	"github.com/invoiceworks/backend/internal/infrastructure/templatecache"
	"github.com/invoiceworks/backend/internal/services"
	"github.com/invoiceworks/backend/usecase"
)

type stubStorage struct {
	data      []byte
	err       error
	downloads int
}

func (s *stubStorage) Download(context.Context, string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.downloads++
	return s.data, nil
}

func (s *stubStorage) Upload(context.Context, string, []byte, string) (string, error) {
	return "", nil
}
func (s *stubStorage) EnsureFolderPath(context.Context, string) (string, error) { return "", nil }
func (s *stubStorage) ConvertToPDF(context.Context, string, string, string) (string, error) {
	return "", nil
}
func (s *stubStorage) Delete(context.Context, string) error { return nil }
func (s *stubStorage) LatestMonthFolder(context.Context, string) (*usecase.FolderInfo, error) {
	return nil, nil
}

func openCache(t *testing.T) *templatecache.Store {
	t.Helper()
	cache, err := templatecache.Open(filepath.Join(t.TempDir(), "templates.db"), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCustomerTemplate_DownloadsOnceThenServesFromCache(t *testing.T) {
	storage := &stubStorage{data: []byte("docx template")}
	source := services.NewTemplateSource(storage, openCache(t), "tpl-1", nil)

	for i := 0; i < 3; i++ {
		data, err := source.CustomerTemplate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []byte("docx template"), data)
	}
	assert.Equal(t, 1, storage.downloads)
}

func TestCustomerTemplate_NilCacheDownloadsEveryTime(t *testing.T) {
	storage := &stubStorage{data: []byte("docx template")}
	source := services.NewTemplateSource(storage, nil, "tpl-1", nil)

	for i := 0; i < 2; i++ {
		_, err := source.CustomerTemplate(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 2, storage.downloads)
}

func TestCustomerTemplate_MissingFileID(t *testing.T) {
	source := services.NewTemplateSource(&stubStorage{}, nil, "", nil)

	_, err := source.CustomerTemplate(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestCustomerTemplate_DownloadFailure(t *testing.T) {
	storage := &stubStorage{err: errors.New("drive unavailable")}
	source := services.NewTemplateSource(storage, nil, "tpl-1", nil)

	_, err := source.CustomerTemplate(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeStorage))
}
