// Package services hosts cross-cutting application services: the cached
// template source and the cron-driven generation scheduler.
package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/invoiceworks/backend/domain"
	"github.com/invoiceworks/backend/internal/infrastructure/templatecache"
	"github.com/invoiceworks/backend/usecase"
)

// TemplateSource serves the customer invoice template from external
// storage, keeping a local copy so repeated runs don't re-download it.
type TemplateSource struct {
	storage usecase.DocumentStorage
	cache   *templatecache.Store
	fileID  string
	logger  *zap.Logger
}

var _ usecase.TemplateSource = (*TemplateSource)(nil)

// NewTemplateSource wires the source from storage, cache and the template
// file ID. The cache may be nil, in which case every call downloads.
func NewTemplateSource(
	storage usecase.DocumentStorage,
	cache *templatecache.Store,
	fileID string,
	logger *zap.Logger,
) *TemplateSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateSource{
		storage: storage,
		cache:   cache,
		fileID:  fileID,
		logger:  logger,
	}
}

// CustomerTemplate returns the template bytes, preferring the local cache.
func (s *TemplateSource) CustomerTemplate(ctx context.Context) ([]byte, error) {
	if s.fileID == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "customer template file ID not configured")
	}

	if s.cache != nil {
		if data, ok, err := s.cache.Get(s.fileID); err == nil && ok {
			s.logger.Debug("template served from cache", zap.String("file_id", s.fileID))
			return data, nil
		}
	}

	data, err := s.storage.Download(ctx, s.fileID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeStorage, "download customer template", err)
	}

	if s.cache != nil {
		if err := s.cache.Put(s.fileID, data); err != nil {
			s.logger.Warn("failed to cache template", zap.Error(err))
		}
	}
	return data, nil
}
