package service

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/noah-isme/gd-level-archive/internal/models"
	appErrors "github.com/noah-isme/gd-level-archive/pkg/errors"
	"github.com/noah-isme/gd-level-archive/pkg/gmd"
	"github.com/noah-isme/gd-level-archive/pkg/storage"
)

type levelSaveReader interface {
	Read(levelID int64) (*storage.LevelFile, string, error)
}

// GMDCacheConfig sizes the rendered document cache. A zero Size disables it.
type GMDCacheConfig struct {
	Size int
	TTL  time.Duration
}

// GMDService converts raw level saves into downloadable GMD documents.
type GMDService struct {
	saves   levelSaveReader
	cache   *expirable.LRU[int64, *models.GMDDocument]
	metrics *MetricsService
	logger  *zap.Logger
}

// NewGMDService constructs the GMD export service.
func NewGMDService(saves levelSaveReader, cacheCfg GMDCacheConfig, metrics *MetricsService, logger *zap.Logger) *GMDService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &GMDService{saves: saves, metrics: metrics, logger: logger}
	if cacheCfg.Size > 0 {
		svc.cache = expirable.NewLRU[int64, *models.GMDDocument](cacheCfg.Size, nil, cacheCfg.TTL)
	}
	return svc
}

// Export renders the level's save file. A save with no pairs still yields a document.
func (s *GMDService) Export(ctx context.Context, levelID int64) (*models.GMDDocument, error) {
	if s.cache != nil {
		if doc, ok := s.cache.Get(levelID); ok {
			s.metrics.RecordCacheOperation(true, 0)
			s.metrics.RecordGMDConversion("cached")
			return doc, nil
		}
		s.metrics.RecordCacheOperation(false, 0)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, raw, err := s.saves.Read(levelID)
	if err != nil {
		if errors.Is(err, storage.ErrLevelFileNotFound) {
			s.metrics.RecordGMDConversion("not_found")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "level file not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read level file")
	}

	pairs, stats := gmd.ParseWithStats(raw)
	log := s.logger.With(zap.Int64("level_id", levelID), zap.String("path", file.Path))
	outcome := "ok"
	if stats.Pairs == 0 {
		outcome = "empty"
		log.Warn("level save has no key/value pairs", zap.Int("pairs", 0))
	}
	if len(stats.Duplicates) > 0 {
		log.Debug("level save repeats keys, keeping last value", zap.Strings("keys", stats.Duplicates))
	}

	doc := &models.GMDDocument{
		LevelID:  levelID,
		FileName: storage.DownloadName(levelID, file.Name),
		Content:  gmd.Render(levelID, pairs),
	}
	if s.cache != nil {
		s.cache.Add(levelID, doc)
	}
	s.metrics.RecordGMDConversion(outcome)
	return doc, nil
}
