package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/gd-level-archive/internal/dto"
	"github.com/noah-isme/gd-level-archive/internal/models"
	"github.com/noah-isme/gd-level-archive/pkg/bytesize"
	appErrors "github.com/noah-isme/gd-level-archive/pkg/errors"
)

type levelRepository interface {
	List(ctx context.Context, filter models.LevelFilter) ([]models.LevelRecord, error)
	Count(ctx context.Context, filter models.LevelFilter) (int, error)
	FindByID(ctx context.Context, id int64) (*models.LevelRecord, error)
}

// LevelSearchConfig bounds pagination of level searches.
type LevelSearchConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// LevelService runs catalog searches and single-level lookups.
type LevelService struct {
	repo      levelRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       LevelSearchConfig
}

// NewLevelService constructs the level service.
func NewLevelService(repo levelRepository, validate *validator.Validate, metrics *MetricsService, cfg LevelSearchConfig, logger *zap.Logger) *LevelService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 10
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 500
	}
	return &LevelService{repo: repo, validator: validate, metrics: metrics, logger: logger, cfg: cfg}
}

// ParseQuery converts raw query parameters into a filter, applying defaults.
// Malformed numbers are rejected rather than ignored.
func (s *LevelService) ParseQuery(q dto.LevelQuery) (models.LevelFilter, error) {
	p := &queryParser{}
	filter := models.LevelFilter{
		LevelID:         strings.TrimSpace(q.LevelID),
		Name:            q.Name,
		Username:        q.Username,
		Description:     q.Description,
		SongIDs:         q.SongID,
		OriginalID:      strings.TrimSpace(q.OriginalID),
		Version:         strings.TrimSpace(q.Version),
		Length:          strings.TrimSpace(q.Length),
		RequestedRating: strings.TrimSpace(q.RequestedRating),
		TwoPlayer:       strings.TrimSpace(q.TwoPlayer),

		RCoins:      p.int64("rcoins", q.RCoins),
		SCoins:      p.int64("scoins", q.SCoins),
		EditorCTime: p.int64("editor_ctime", q.EditorCTime),

		CreatorPoints: models.Int64Range{Min: p.int64("min_cp", q.MinCP), Max: p.int64("max_cp", q.MaxCP)},
		SizeBytes:     models.Int64Range{Min: p.int64("min_size", q.MinSize), Max: p.int64("max_size", q.MaxSize)},
		EditorTime:    models.Int64Range{Min: p.int64("min_editor_time", q.MinEditorTime), Max: p.int64("max_editor_time", q.MaxEditorTime)},
		ObjectCount:   models.Int64Range{Min: p.int64("min_object_count", q.MinObjectCount), Max: p.int64("max_object_count", q.MaxObjectCount)},

		MatchMode:     models.MatchMode(strings.ToLower(defaultString(q.SearchMode, string(models.MatchContains)))),
		CaseSensitive: p.caseSensitive(q.CaseSensitive),
		SortBy:        defaultString(q.SortBy, models.LevelSortID),
		SortOrder:     strings.ToLower(defaultString(q.SortOrder, "desc")),
		Page:          p.int("page", q.Page, 1),
		PageSize:      p.int("page_size", q.PageSize, s.cfg.DefaultPageSize),
	}
	if err := p.err(); err != nil {
		return models.LevelFilter{}, err
	}
	return filter, nil
}

// Search returns one page of matching levels with pagination metadata.
// Pages below 1 are served as page 1 and pages past the end as the last page.
func (s *LevelService) Search(ctx context.Context, filter models.LevelFilter) ([]models.LevelRecord, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if err := s.validator.Struct(filter); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid search parameters")
	}
	if filter.PageSize > s.cfg.MaxPageSize {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("page_size must not exceed %d", s.cfg.MaxPageSize))
	}

	start := time.Now()
	total, err := s.repo.Count(ctx, filter)
	s.metrics.ObserveDBQuery("levels_count", time.Since(start))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count levels")
	}

	pagination := models.NewPagination(filter.Page, filter.PageSize, total)
	if filter.Page > pagination.TotalPages {
		filter.Page = pagination.TotalPages
		pagination.Page = filter.Page
	}

	start = time.Now()
	levels, err := s.repo.List(ctx, filter)
	s.metrics.ObserveDBQuery("levels_list", time.Since(start))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list levels")
	}

	for i := range levels {
		projectSize(&levels[i])
	}

	s.logger.Debug("level search",
		zap.Int("total", total),
		zap.Int("page", filter.Page),
		zap.Int("returned", len(levels)),
	)
	return levels, pagination, nil
}

// Get returns a single level by id.
func (s *LevelService) Get(ctx context.Context, id int64) (*models.LevelRecord, error) {
	start := time.Now()
	level, err := s.repo.FindByID(ctx, id)
	s.metrics.ObserveDBQuery("levels_find", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "level not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load level")
	}
	projectSize(level)
	return level, nil
}

// projectSize keeps the raw byte count and replaces Size with its readable form.
func projectSize(level *models.LevelRecord) {
	if n, ok := bytesize.Parse(level.Size); ok {
		level.SizeBytes = &n
	}
	level.Size = bytesize.Humanize(level.Size)
}

func defaultString(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// queryParser collects every malformed parameter so one response can name them all.
type queryParser struct {
	invalid []string
}

func (p *queryParser) int64(name, raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		p.invalid = append(p.invalid, name)
		return nil
	}
	return &v
}

func (p *queryParser) int(name, raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.invalid = append(p.invalid, name)
		return fallback
	}
	return v
}

func (p *queryParser) caseSensitive(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "insensitive", "false", "0":
		return false
	case "sensitive", "true", "1":
		return true
	default:
		p.invalid = append(p.invalid, "case_sensitive")
		return false
	}
}

func (p *queryParser) err() error {
	if len(p.invalid) == 0 {
		return nil
	}
	return appErrors.Clone(appErrors.ErrValidation, "invalid value for "+strings.Join(p.invalid, ", "))
}
