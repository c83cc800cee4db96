package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/gd-level-archive/internal/models"
	appErrors "github.com/noah-isme/gd-level-archive/pkg/errors"
	"github.com/noah-isme/gd-level-archive/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type levelSearcher interface {
	Search(ctx context.Context, filter models.LevelFilter) ([]models.LevelRecord, *models.Pagination, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

// ExportFile is a rendered search page ready for download.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

var levelExportHeaders = []string{
	"ID", "Name", "Creator", "Creator Points", "Size", "Song IDs",
	"Original ID", "Version", "Length", "Objects", "Two Player",
}

// ExportService renders one page of level search results as a file.
type ExportService struct {
	levels    levelSearcher
	renderers map[string]datasetRenderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService with CSV and PDF renderers.
func NewExportService(levels levelSearcher, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		levels: levels,
		renderers: map[string]datasetRenderer{
			ExportFormatCSV: export.NewCSVExporter(),
			ExportFormatPDF: export.NewPDFExporter(),
		},
		logger: logger,
		now:    time.Now,
	}
}

// Export runs the search and renders the resulting page in the requested format.
func (s *ExportService) Export(ctx context.Context, filter models.LevelFilter, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	levels, pagination, err := s.levels.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	dataset := buildLevelDataset(levels, pagination)
	data, err := renderer.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.logger.Info("level export rendered",
		zap.String("format", format),
		zap.Int("rows", len(levels)),
		zap.Int("bytes", len(data)),
	)
	return &ExportFile{
		FileName:    fmt.Sprintf("levels_p%d_%s.%s", pagination.Page, s.now().UTC().Format("20060102_150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

func buildLevelDataset(levels []models.LevelRecord, pagination *models.Pagination) export.Dataset {
	rows := make([][]string, 0, len(levels))
	for _, l := range levels {
		rows = append(rows, []string{
			strconv.FormatInt(l.ID, 10),
			l.Name,
			l.Username,
			l.CreatorPoints,
			l.Size,
			strings.Join(l.SongIDList(), ", "),
			l.OriginalID,
			l.Version,
			l.Length,
			l.ObjectCount,
			l.TwoPlayer,
		})
	}
	return export.Dataset{
		Title:   fmt.Sprintf("Levels - page %d of %d (%d matches)", pagination.Page, pagination.TotalPages, pagination.TotalCount),
		Headers: levelExportHeaders,
		Rows:    rows,
	}
}
