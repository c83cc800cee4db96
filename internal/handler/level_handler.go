package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gd-level-archive/internal/dto"
	"github.com/noah-isme/gd-level-archive/internal/models"
	"github.com/noah-isme/gd-level-archive/internal/service"
	appErrors "github.com/noah-isme/gd-level-archive/pkg/errors"
	"github.com/noah-isme/gd-level-archive/pkg/response"
)

type levelService interface {
	ParseQuery(q dto.LevelQuery) (models.LevelFilter, error)
	Search(ctx context.Context, filter models.LevelFilter) ([]models.LevelRecord, *models.Pagination, error)
	Get(ctx context.Context, id int64) (*models.LevelRecord, error)
}

type levelExporter interface {
	Export(ctx context.Context, filter models.LevelFilter, format string) (*service.ExportFile, error)
}

// LevelHandler exposes catalog search endpoints.
type LevelHandler struct {
	levels  levelService
	exports levelExporter
}

// NewLevelHandler constructs LevelHandler.
func NewLevelHandler(levels levelService, exports levelExporter) *LevelHandler {
	return &LevelHandler{levels: levels, exports: exports}
}

// List godoc
// @Summary Search levels
// @Tags Levels
// @Produce json
// @Param level_id query string false "Exact level ID"
// @Param name query string false "Level name"
// @Param username query string false "Creator name"
// @Param description query string false "Description"
// @Param song_id query string false "Comma separated song IDs, all required"
// @Param original_id query string false "Original level ID"
// @Param version query string false "Level version"
// @Param length query string false "Tiny, Short, Medium, Long or XL"
// @Param rcoins query int false "User coins"
// @Param scoins query int false "Silver coins"
// @Param min_editor_time query int false "Minimum editor time"
// @Param max_editor_time query int false "Maximum editor time"
// @Param editor_ctime query int false "Editor time including copies"
// @Param requested_rating query string false "Requested stars"
// @Param two_player query string false "Yes or No"
// @Param min_object_count query int false "Minimum object count"
// @Param max_object_count query int false "Maximum object count"
// @Param min_cp query int false "Minimum creator points"
// @Param max_cp query int false "Maximum creator points"
// @Param min_size query int false "Minimum size in bytes"
// @Param max_size query int false "Maximum size in bytes"
// @Param search_mode query string false "contains or exclusive"
// @Param case_sensitive query string false "sensitive or insensitive"
// @Param sort_by query string false "ID, CreatorPoints or Size"
// @Param sort_order query string false "asc or desc"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /levels [get]
func (h *LevelHandler) List(c *gin.Context) {
	var q dto.LevelQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	filter, err := h.levels.ParseQuery(q)
	if err != nil {
		response.Error(c, err)
		return
	}
	levels, pagination, err := h.levels.Search(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, levels, pagination)
}

// Get godoc
// @Summary Get level detail
// @Tags Levels
// @Produce json
// @Param id path int true "Level ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /levels/{id} [get]
func (h *LevelHandler) Get(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	level, err := h.levels.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, level, nil)
}

// Export godoc
// @Summary Export a page of search results
// @Tags Levels
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /levels/export [get]
func (h *LevelHandler) Export(c *gin.Context) {
	var q dto.LevelExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	filter, err := h.levels.ParseQuery(q.LevelQuery)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.Export(c.Request.Context(), filter, q.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.FileName, file.ContentType, file.Data)
}
