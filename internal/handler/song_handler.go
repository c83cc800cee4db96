package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/gd-level-archive/internal/models"
	"github.com/noah-isme/gd-level-archive/internal/service"
	"github.com/noah-isme/gd-level-archive/pkg/logger"
	"github.com/noah-isme/gd-level-archive/pkg/response"
)

type songService interface {
	Resolve(ctx context.Context, id int64) (*models.Song, error)
	Open(ctx context.Context, id int64) (*service.SongStream, error)
}

// SongHandler exposes song lookup and audio proxy endpoints.
type SongHandler struct {
	songs  songService
	logger *zap.Logger
}

// NewSongHandler constructs SongHandler.
func NewSongHandler(songs songService, logger *zap.Logger) *SongHandler {
	return &SongHandler{songs: songs, logger: logger}
}

// Get godoc
// @Summary Resolve song metadata
// @Tags Songs
// @Produce json
// @Param id path int true "Song ID"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /songs/{id} [get]
func (h *SongHandler) Get(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	song, err := h.songs.Resolve(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, song, nil)
}

// Download godoc
// @Summary Download song audio
// @Tags Songs
// @Produce audio/mpeg
// @Produce audio/ogg
// @Param id path int true "Song ID"
// @Success 200 {file} file
// @Failure 502 {object} response.Envelope
// @Router /songs/{id}/download [get]
func (h *SongHandler) Download(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	stream, err := h.songs.Open(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer func() {
		if err := stream.Body.Close(); err != nil {
			logger.FromContext(c, h.logger).Debug("close song stream", zap.Error(err))
		}
	}()

	c.DataFromReader(http.StatusOK, stream.ContentLength, stream.Song.ContentType, stream.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", stream.Song.FileName()),
	})
}
