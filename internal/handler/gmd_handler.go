package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gd-level-archive/internal/models"
	"github.com/noah-isme/gd-level-archive/pkg/response"
)

type gmdExporter interface {
	Export(ctx context.Context, levelID int64) (*models.GMDDocument, error)
}

// GMDHandler serves level saves converted to GMD.
type GMDHandler struct {
	gmd gmdExporter
}

// NewGMDHandler constructs GMDHandler.
func NewGMDHandler(gmd gmdExporter) *GMDHandler {
	return &GMDHandler{gmd: gmd}
}

// Download godoc
// @Summary Download a level as GMD
// @Tags Levels
// @Produce application/octet-stream
// @Param id path int true "Level ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /levels/{id}/gmd [get]
func (h *GMDHandler) Download(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	doc, err := h.gmd.Export(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, doc.FileName, "application/octet-stream", []byte(doc.Content))
}
