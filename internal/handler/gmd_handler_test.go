package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gd-level-archive/internal/models"
	appErrors "github.com/noah-isme/gd-level-archive/pkg/errors"
)

type gmdExporterMock struct {
	doc *models.GMDDocument
	err error
	id  int64
}

func (m *gmdExporterMock) Export(ctx context.Context, levelID int64) (*models.GMDDocument, error) {
	m.id = levelID
	return m.doc, m.err
}

func TestGMDHandlerDownload(t *testing.T) {
	content := `<?xml version="1.0"?><plist version="1.0" gjver="2.0"><dict></dict></plist>`
	mock := &gmdExporterMock{doc: &models.GMDDocument{LevelID: 1234, FileName: "1234 - Sky Temple.gmd", Content: content}}
	h := NewGMDHandler(mock)

	c, w := newTestContext(http.MethodGet, "/download/1234")
	c.Params = gin.Params{{Key: "id", Value: "1234"}}
	h.Download(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1234), mock.id)
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="1234 - Sky Temple.gmd"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, content, w.Body.String())
}

func TestGMDHandlerNotFound(t *testing.T) {
	h := NewGMDHandler(&gmdExporterMock{err: appErrors.Clone(appErrors.ErrNotFound, "level file not found")})

	c, w := newTestContext(http.MethodGet, "/download/9")
	c.Params = gin.Params{{Key: "id", Value: "9"}}
	h.Download(c)

	require.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "level file not found", env.Error.Message)
}
