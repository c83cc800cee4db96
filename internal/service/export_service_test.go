package service

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gd-level-archive/internal/dto"
	"github.com/noah-isme/gd-level-archive/internal/models"
	appErrors "github.com/noah-isme/gd-level-archive/pkg/errors"
)

func newExportServiceForTest(t *testing.T) (*ExportService, models.LevelFilter) {
	t.Helper()
	repo := &levelRepoMock{
		total: 2,
		levels: []models.LevelRecord{
			{ID: 1, Name: "Sky Temple", Username: "robtop", CreatorPoints: "3", Size: "2048 B", SongIDs: "125,467339"},
			{ID: 2, Name: "Dash, \"Remix\"", Size: ""},
		},
	}
	levels := newLevelServiceForTest(repo)
	filter, err := levels.ParseQuery(dto.LevelQuery{})
	require.NoError(t, err)

	svc := NewExportService(levels, nil)
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc, filter
}

func TestExportServiceCSV(t *testing.T) {
	svc, filter := newExportServiceForTest(t)

	file, err := svc.Export(context.Background(), filter, "")
	require.NoError(t, err)
	assert.Equal(t, "levels_p1_20260102_030405.csv", file.FileName)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name,Creator,Creator Points,Size,Song IDs,Original ID,Version,Length,Objects,Two Player", lines[0])
	assert.Equal(t, "1,Sky Temple,robtop,3,2.00 KB,\"125, 467339\",,,,,", lines[1])
	assert.Equal(t, "2,\"Dash, \"\"Remix\"\"\",,,,,,,,,", lines[2])
}

func TestExportServicePDF(t *testing.T) {
	svc, filter := newExportServiceForTest(t)

	file, err := svc.Export(context.Background(), filter, "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasSuffix(file.FileName, ".pdf"))
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-")))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc, filter := newExportServiceForTest(t)

	_, err := svc.Export(context.Background(), filter, "xlsx")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}
