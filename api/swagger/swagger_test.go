package swagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDocumentIsValidJSON(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Contains(t, doc.Paths, "/api/v1/levels")
	assert.Contains(t, doc.Paths, "/api/v1/levels/{id}/gmd")
	assert.Contains(t, doc.Paths, "/api/v1/songs/{id}/download")
}
