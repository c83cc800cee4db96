package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/gd-level-archive/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, "song", nil)

	var dest map[string]string
	err := repo.Get(context.Background(), "42", &dest)
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(context.Background(), "42", map[string]string{"name": "x"}, time.Minute))
	assert.NoError(t, repo.Close())
}

func TestCacheRepositoryKeyNamespace(t *testing.T) {
	assert.Equal(t, "song:42", NewCacheRepository(nil, "song", nil).key("42"))
	assert.Equal(t, "42", NewCacheRepository(nil, "", nil).key("42"))
}
