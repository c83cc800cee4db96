package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/gd-level-archive/pkg/errors"
)

type memoryCacheRepo struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.ttls[key] = ttl
	return nil
}

func TestCacheServiceHitAndMiss(t *testing.T) {
	repo := newMemoryCacheRepo()
	metrics := NewMetricsService()
	svc := NewCacheService(repo, metrics, time.Hour, zap.NewNop(), true)

	var dest map[string]string
	hit, err := svc.Get(context.Background(), "k", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), "k", map[string]string{"a": "b"}, 0))
	assert.Equal(t, time.Hour, repo.ttls["k"])

	hit, err = svc.Get(context.Background(), "k", &dest)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "b", dest["a"])

	snap := metrics.Snapshot()
	assert.Equal(t, uint64(1), snap.CacheHits)
	assert.Equal(t, uint64(1), snap.CacheMisses)
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newMemoryCacheRepo()
	svc := NewCacheService(repo, nil, 0, zap.NewNop(), false)
	assert.False(t, svc.Enabled())
	require.NoError(t, svc.Set(context.Background(), "k", 1, 0))
	assert.Empty(t, repo.data)

	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
}

func TestCacheServiceBackendError(t *testing.T) {
	repo := newMemoryCacheRepo()
	repo.getErr = errors.New("connection refused")
	svc := NewCacheService(repo, nil, 0, zap.NewNop(), true)

	var dest int
	hit, err := svc.Get(context.Background(), "k", &dest)
	assert.Error(t, err)
	assert.False(t, hit)
}
