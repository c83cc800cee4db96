package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/gd-level-archive/internal/models"
	appErrors "github.com/noah-isme/gd-level-archive/pkg/errors"
	"github.com/noah-isme/gd-level-archive/pkg/songlib"
)

// Custom songs hosted on the CDN start at this id; lower ids go through the song-info API.
const cdnSongThreshold int64 = 10000000

const songInfoBinaryVersion = "45"

const maxSongInfoBytes = 64 << 10

var errSongUnavailable = appErrors.Clone(appErrors.ErrUpstream, "song is not available")

type songNames interface {
	NameOrDefault(id int64) string
}

// SongConfig points the resolver at its upstreams.
type SongConfig struct {
	CDNBaseURL string
	InfoURL    string
	InfoSecret string
	CacheTTL   time.Duration
}

// SongStream is an open audio download.
type SongStream struct {
	Song          *models.Song
	Body          io.ReadCloser
	ContentLength int64
}

// SongService resolves song metadata and proxies audio downloads.
type SongService struct {
	library songNames
	client  *http.Client
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	cfg     SongConfig
}

// NewSongService constructs a song service. library may be nil, in which case CDN songs get default names.
func NewSongService(library songNames, client *http.Client, cache *CacheService, metrics *MetricsService, cfg SongConfig, logger *zap.Logger) *SongService {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if library == nil {
		library = (*songlib.Library)(nil)
	}
	cfg.CDNBaseURL = strings.TrimRight(cfg.CDNBaseURL, "/")
	return &SongService{library: library, client: client, cache: cache, metrics: metrics, logger: logger, cfg: cfg}
}

// Resolve returns the song's display name and audio location.
func (s *SongService) Resolve(ctx context.Context, id int64) (*models.Song, error) {
	if id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "song id must be positive")
	}
	if id >= cdnSongThreshold {
		s.metrics.RecordSongResolution("cdn", true)
		return &models.Song{
			ID:          id,
			Name:        s.library.NameOrDefault(id),
			URL:         fmt.Sprintf("%s/%d.ogg", s.cfg.CDNBaseURL, id),
			ContentType: "audio/ogg",
			Extension:   "ogg",
		}, nil
	}

	key := strconv.FormatInt(id, 10)
	var cached models.Song
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	song, err := s.fetchSongInfo(ctx, id)
	s.metrics.RecordSongResolution("song_info", err == nil)
	if err != nil {
		s.logger.Warn("song info lookup failed", zap.Int64("song_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, errSongUnavailable.Code, errSongUnavailable.Status, errSongUnavailable.Message)
	}
	_ = s.cache.Set(ctx, key, song, s.cfg.CacheTTL)
	return song, nil
}

// Open resolves the song and starts downloading its audio. Callers must close Body.
func (s *SongService) Open(ctx context.Context, id int64) (*SongStream, error) {
	song, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, song.URL, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, errSongUnavailable.Code, errSongUnavailable.Status, errSongUnavailable.Message)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("song download failed", zap.Int64("song_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, errSongUnavailable.Code, errSongUnavailable.Status, errSongUnavailable.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		s.logger.Warn("song download rejected", zap.Int64("song_id", id), zap.Int("status", resp.StatusCode))
		return nil, appErrors.Clone(errSongUnavailable, "")
	}
	return &SongStream{Song: song, Body: resp.Body, ContentLength: resp.ContentLength}, nil
}

func (s *SongService) fetchSongInfo(ctx context.Context, id int64) (*models.Song, error) {
	form := url.Values{}
	form.Set("secret", s.cfg.InfoSecret)
	form.Set("binaryVersion", songInfoBinaryVersion)
	form.Set("songID", strconv.FormatInt(id, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.InfoURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build song info request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// The song-info endpoint rejects requests that carry a User-Agent.
	req.Header.Set("User-Agent", "")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("song info request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("song info status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSongInfoBytes))
	if err != nil {
		return nil, fmt.Errorf("read song info: %w", err)
	}

	info := songlib.ParseSongInfo(string(body))
	downloadURL, ok := songlib.DownloadURL(info)
	if !ok {
		return nil, fmt.Errorf("song info has no download url")
	}
	name := info[songlib.SongInfoName]
	if name == "" {
		name = songlib.DefaultName(id)
	}
	return &models.Song{
		ID:          id,
		Name:        name,
		URL:         downloadURL,
		ContentType: "audio/mpeg",
		Extension:   "mp3",
	}, nil
}
