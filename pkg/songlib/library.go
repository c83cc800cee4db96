// Package songlib loads the music library reference table and parses song-info responses.
package songlib

import (
	"bytes"
	"compress/zlib"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Library is an immutable song id to name lookup built once at startup.
type Library struct {
	version string
	names   map[int64]string
}

// NewLibrary wraps a prepared name table; the map is copied.
func NewLibrary(version string, names map[int64]string) *Library {
	copied := make(map[int64]string, len(names))
	for id, name := range names {
		copied[id] = name
	}
	return &Library{version: version, names: copied}
}

// Version reports the library format version header.
func (l *Library) Version() string {
	if l == nil {
		return ""
	}
	return l.version
}

// Len returns the number of known songs.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.names)
}

// Name looks up a song name.
func (l *Library) Name(id int64) (string, bool) {
	if l == nil {
		return "", false
	}
	name, ok := l.names[id]
	return name, ok
}

// NameOrDefault falls back to "song_{id}" for unknown songs.
func (l *Library) NameOrDefault(id int64) string {
	if name, ok := l.Name(id); ok && name != "" {
		return name
	}
	return DefaultName(id)
}

// DefaultName is the placeholder name used when a song has no known title.
func DefaultName(id int64) string {
	return "song_" + strconv.FormatInt(id, 10)
}

// Decode reverses the library file encoding: URL-safe base64 over zlib.
func Decode(encoded []byte) (string, error) {
	trimmed := bytes.TrimSpace(encoded)
	raw := make([]byte, base64.URLEncoding.DecodedLen(len(trimmed)))
	n, err := base64.URLEncoding.Decode(raw, trimmed)
	if err != nil {
		n, err = base64.RawURLEncoding.Decode(raw, bytes.TrimRight(trimmed, "="))
		if err != nil {
			return "", fmt.Errorf("decode music library: %w", err)
		}
	}

	zr, err := zlib.NewReader(bytes.NewReader(raw[:n]))
	if err != nil {
		return "", fmt.Errorf("inflate music library: %w", err)
	}
	defer zr.Close() //nolint:errcheck

	inflated, err := io.ReadAll(zr)
	if err != nil {
		return "", fmt.Errorf("inflate music library: %w", err)
	}
	return string(inflated), nil
}

// Parse reads the decoded "version|artists|songs|tags" layout. Song entries are
// ';'-separated "id,name,..." records; entries with a non-numeric id are skipped.
func Parse(content string) (*Library, error) {
	sections := strings.SplitN(content, "|", 4)
	if len(sections) < 3 {
		return nil, fmt.Errorf("music library: expected at least 3 sections, got %d", len(sections))
	}

	names := make(map[int64]string)
	for _, entry := range strings.Split(sections[2], ";") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		parts := strings.Split(entry, ",")
		id, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil {
			continue
		}
		name := DefaultName(id)
		if len(parts) > 1 {
			name = parts[1]
		}
		names[id] = name
	}
	return &Library{version: sections[0], names: names}, nil
}

// Load reads the library from file, downloading it from url first when the file is missing.
func Load(ctx context.Context, client *http.Client, url, file string) (*Library, error) {
	if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
		if err := download(ctx, client, url, file); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat music library: %w", err)
	}

	encoded, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read music library: %w", err)
	}
	content, err := Decode(encoded)
	if err != nil {
		return nil, err
	}
	return Parse(content)
}

func download(ctx context.Context, client *http.Client, url, file string) error {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build music library request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download music library: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download music library: unexpected status %d", resp.StatusCode)
	}

	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("prepare music library directory: %w", err)
		}
	}
	tmp := file + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create music library file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write music library file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("write music library file: %w", err)
	}
	return os.Rename(tmp, file)
}
