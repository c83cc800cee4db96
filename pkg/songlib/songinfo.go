package songlib

import (
	"net/url"
	"strings"
)

const songInfoSeparator = "~|~"

// Song-info response keys.
const (
	SongInfoName = "2"
	SongInfoURL  = "10"
)

// ParseSongInfo splits a "~|~"-delimited song-info response into key/value pairs.
// A dangling key without value is ignored.
func ParseSongInfo(body string) map[string]string {
	parts := strings.Split(strings.TrimSpace(body), songInfoSeparator)
	info := make(map[string]string, len(parts)/2)
	for i := 0; i+1 < len(parts); i += 2 {
		info[parts[i]] = parts[i+1]
	}
	return info
}

// DownloadURL returns the percent-decoded download URL of a song-info response.
func DownloadURL(info map[string]string) (string, bool) {
	raw, ok := info[SongInfoURL]
	if !ok || raw == "" {
		return "", false
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", false
	}
	return decoded, true
}
