package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// ErrLevelFileNotFound is returned when no save file exists for a level.
var ErrLevelFileNotFound = errors.New("level save file not found")

const levelFileExt = ".txt"

// LevelFile describes a raw level save located on disk.
type LevelFile struct {
	Path string
	Name string
}

// SaveDirectory resolves raw level saves stored as "{id} - {name}.txt" anywhere below a base directory.
type SaveDirectory struct {
	baseDir string
}

// NewSaveDirectory returns a handle rooted at baseDir. The directory is not required to exist yet.
func NewSaveDirectory(baseDir string) *SaveDirectory {
	if baseDir == "" {
		baseDir = "./save"
	}
	return &SaveDirectory{baseDir: baseDir}
}

// Find walks the directory tree and returns the first save file for the level.
func (s *SaveDirectory) Find(levelID int64) (*LevelFile, error) {
	prefix := strconv.FormatInt(levelID, 10) + " - "
	var found *LevelFile

	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, levelFileExt) {
			return nil
		}
		found = &LevelFile{Path: path, Name: levelName(name)}
		return fs.SkipAll
	})
	if err != nil {
		return nil, fmt.Errorf("scan save directory: %w", err)
	}
	if found == nil {
		return nil, ErrLevelFileNotFound
	}
	return found, nil
}

// Read returns the contents of the save file for the level.
func (s *SaveDirectory) Read(levelID int64) (*LevelFile, string, error) {
	file, err := s.Find(levelID)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, "", fmt.Errorf("read level save: %w", err)
	}
	return file, string(data), nil
}

// levelName strips the id prefix and extension from a save file name.
func levelName(fileName string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if _, name, ok := strings.Cut(base, " - "); ok {
		return name
	}
	return base
}

// SanitizeName keeps letters, digits, spaces, underscores and hyphens, then trims trailing space.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}

// DownloadName builds the "{id} - {name}.gmd" attachment name for a level export.
func DownloadName(levelID int64, name string) string {
	return fmt.Sprintf("%d - %s.gmd", levelID, SanitizeName(name))
}
