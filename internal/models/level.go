package models

import "strings"

// LevelRecord is the projected catalog row returned by level searches.
// Numeric-shaped columns stay textual because the catalog stores "absent" as empty text.
type LevelRecord struct {
	ID              int64  `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	Username        string `db:"username" json:"username"`
	CreatorPoints   string `db:"creator_points" json:"creator_points"`
	Description     string `db:"description" json:"description"`
	Size            string `db:"size" json:"size"`
	SizeBytes       *int64 `db:"-" json:"size_bytes,omitempty"`
	SongIDs         string `db:"song_ids" json:"song_ids"`
	OriginalID      string `db:"original_id" json:"original_id"`
	RCoins          string `db:"r_coins" json:"r_coins"`
	SCoins          string `db:"s_coins" json:"s_coins"`
	Version         string `db:"version" json:"version"`
	Length          string `db:"length" json:"length"`
	EditorTime      string `db:"editor_time" json:"editor_time"`
	EditorCTime     string `db:"editor_c_time" json:"editor_c_time"`
	RequestedRating string `db:"requested_rating" json:"requested_rating"`
	TwoPlayer       string `db:"two_player" json:"two_player"`
	ObjectCount     string `db:"object_count" json:"object_count"`
}

// SongIDList splits the stored song list, keeping order and dropping blanks.
func (l LevelRecord) SongIDList() []string {
	if strings.TrimSpace(l.SongIDs) == "" {
		return nil
	}
	parts := strings.Split(l.SongIDs, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// MatchMode selects how free-text filters compare.
type MatchMode string

const (
	MatchContains  MatchMode = "contains"
	MatchExclusive MatchMode = "exclusive"
)

// Level sort keys.
const (
	LevelSortID            = "ID"
	LevelSortCreatorPoints = "CreatorPoints"
	LevelSortSize          = "Size"
)

// Int64Range is an inclusive numeric bound; nil ends are not applied.
type Int64Range struct {
	Min *int64
	Max *int64
}

// IsZero reports whether neither bound is set.
func (r Int64Range) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// LevelFilter encapsulates every optional search dimension for the level catalog.
// Empty strings and nil pointers mean the dimension is not applied.
type LevelFilter struct {
	LevelID     string
	Name        string
	Username    string
	Description string
	SongIDs     string

	OriginalID      string
	Version         string
	Length          string
	RequestedRating string
	TwoPlayer       string

	RCoins      *int64
	SCoins      *int64
	EditorCTime *int64

	CreatorPoints Int64Range
	SizeBytes     Int64Range
	EditorTime    Int64Range
	ObjectCount   Int64Range

	MatchMode     MatchMode `validate:"required,oneof=contains exclusive"`
	CaseSensitive bool
	SortBy        string
	SortOrder     string `validate:"required,oneof=asc desc"`
	Page          int    `validate:"gte=1"`
	PageSize      int    `validate:"gte=1"`
}

// Offset returns the zero-based row offset of the requested page.
func (f LevelFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// GMDDocument is a rendered level export ready to be served as an attachment.
type GMDDocument struct {
	LevelID  int64
	FileName string
	Content  string
}
