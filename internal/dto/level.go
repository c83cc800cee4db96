package dto

// LevelQuery is the raw query string of GET /levels. Every field stays textual so the
// service can tell an absent parameter from a malformed one.
type LevelQuery struct {
	LevelID         string `form:"level_id"`
	Name            string `form:"name"`
	Username        string `form:"username"`
	Description     string `form:"description"`
	SongID          string `form:"song_id"`
	OriginalID      string `form:"original_id"`
	Version         string `form:"version"`
	Length          string `form:"length"`
	RCoins          string `form:"rcoins"`
	SCoins          string `form:"scoins"`
	MinEditorTime   string `form:"min_editor_time"`
	MaxEditorTime   string `form:"max_editor_time"`
	EditorCTime     string `form:"editor_ctime"`
	RequestedRating string `form:"requested_rating"`
	TwoPlayer       string `form:"two_player"`
	MinObjectCount  string `form:"min_object_count"`
	MaxObjectCount  string `form:"max_object_count"`
	MinCP           string `form:"min_cp"`
	MaxCP           string `form:"max_cp"`
	MinSize         string `form:"min_size"`
	MaxSize         string `form:"max_size"`
	SearchMode      string `form:"search_mode"`
	CaseSensitive   string `form:"case_sensitive"`
	SortBy          string `form:"sort_by"`
	SortOrder       string `form:"sort_order"`
	Page            string `form:"page"`
	PageSize        string `form:"page_size"`
}

// LevelExportQuery extends the search with the rendering format.
type LevelExportQuery struct {
	LevelQuery
	Format string `form:"format"`
}
