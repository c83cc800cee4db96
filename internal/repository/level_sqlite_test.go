package repository

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/noah-isme/gd-level-archive/internal/models"
)

const createLevelsTable = `CREATE TABLE levels (
	ID INTEGER PRIMARY KEY,
	Name TEXT, Username TEXT, CreatorPoints TEXT, Description TEXT, Size TEXT, songID TEXT,
	OriginalID TEXT, rCoins TEXT, sCoins TEXT, Version TEXT, Length TEXT, EditorTime TEXT,
	EditorCTime TEXT, RequestedRating TEXT, TwoPlayer TEXT, ObjectCount TEXT
)`

var levelFixtures = [][]interface{}{
	{1, "Sky Temple", "Alpha", "5", "A temple in the sky", "512 B", "125,1250", "0", "3", "0", "21", "Long", "100", "50", "Hard", "No", "1000"},
	{2, "Deep Sea", "beta", "", "underwater", "2048 B", "1250", "1", "", "1", "22", "Short", "", "", "Easy", "Yes", "200"},
	{3, "sky high", "Gamma", "12", "clouds 100%", "5242880 B", "", "1", "0", "0", "21", "Medium", "5000", "50", "Insane", "No", ""},
	{4, "Temple Run", "alpha", "0", "", "", "125", "0", "1", "", "20", "Tiny", "10", "", "Auto", "No", "5"},
	{5, "Nine Circles", "Zobros", "20", "100 attempts", "1048576 B", "7, 125,9", "0", "3", "3", "19", "XL", "99999", "7", "Demon", "No", "40000"},
}

func newSQLiteLevelRepo(t *testing.T) *LevelRepository {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	db.MustExec(createLevelsTable)
	for _, row := range levelFixtures {
		db.MustExec(`INSERT INTO levels VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, row...)
	}
	return NewLevelRepository(db)
}

func baseFilter() models.LevelFilter {
	return models.LevelFilter{
		MatchMode: models.MatchContains,
		SortBy:    models.LevelSortID,
		SortOrder: "asc",
		Page:      1,
		PageSize:  50,
	}
}

func ptr(v int64) *int64 { return &v }

func searchIDs(t *testing.T, repo *LevelRepository, filter models.LevelFilter) []int64 {
	t.Helper()
	levels, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	total, err := repo.Count(context.Background(), filter)
	require.NoError(t, err)

	ids := make([]int64, 0, len(levels))
	for _, l := range levels {
		ids = append(ids, l.ID)
	}
	if filter.Page == 1 && filter.PageSize >= total {
		assert.Len(t, ids, total, "count disagrees with unpaginated list")
	}
	return ids
}

func TestLevelSearchNoCriteriaPaginates(t *testing.T) {
	repo := newSQLiteLevelRepo(t)
	ctx := context.Background()

	filter := baseFilter()
	filter.PageSize = 2

	total, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, len(levelFixtures), total)

	var seen []int64
	for page := 1; page <= 3; page++ {
		filter.Page = page
		levels, err := repo.List(ctx, filter)
		require.NoError(t, err)
		for _, l := range levels {
			seen = append(seen, l.ID)
		}
	}
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, seen)
}

func TestLevelSearchContainsVersusExact(t *testing.T) {
	repo := newSQLiteLevelRepo(t)

	f := baseFilter()
	f.Name = "sky"
	assert.Equal(t, []int64{1, 3}, searchIDs(t, repo, f))

	f.MatchMode = models.MatchExclusive
	assert.Empty(t, searchIDs(t, repo, f))

	f.Name = "sky temple"
	assert.Equal(t, []int64{1}, searchIDs(t, repo, f))

	f.CaseSensitive = true
	assert.Empty(t, searchIDs(t, repo, f))

	f.Name = "Sky Temple"
	assert.Equal(t, []int64{1}, searchIDs(t, repo, f))
}

func TestLevelSearchCaseSensitiveContains(t *testing.T) {
	repo := newSQLiteLevelRepo(t)

	f := baseFilter()
	f.Username = "ALP"
	assert.Equal(t, []int64{1, 4}, searchIDs(t, repo, f))

	f.CaseSensitive = true
	f.Username = "alp"
	assert.Equal(t, []int64{4}, searchIDs(t, repo, f))
}

func TestLevelSearchContainsTreatsWildcardsLiterally(t *testing.T) {
	repo := newSQLiteLevelRepo(t)

	f := baseFilter()
	f.Description = "100%"
	assert.Equal(t, []int64{3}, searchIDs(t, repo, f))
}

func TestLevelSearchLevelIDIgnoresMatchMode(t *testing.T) {
	repo := newSQLiteLevelRepo(t)

	f := baseFilter()
	f.LevelID = "1"
	assert.Equal(t, []int64{1}, searchIDs(t, repo, f))
}

func TestLevelSearchSongTokens(t *testing.T) {
	repo := newSQLiteLevelRepo(t)

	cases := []struct {
		songs string
		want  []int64
	}{
		{"125", []int64{1, 4, 5}},
		{"1250", []int64{1, 2}},
		{"125,1250", []int64{1}},
		{" 125 , 7 ,", []int64{5}},
		{"12", []int64{}},
	}
	for _, tc := range cases {
		f := baseFilter()
		f.SongIDs = tc.songs
		assert.Equal(t, tc.want, searchIDs(t, repo, f), "songs %q", tc.songs)
	}
}

func TestLevelSearchExclusiveFieldsIgnoreContainsMode(t *testing.T) {
	repo := newSQLiteLevelRepo(t)

	f := baseFilter()
	f.Length = "Lon"
	assert.Empty(t, searchIDs(t, repo, f))

	f.Length = "long"
	assert.Equal(t, []int64{1}, searchIDs(t, repo, f))

	f.Length = ""
	f.TwoPlayer = "yes"
	assert.Equal(t, []int64{2}, searchIDs(t, repo, f))

	f.CaseSensitive = true
	assert.Empty(t, searchIDs(t, repo, f))
}

func TestLevelSearchAbsentNumbersExcluded(t *testing.T) {
	repo := newSQLiteLevelRepo(t)

	f := baseFilter()
	f.CreatorPoints = models.Int64Range{Min: ptr(0)}
	assert.Equal(t, []int64{1, 3, 4, 5}, searchIDs(t, repo, f))

	f.CreatorPoints = models.Int64Range{Max: ptr(10)}
	assert.Equal(t, []int64{1, 4}, searchIDs(t, repo, f))

	f = baseFilter()
	f.Name = "deep"
	assert.Equal(t, []int64{2}, searchIDs(t, repo, f))

	f = baseFilter()
	f.ObjectCount = models.Int64Range{Max: ptr(1000)}
	assert.Equal(t, []int64{1, 2, 4}, searchIDs(t, repo, f))
}

func TestLevelSearchNumericEquality(t *testing.T) {
	repo := newSQLiteLevelRepo(t)

	f := baseFilter()
	f.RCoins = ptr(0)
	assert.Equal(t, []int64{3}, searchIDs(t, repo, f))

	f.RCoins = ptr(3)
	assert.Equal(t, []int64{1, 5}, searchIDs(t, repo, f))

	f = baseFilter()
	f.SCoins = ptr(0)
	assert.Equal(t, []int64{1, 3}, searchIDs(t, repo, f))

	f = baseFilter()
	f.EditorCTime = ptr(50)
	f.EditorTime = models.Int64Range{Min: ptr(100), Max: ptr(5000)}
	assert.Equal(t, []int64{1, 3}, searchIDs(t, repo, f))
}

func TestLevelSearchSizeBoundsUseBytes(t *testing.T) {
	repo := newSQLiteLevelRepo(t)

	f := baseFilter()
	f.SizeBytes = models.Int64Range{Min: ptr(1024)}
	assert.Equal(t, []int64{2, 3, 5}, searchIDs(t, repo, f))

	f.SizeBytes = models.Int64Range{Max: ptr(2048)}
	assert.Equal(t, []int64{1, 2}, searchIDs(t, repo, f))

	f.SizeBytes = models.Int64Range{Min: ptr(1024), Max: ptr(2048)}
	assert.Equal(t, []int64{2}, searchIDs(t, repo, f))
}

func TestLevelSearchSorting(t *testing.T) {
	repo := newSQLiteLevelRepo(t)

	f := baseFilter()
	f.SortBy = "CreatorPoints"
	f.SortOrder = "DESC"
	assert.Equal(t, []int64{5, 3, 1, 4, 2}, searchIDs(t, repo, f))

	f.SortBy = "Size"
	f.SortOrder = "asc"
	assert.Equal(t, []int64{4, 1, 2, 5, 3}, searchIDs(t, repo, f))

	f.SortBy = "ID"
	f.SortOrder = "desc"
	assert.Equal(t, []int64{5, 4, 3, 2, 1}, searchIDs(t, repo, f))

	f.SortBy = "Name"
	assert.ElementsMatch(t, []int64{1, 2, 3, 4, 5}, searchIDs(t, repo, f))
}

func TestLevelFindByID(t *testing.T) {
	repo := newSQLiteLevelRepo(t)

	level, err := repo.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Deep Sea", level.Name)
	assert.Equal(t, "", level.CreatorPoints)
	assert.Equal(t, "2048 B", level.Size)
	assert.Equal(t, []string{"1250"}, level.SongIDList())

	_, err = repo.FindByID(context.Background(), 99)
	assert.Error(t, err)
}
