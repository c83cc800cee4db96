package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/gd-level-archive/internal/models"
)

func TestBuildLevelWhereEmpty(t *testing.T) {
	q := buildLevelWhere(models.LevelFilter{MatchMode: models.MatchContains}, "instr")
	assert.Equal(t, "", q.where())
	assert.Empty(t, q.args)
}

func TestBuildLevelWhereTextModes(t *testing.T) {
	q := buildLevelWhere(models.LevelFilter{Name: "sky", MatchMode: models.MatchContains}, "instr")
	assert.Equal(t, " WHERE instr(LOWER(Name), LOWER(?)) > 0", q.where())
	assert.Equal(t, []interface{}{"sky"}, q.args)

	q = buildLevelWhere(models.LevelFilter{Name: "sky", MatchMode: models.MatchExclusive, CaseSensitive: true}, "strpos")
	assert.Equal(t, " WHERE Name = ?", q.where())
}

func TestBuildLevelWhereExclusiveFieldsIgnoreMode(t *testing.T) {
	filter := models.LevelFilter{
		OriginalID:      "7",
		Version:         "21",
		Length:          "Long",
		RequestedRating: "Hard",
		TwoPlayer:       "Yes",
		MatchMode:       models.MatchContains,
	}
	q := buildLevelWhere(filter, "instr")

	assert.Len(t, q.conditions, 5)
	for _, cond := range q.conditions {
		assert.NotContains(t, cond, "instr", cond)
		assert.Contains(t, cond, "= LOWER(?)")
	}
	assert.Equal(t, []interface{}{"7", "21", "Long", "Hard", "Yes"}, q.args)
}

func TestBuildLevelWhereLevelIDAlwaysExact(t *testing.T) {
	q := buildLevelWhere(models.LevelFilter{LevelID: "42", MatchMode: models.MatchContains}, "instr")
	assert.Equal(t, " WHERE LOWER(CAST(ID AS TEXT)) = LOWER(?)", q.where())
}

func TestBuildLevelWhereSongTokens(t *testing.T) {
	q := buildLevelWhere(models.LevelFilter{SongIDs: " 125, ,1250,", MatchMode: models.MatchContains}, "instr")

	assert.Len(t, q.conditions, 2)
	assert.Equal(t, []interface{}{",125,", ",1250,"}, q.args)
	assert.True(t, strings.HasPrefix(q.conditions[0], "instr(',' || "))
}

func TestBuildLevelWhereNumbers(t *testing.T) {
	minCP, maxCP, minSize, coins := int64(1), int64(9), int64(2048), int64(3)
	filter := models.LevelFilter{
		RCoins:        &coins,
		CreatorPoints: models.Int64Range{Min: &minCP, Max: &maxCP},
		SizeBytes:     models.Int64Range{Min: &minSize},
		MatchMode:     models.MatchContains,
	}
	q := buildLevelWhere(filter, "instr")

	assert.Equal(t, []string{
		numericExpr("rCoins") + " = ?",
		numericExpr("CreatorPoints") + " >= ?",
		numericExpr("CreatorPoints") + " <= ?",
		sizeBytesExpr + " >= ?",
	}, q.conditions)
	assert.Equal(t, []interface{}{int64(3), int64(1), int64(9), int64(2048)}, q.args)
}

func TestBuildLevelOrderBy(t *testing.T) {
	assert.Equal(t, " ORDER BY ID ASC", buildLevelOrderBy("ID", "ASC"))
	assert.Equal(t, " ORDER BY ID DESC", buildLevelOrderBy("id", "sideways"))
	assert.Equal(t, " ORDER BY "+sizeBytesExpr+" ASC, ID ASC", buildLevelOrderBy("Size", "asc"))
	assert.Equal(t, " ORDER BY "+numericExpr("CreatorPoints")+" DESC, ID DESC", buildLevelOrderBy("CreatorPoints", "desc"))
	assert.Equal(t, "", buildLevelOrderBy("Name; DROP TABLE levels", "asc"))
}

func TestPositionFunc(t *testing.T) {
	assert.Equal(t, "strpos", positionFunc("postgres"))
	assert.Equal(t, "instr", positionFunc("sqlite"))
}
