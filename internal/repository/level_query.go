package repository

import (
	"fmt"
	"strings"

	"github.com/noah-isme/gd-level-archive/internal/models"
)

// levelColumns maps catalog columns onto LevelRecord db tags. Everything except ID is
// read through its text form so empty and NULL values both surface as "".
var levelColumns = []struct {
	column string
	alias  string
}{
	{"Name", "name"},
	{"Username", "username"},
	{"CreatorPoints", "creator_points"},
	{"Description", "description"},
	{"Size", "size"},
	{"songID", "song_ids"},
	{"OriginalID", "original_id"},
	{"rCoins", "r_coins"},
	{"sCoins", "s_coins"},
	{"Version", "version"},
	{"Length", "length"},
	{"EditorTime", "editor_time"},
	{"EditorCTime", "editor_c_time"},
	{"RequestedRating", "requested_rating"},
	{"TwoPlayer", "two_player"},
	{"ObjectCount", "object_count"},
}

func selectLevelColumns() string {
	cols := make([]string, 0, len(levelColumns)+1)
	cols = append(cols, "ID AS id")
	for _, c := range levelColumns {
		cols = append(cols, fmt.Sprintf("COALESCE(CAST(%s AS TEXT), '') AS %s", c.column, c.alias))
	}
	return strings.Join(cols, ", ")
}

// numericExpr yields NULL for empty values so absent numbers drop out of comparisons.
func numericExpr(column string) string {
	return fmt.Sprintf("CAST(NULLIF(TRIM(CAST(%s AS TEXT)), '') AS BIGINT)", column)
}

// sizeBytesExpr strips the " B" unit suffix before the numeric cast.
const sizeBytesExpr = "CAST(NULLIF(TRIM(REPLACE(CAST(Size AS TEXT), ' B', '')), '') AS BIGINT)"

type textField struct {
	column string
	value  func(models.LevelFilter) string
}

// globalModeFields follow the request's match mode.
var globalModeFields = []textField{
	{"Name", func(f models.LevelFilter) string { return f.Name }},
	{"Username", func(f models.LevelFilter) string { return f.Username }},
	{"Description", func(f models.LevelFilter) string { return f.Description }},
}

// exclusiveFields always match exactly, whatever the request's match mode.
var exclusiveFields = []textField{
	{"OriginalID", func(f models.LevelFilter) string { return f.OriginalID }},
	{"Version", func(f models.LevelFilter) string { return f.Version }},
	{"Length", func(f models.LevelFilter) string { return f.Length }},
	{"RequestedRating", func(f models.LevelFilter) string { return f.RequestedRating }},
	{"TwoPlayer", func(f models.LevelFilter) string { return f.TwoPlayer }},
}

type numberField struct {
	expr  string
	value func(models.LevelFilter) *int64
}

var numberEqualsFields = []numberField{
	{numericExpr("rCoins"), func(f models.LevelFilter) *int64 { return f.RCoins }},
	{numericExpr("sCoins"), func(f models.LevelFilter) *int64 { return f.SCoins }},
	{numericExpr("EditorCTime"), func(f models.LevelFilter) *int64 { return f.EditorCTime }},
}

type rangeField struct {
	expr  string
	value func(models.LevelFilter) models.Int64Range
}

var rangeFields = []rangeField{
	{numericExpr("EditorTime"), func(f models.LevelFilter) models.Int64Range { return f.EditorTime }},
	{numericExpr("ObjectCount"), func(f models.LevelFilter) models.Int64Range { return f.ObjectCount }},
	{numericExpr("CreatorPoints"), func(f models.LevelFilter) models.Int64Range { return f.CreatorPoints }},
	{sizeBytesExpr, func(f models.LevelFilter) models.Int64Range { return f.SizeBytes }},
}

var sortColumns = map[string]string{
	strings.ToLower(models.LevelSortID):            "ID",
	strings.ToLower(models.LevelSortCreatorPoints): numericExpr("CreatorPoints"),
	strings.ToLower(models.LevelSortSize):          sizeBytesExpr,
}

// levelQuery accumulates WHERE conditions with "?" placeholders; callers rebind for the driver.
type levelQuery struct {
	conditions    []string
	args          []interface{}
	caseSensitive bool
	position      string
}

// positionFunc names the substring-position function of the driver's SQL dialect.
func positionFunc(driver string) string {
	switch driver {
	case "postgres", "pgx":
		return "strpos"
	default:
		return "instr"
	}
}

func buildLevelWhere(filter models.LevelFilter, position string) *levelQuery {
	q := &levelQuery{caseSensitive: filter.CaseSensitive, position: position}

	q.textEquals("CAST(ID AS TEXT)", filter.LevelID)
	for _, f := range globalModeFields {
		q.textMatch(f.column, f.value(filter), filter.MatchMode)
	}
	q.songTokens(filter.SongIDs)
	for _, f := range exclusiveFields {
		q.textEquals(f.column, f.value(filter))
	}
	for _, f := range numberEqualsFields {
		q.numberEquals(f.expr, f.value(filter))
	}
	for _, f := range rangeFields {
		q.numberRange(f.expr, f.value(filter))
	}
	return q
}

func (q *levelQuery) add(condition string, args ...interface{}) {
	q.conditions = append(q.conditions, condition)
	q.args = append(q.args, args...)
}

func (q *levelQuery) fold(expr string) string {
	if q.caseSensitive {
		return expr
	}
	return "LOWER(" + expr + ")"
}

func (q *levelQuery) textEquals(column, value string) {
	if value == "" {
		return
	}
	q.add(fmt.Sprintf("%s = %s", q.fold(column), q.fold("?")), value)
}

func (q *levelQuery) textContains(column, value string) {
	if value == "" {
		return
	}
	q.add(fmt.Sprintf("%s(%s, %s) > 0", q.position, q.fold(column), q.fold("?")), value)
}

func (q *levelQuery) textMatch(column, value string, mode models.MatchMode) {
	if mode == models.MatchExclusive {
		q.textEquals(column, value)
		return
	}
	q.textContains(column, value)
}

// songTokens requires every listed id as a whole comma-delimited token of songID.
func (q *levelQuery) songTokens(raw string) {
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		q.add(fmt.Sprintf("%s(',' || REPLACE(COALESCE(CAST(songID AS TEXT), ''), ' ', '') || ',', ?) > 0", q.position), ","+token+",")
	}
}

func (q *levelQuery) numberEquals(expr string, value *int64) {
	if value == nil {
		return
	}
	q.add(expr+" = ?", *value)
}

func (q *levelQuery) numberRange(expr string, r models.Int64Range) {
	if r.Min != nil {
		q.add(expr+" >= ?", *r.Min)
	}
	if r.Max != nil {
		q.add(expr+" <= ?", *r.Max)
	}
}

func (q *levelQuery) where() string {
	if len(q.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conditions, " AND ")
}

// buildLevelOrderBy returns an empty clause for unknown sort keys.
func buildLevelOrderBy(sortBy, sortOrder string) string {
	column, ok := sortColumns[strings.ToLower(strings.TrimSpace(sortBy))]
	if !ok {
		return ""
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	if column == "ID" {
		return fmt.Sprintf(" ORDER BY ID %s", direction)
	}
	return fmt.Sprintf(" ORDER BY %s %s, ID %s", column, direction, direction)
}
