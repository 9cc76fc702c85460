package game

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Field identifies a canonical game attribute read from raw rows.
type Field string

const (
	FieldDivision  Field = "division"
	FieldDate      Field = "date"
	FieldTime      Field = "time"
	FieldField     Field = "field"
	FieldHome      Field = "home"
	FieldAway      Field = "away"
	FieldHomeScore Field = "homeScore"
	FieldAwayScore Field = "awayScore"
)

// PositionalColumns is the column order of league sheets published without a
// recognizable header row.
var PositionalColumns = []Field{
	FieldDate,
	FieldTime,
	FieldField,
	FieldHome,
	FieldAway,
	FieldHomeScore,
	FieldAwayScore,
}

// MinPositionalColumns is the narrowest positional row that still names both teams.
const MinPositionalColumns = 5

// aliases lists accepted column spellings per field in priority order.
// Entries are compared after compactColumn.
var aliases = map[Field][]string{
	FieldDivision:  {"division", "div", "league"},
	FieldDate:      {"date", "gamedate", "day"},
	FieldTime:      {"time", "gametime", "start", "starttime"},
	FieldField:     {"field", "location", "venue", "park", "diamond"},
	FieldHome:      {"home", "hometeam"},
	FieldAway:      {"away", "awayteam", "visitor", "visitors", "visitingteam"},
	FieldHomeScore: {"homescore", "homeruns", "hometeamscore"},
	FieldAwayScore: {"awayscore", "awayruns", "visitorscore", "awayteamscore"},
}

var fieldByAlias = func() map[string]Field {
	out := make(map[string]Field)
	for field, names := range aliases {
		for _, name := range names {
			out[name] = field
		}
	}
	return out
}()

// FieldForColumn resolves a raw column header to its canonical field.
func FieldForColumn(column string) (Field, bool) {
	field, ok := fieldByAlias[compactColumn(column)]
	return field, ok
}

// Normalize maps a raw row onto a Game. For each field the first alias, in
// priority order, that is present with a non-empty value wins. Missing fields
// stay empty and unparseable scores become nil. The key is not computed.
func Normalize(row RawRow) Game {
	columns := indexColumns(row)
	return Game{
		Division:  lookup(row, columns, FieldDivision),
		Date:      lookup(row, columns, FieldDate),
		Time:      lookup(row, columns, FieldTime),
		Field:     lookup(row, columns, FieldField),
		Home:      lookup(row, columns, FieldHome),
		Away:      lookup(row, columns, FieldAway),
		HomeScore: ParseScore(lookup(row, columns, FieldHomeScore)),
		AwayScore: ParseScore(lookup(row, columns, FieldAwayScore)),
	}
}

// MaxScore is the largest score a game can carry from any source.
const MaxScore = math.MaxInt32

// ParseScore reads a recorded score. Blank, non-numeric, non-finite,
// negative, fractional and out-of-range values are treated as not played.
func ParseScore(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	if value < 0 || value != math.Trunc(value) || value > MaxScore {
		return nil
	}

	score := int(value)
	return &score
}

func indexColumns(row RawRow) map[string][]string {
	out := make(map[string][]string, len(row))
	for column := range row {
		compact := compactColumn(column)
		if compact == "" {
			continue
		}
		out[compact] = append(out[compact], column)
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out
}

func lookup(row RawRow, columns map[string][]string, field Field) string {
	for _, alias := range aliases[field] {
		for _, column := range columns[alias] {
			if value := strings.TrimSpace(row[column]); value != "" {
				return value
			}
		}
	}
	return ""
}

func compactColumn(column string) string {
	column = strings.ToLower(strings.TrimSpace(column))
	var b strings.Builder
	b.Grow(len(column))
	for _, r := range column {
		switch r {
		case ' ', '_', '-', '.', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
