package sheets

import (
	"bytes"
	"encoding/csv"
	"io"
	"mime"
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/little-league/internal/domain/game"
)

// Format is the tabular encoding of a schedule sheet.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

var (
	utf8BOM   = []byte{0xEF, 0xBB, 0xBF}
	sheetJSON = jsoniter.ConfigCompatibleWithStandardLibrary
)

// DetectFormat picks a format from the response content type, then the
// location's extension or output query parameter, then the body itself.
func DetectFormat(contentType, location string, body []byte) Format {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch {
		case strings.Contains(mediaType, "csv"):
			return FormatCSV
		case strings.Contains(mediaType, "json"):
			return FormatJSON
		case strings.Contains(mediaType, "html"):
			return FormatHTML
		}
	}

	lowered := strings.ToLower(location)
	switch {
	case strings.Contains(lowered, "output=csv"), strings.Contains(lowered, "format=csv"):
		return FormatCSV
	case strings.Contains(lowered, "output=html"), strings.Contains(lowered, "/pubhtml"):
		return FormatHTML
	}
	if idx := strings.IndexAny(lowered, "?#"); idx >= 0 {
		lowered = lowered[:idx]
	}
	switch path.Ext(lowered) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".html", ".htm":
		return FormatHTML
	}

	trimmed := bytes.TrimSpace(bytes.TrimPrefix(body, utf8BOM))
	switch {
	case len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{'):
		return FormatJSON
	case len(trimmed) > 0 && trimmed[0] == '<':
		return FormatHTML
	default:
		return FormatCSV
	}
}

// Parse turns a sheet body into raw rows. Column names are kept as written;
// alias resolution happens in game.Normalize.
func Parse(body []byte, format Format) ([]game.RawRow, error) {
	body = bytes.TrimPrefix(body, utf8BOM)
	switch format {
	case FormatCSV:
		return parseCSV(body)
	case FormatJSON:
		return parseJSON(body)
	case FormatHTML:
		return parseHTML(body)
	default:
		return nil, crerr.Newf("unsupported sheet format %q", format)
	}
}

func parseCSV(body []byte) ([]game.RawRow, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, crerr.Wrap(err, "read csv record")
		}
		if blankRecord(record) {
			continue
		}
		records = append(records, record)
	}

	return rowsFromRecords(records), nil
}

// maxHeaderScan bounds how many leading records may be titles above the header.
const maxHeaderScan = 5

// rowsFromRecords maps records by the first header naming a known column
// within the leading records, and by position otherwise. Without a known
// header the first record is still skipped as a header.
func rowsFromRecords(records [][]string) []game.RawRow {
	if len(records) == 0 {
		return []game.RawRow{}
	}

	headerIdx := findHeader(records)
	if headerIdx < 0 {
		body := records[1:]
		out := make([]game.RawRow, 0, len(body))
		for _, record := range body {
			if len(record) < game.MinPositionalColumns {
				continue
			}
			row := make(game.RawRow, len(game.PositionalColumns))
			for i, field := range game.PositionalColumns {
				if i < len(record) {
					row[string(field)] = record[i]
				}
			}
			out = append(out, row)
		}
		return out
	}

	header := records[headerIdx]
	body := records[headerIdx+1:]
	out := make([]game.RawRow, 0, len(body))
	for _, record := range body {
		row := make(game.RawRow, len(header))
		for i, column := range header {
			column = strings.TrimSpace(column)
			if column == "" || i >= len(record) {
				continue
			}
			if _, exists := row[column]; exists {
				continue
			}
			row[column] = record[i]
		}
		out = append(out, row)
	}
	return out
}

func findHeader(records [][]string) int {
	for i := 0; i < len(records) && i < maxHeaderScan; i++ {
		if hasKnownColumn(records[i]) {
			return i
		}
	}
	return -1
}

func hasKnownColumn(header []string) bool {
	for _, column := range header {
		if _, ok := game.FieldForColumn(column); ok {
			return true
		}
	}
	return false
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

type jsonEnvelope struct {
	Data []map[string]any `json:"data"`
	Rows []map[string]any `json:"rows"`
}

// parseJSON accepts a bare array of objects or an object wrapping one under
// "data" or "rows".
func parseJSON(body []byte) ([]game.RawRow, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return []game.RawRow{}, nil
	}

	var items []map[string]any
	if trimmed[0] == '{' {
		var envelope jsonEnvelope
		if err := sheetJSON.Unmarshal(trimmed, &envelope); err != nil {
			return nil, crerr.Wrap(err, "decode json sheet envelope")
		}
		items = envelope.Data
		if len(items) == 0 {
			items = envelope.Rows
		}
	} else if err := sheetJSON.Unmarshal(trimmed, &items); err != nil {
		return nil, crerr.Wrap(err, "decode json sheet rows")
	}

	out := make([]game.RawRow, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		row := make(game.RawRow, len(item))
		for column, value := range item {
			row[column] = jsonCell(value)
		}
		out = append(out, row)
	}
	return out, nil
}

func jsonCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case jsoniter.Number:
		return v.String()
	default:
		raw, err := sheetJSON.MarshalToString(v)
		if err != nil {
			return ""
		}
		return raw
	}
}

// parseHTML reads the first table whose header row names a known column,
// falling back to the first table read by position.
func parseHTML(body []byte) ([]game.RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, crerr.Wrap(err, "parse html sheet")
	}

	var fallback [][]string
	var matched [][]string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		records := tableRecords(table)
		if len(records) == 0 {
			return true
		}
		if findHeader(records) >= 0 {
			matched = records
			return false
		}
		if fallback == nil {
			fallback = records
		}
		return true
	})

	if matched != nil {
		return rowsFromRecords(matched), nil
	}
	return rowsFromRecords(fallback), nil
}

func tableRecords(table *goquery.Selection) [][]string {
	var records [][]string
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := make([]string, 0, 8)
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) == 0 || blankRecord(cells) {
			return
		}
		records = append(records, cells)
	})
	return records
}
