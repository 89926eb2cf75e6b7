package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dgallion1/docslice/internal/chunker"
	"github.com/dgallion1/docslice/internal/section"
	"github.com/xuri/excelize/v2"
)

// Excel extracts one logical unit per worksheet, in workbook order.
type Excel struct {
	MaxSectionLength int
}

func (e *Excel) Extract(data []byte) ([]section.Section, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ExtractionError{Format: FormatExcel, Err: err}
	}
	defer f.Close()

	var sections []section.Section
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, &ExtractionError{Format: FormatExcel, Err: fmt.Errorf("sheet %q: %w", name, err)}
		}
		content := serializeRows(rows)

		parts := chunker.Chunk(content, e.MaxSectionLength)
		if len(parts) > 1 {
			for k, p := range parts {
				sections = append(sections, section.Section{
					Content: p,
					Heading: fmt.Sprintf("Sheet: %s - Part %d", name, k+1),
					Part:    k + 1,
					Total:   len(parts),
				})
			}
			continue
		}
		sections = append(sections, section.Section{
			Content: content,
			Heading: fmt.Sprintf("Sheet: %s", name),
		})
	}
	return sections, nil
}

// serializeRows renders a sheet as a JSON array of objects keyed by
// the header row, indented two spaces. Keys keep column order and
// numeric-looking cells stay unquoted, so the form is canonical for a
// given sheet. Blank cells are omitted from their row object.
func serializeRows(rows [][]string) string {
	if len(rows) < 2 {
		return "[]"
	}
	headers := rows[0]

	var b strings.Builder
	b.WriteString("[")
	wroteRow := false
	for _, row := range rows[1:] {
		fields := rowFields(headers, row)
		if len(fields) == 0 {
			continue
		}
		if wroteRow {
			b.WriteString(",")
		}
		wroteRow = true
		b.WriteString("\n  {")
		for i, f := range fields {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString("\n    ")
			b.WriteString(jsonString(f.key))
			b.WriteString(": ")
			b.WriteString(f.value)
		}
		b.WriteString("\n  }")
	}
	if !wroteRow {
		return "[]"
	}
	b.WriteString("\n]")
	return b.String()
}

type rowField struct {
	key   string
	value string
}

func rowFields(headers, row []string) []rowField {
	var fields []rowField
	for i, cell := range row {
		if cell == "" {
			continue
		}
		key := fmt.Sprintf("Column %d", i+1)
		if i < len(headers) && headers[i] != "" {
			key = headers[i]
		}
		fields = append(fields, rowField{key: key, value: jsonValue(cell)})
	}
	return fields
}

// jsonValue emits a cell unquoted only when it is already in
// canonical numeric form. ParseFloat alone also accepts "007", "1e5",
// and "Infinity", none of which may appear bare in the output: the
// first two would change meaning, the last is not valid JSON.
func jsonValue(cell string) string {
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return jsonString(cell)
	}
	if strconv.FormatFloat(f, 'f', -1, 64) != cell {
		return jsonString(cell)
	}
	return cell
}

func jsonString(s string) string {
	out, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(out)
}
