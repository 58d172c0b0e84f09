// Package batch evaluates many negotiation or supplier inputs read from CSV,
// XLSX or YAML files.
package batch

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"gopkg.in/yaml.v3"
)

// Row is one input record keyed by field name. Line is the 1-based source
// line (CSV), sheet row (XLSX) or list position (YAML).
type Row struct {
	Line   int
	Fields map[string]string
}

// Get returns the trimmed value of a field, or "" when absent.
func (r Row) Get(field string) string {
	return strings.TrimSpace(r.Fields[field])
}

// ReadFile reads rows from path, choosing the format by extension.
func ReadFile(ctx context.Context, path string) ([]Row, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "batch: open csv")
		}
		defer f.Close() //nolint:errcheck
		return ReadCSV(ctx, f)
	case ".xlsx":
		return ReadXLSX(path, "")
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "batch: open yaml")
		}
		defer f.Close() //nolint:errcheck
		return ReadYAML(f)
	default:
		return nil, eris.Errorf("batch: unsupported file type %q (want .csv, .xlsx, .yaml)", ext)
	}
}

// ReadCSV reads a CSV document whose first row names the fields. Lines
// starting with '#' are comments.
func ReadCSV(ctx context.Context, r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	var (
		header []string
		rows   []Row
	)
	for {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "csv: context cancelled")
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}
		if header == nil {
			header = normalizeHeader(record)
			continue
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, Row{Line: line, Fields: zipRow(header, record)})
	}
	if header == nil {
		return nil, eris.New("csv: missing header row")
	}
	return rows, nil
}

// ReadXLSX reads the named sheet, or the first sheet when sheetName is empty.
// The first row names the fields; blank rows are skipped.
func ReadXLSX(path, sheetName string) ([]Row, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	sheet, err := getSheet(f, sheetName)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.New("xlsx: missing header row")
	}

	header := normalizeHeader(rowToStrings(sheet.Rows[0]))
	var rows []Row
	for i, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		if blank(cells) {
			continue
		}
		rows = append(rows, Row{Line: i + 2, Fields: zipRow(header, cells)})
	}
	return rows, nil
}

func getSheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name != "" {
		sheet, ok := f.Sheet[name]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", name)
		}
		return sheet, nil
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("xlsx: workbook has no sheets")
	}
	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

// ReadYAML reads a YAML sequence of mappings. Sequence values are joined
// with commas so list fields parse the same way as in CSV.
func ReadYAML(r io.Reader) ([]Row, error) {
	var docs []map[string]any
	if err := yaml.NewDecoder(r).Decode(&docs); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, eris.Wrap(err, "yaml: decode")
	}

	rows := make([]Row, 0, len(docs))
	for i, doc := range docs {
		fields := make(map[string]string, len(doc))
		for k, v := range doc {
			fields[strings.ToLower(strings.TrimSpace(k))] = yamlScalar(v)
		}
		rows = append(rows, Row{Line: i + 1, Fields: fields})
	}
	return rows, nil
}

func yamlScalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, 0, len(x))
		for _, p := range x {
			parts = append(parts, yamlScalar(p))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(x)
	}
}

func normalizeHeader(h []string) []string {
	out := make([]string, len(h))
	for i, name := range h {
		out[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
	}
	return out
}

func zipRow(header, record []string) map[string]string {
	fields := make(map[string]string, len(header))
	for i, name := range header {
		if name == "" || i >= len(record) {
			continue
		}
		fields[name] = strings.TrimSpace(record[i])
	}
	return fields
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
