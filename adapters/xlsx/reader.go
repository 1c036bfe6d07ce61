package xlsx

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"flextab/domain/table"
	"flextab/internal"

	"github.com/xuri/excelize/v2"
)

// TableReader reads tables from xlsx and csv files. It implements
// ports.TableReaderPort.
type TableReader struct {
	sheet string
	log   *internal.Logger
}

// NewTableReader creates a reader for the given worksheet name; csv files
// ignore the sheet.
func NewTableReader(sheet string) *TableReader {
	if sheet == "" {
		sheet = "Sheet1"
	}
	return &TableReader{sheet: sheet, log: internal.DefaultLogger}
}

// ReadTable reads a file into a typed table. The first row is the header;
// column types are inferred from the data.
func (r *TableReader) ReadTable(path string) (*table.Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("table file not found: %s", path)
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = r.readCSV(path)
	default:
		rows, err = r.readXLSX(path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("table file must have a header row and at least one data row")
	}

	tbl, err := r.buildTable(rows)
	if err != nil {
		return nil, err
	}
	r.log.Debug("read table %s (%d columns, %d rows)", path, tbl.NCol(), tbl.NRow())
	return tbl, nil
}

func (r *TableReader) readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", r.sheet, err)
	}
	return rows, nil
}

func (r *TableReader) readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv file: %w", err)
	}
	return rows, nil
}

// buildTable infers a type per column and converts the string grid into a
// typed table. Cells that fail to parse for the inferred type become blanks.
func (r *TableReader) buildTable(rows [][]string) (*table.Table, error) {
	header := rows[0]
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
	}

	body := make([][]string, len(rows)-1)
	for i, row := range rows[1:] {
		cells := make([]string, len(names))
		for j := range names {
			if j < len(row) {
				cells[j] = strings.TrimSpace(row[j])
			}
		}
		body[i] = cells
	}

	types := make([]table.Type, len(names))
	for c := range names {
		values := make([]string, len(body))
		for i := range body {
			values[i] = body[i][c]
		}
		types[c] = inferColumnType(values)
	}

	cells := make([][]table.Value, len(body))
	for i, row := range body {
		cells[i] = make([]table.Value, len(names))
		for c, raw := range row {
			cells[i][c] = parseCell(raw, types[c])
		}
	}
	return table.FromRows(names, types, cells)
}

// typeThreshold is the share of non-empty cells that must parse for a column
// to take a non-text type
const typeThreshold = 0.9

// inferColumnType picks the dominant parseable type of a column, defaulting
// to text
func inferColumnType(values []string) table.Type {
	var total, numeric, logical, dates int
	for _, v := range values {
		if v == "" {
			continue
		}
		total++
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			numeric++
		}
		if isLogical(v) {
			logical++
		}
		if _, err := time.Parse(table.DateLayout, v); err == nil {
			dates++
		}
	}
	if total == 0 {
		return table.TypeText
	}

	ratio := func(n int) float64 { return float64(n) / float64(total) }
	switch {
	case ratio(logical) >= typeThreshold:
		return table.TypeLogical
	case ratio(dates) >= typeThreshold:
		return table.TypeDate
	case ratio(numeric) >= typeThreshold:
		return table.TypeNumeric
	default:
		return table.TypeText
	}
}

func isLogical(v string) bool {
	switch strings.ToLower(v) {
	case "true", "false", "yes", "no":
		return true
	}
	return false
}

func parseCell(raw string, typ table.Type) table.Value {
	if raw == "" {
		return table.Blank(typ)
	}
	switch typ {
	case table.TypeNumeric:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return table.Num(f)
		}
	case table.TypeLogical:
		switch strings.ToLower(raw) {
		case "true", "yes":
			return table.Logical(true)
		case "false", "no":
			return table.Logical(false)
		}
	case table.TypeDate:
		if t, err := time.Parse(table.DateLayout, raw); err == nil {
			return table.Date(t)
		}
	case table.TypeText:
		return table.Text(raw)
	}
	return table.Blank(typ)
}
