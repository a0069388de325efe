// Package dataset reads the tables and the boundaries charts are drawn from.
//
// A table has a header row. The first column gives the category of each row,
// every other column a measure named after its header.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/midbel/slices"
	charts "github.com/midbel/statcharts"
	"github.com/xuri/excelize/v2"
)

var (
	ErrEmpty  = errors.New("empty table")
	ErrFormat = errors.New("unsupported format")
)

const labelColumn = "label"

type Table struct {
	Name     string
	Measures []string
	Rows     []charts.Datum
}

// Series gives one serie per measure, colored from palette.
func (t Table) Series(palette charts.Palette) []charts.Serie {
	labels := make([]charts.Label, 0, len(t.Measures))
	for i, m := range t.Measures {
		labels = append(labels, charts.Label{
			Title:    m,
			ValueKey: m,
			Color:    palette.At(i),
		})
	}
	return charts.SplitSeries(t.Rows, labels)
}

// Load reads the table stored in file, choosing the reader from its
// extension. For workbooks, the first sheet is read.
func Load(file string) (Table, error) {
	var (
		t   Table
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".csv", ".txt":
		var r *os.File
		if r, err = os.Open(file); err != nil {
			return t, err
		}
		defer r.Close()
		t, err = ReadCSV(r)
	case ".xlsx", ".xlsm":
		t, err = ReadXLSX(file, "")
	default:
		return t, fmt.Errorf("%s: %w", ext, ErrFormat)
	}
	if err != nil {
		return t, fmt.Errorf("%s: %w", file, err)
	}
	t.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return t, nil
}

func ReadCSV(r io.Reader) (Table, error) {
	rs := csv.NewReader(r)
	rs.FieldsPerRecord = -1
	rs.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Table{}, err
		}
		rows = append(rows, row)
	}
	return fromRows(rows)
}

// ReadXLSX reads sheet from the workbook at file. An empty sheet name selects
// the first sheet.
func ReadXLSX(file, sheet string) (Table, error) {
	f, err := excelize.OpenFile(file)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return Table{}, ErrEmpty
		}
		sheet = slices.Fst(list)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, err
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) (Table, error) {
	if len(rows) == 0 || len(slices.Fst(rows)) == 0 {
		return Table{}, ErrEmpty
	}
	var (
		t      Table
		header = slices.Fst(rows)
		label  = -1
	)
	for i, h := range header[1:] {
		h = strings.TrimSpace(h)
		if strings.EqualFold(h, labelColumn) {
			label = i + 1
			continue
		}
		if h == "" {
			h = fmt.Sprintf("measure%d", i+1)
		}
		t.Measures = append(t.Measures, h)
	}
	if len(t.Measures) == 0 {
		t.Measures = append(t.Measures, charts.DefaultValueKey)
	}
	for _, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		d := charts.Datum{
			Key:      strings.TrimSpace(row[0]),
			Measures: make(map[string]any),
		}
		var m int
		for i := 1; i < len(header); i++ {
			var cell string
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}
			if i == label {
				d.Label = cell
				continue
			}
			if m < len(t.Measures) {
				d.Measures[t.Measures[m]] = cell
			}
			m++
		}
		t.Rows = append(t.Rows, d)
	}
	if len(t.Rows) == 0 {
		return t, ErrEmpty
	}
	return t, nil
}
