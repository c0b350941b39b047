// Package table reads the raw source tables: spreadsheets, delimited text and
// HTML tables, local or remote.
package table

import (
	"fmt"
	"path"
	"strings"
)

// Table is a header plus string cells, exactly as read from the source.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

func (t *Table) Len() int {
	return len(t.Rows)
}

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
)

// Source describes where a dataset lives and how to decode it.
type Source struct {
	Path      string `mapstructure:"path" validate:"required"`
	Format    Format `mapstructure:"format" validate:"omitempty,oneof=xlsx csv html"`
	Sheet     string `mapstructure:"sheet"`
	Encoding  string `mapstructure:"encoding" validate:"omitempty,oneof=utf-8 latin1"`
	Delimiter string `mapstructure:"delimiter" validate:"omitempty,len=1"`
	// HeaderRow is the 0-based row holding column names.
	HeaderRow int `mapstructure:"header_row" validate:"gte=0"`
}

// ResolvedFormat returns the configured format or the one implied by the extension.
func (s Source) ResolvedFormat() (Format, error) {
	if s.Format != "" {
		return s.Format, nil
	}

	p := s.Path
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown table format for %s", s.Path)
	}
}

func (s Source) IsRemote() bool {
	return strings.HasPrefix(s.Path, "http://") || strings.HasPrefix(s.Path, "https://")
}

// fromRows splits raw rows at headerRow and pads short rows to the header width.
func fromRows(name string, rows [][]string, headerRow int) (*Table, error) {
	if len(rows) <= headerRow {
		return nil, fmt.Errorf("table %s: no header row %d", name, headerRow)
	}

	header := make([]string, len(rows[headerRow]))
	for i, h := range rows[headerRow] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	body := make([][]string, 0, len(rows)-headerRow-1)
	for _, row := range rows[headerRow+1:] {
		if isBlank(row) {
			continue
		}
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		}
		body = append(body, row)
	}

	return &Table{Name: name, Header: header, Rows: body}, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
