// Package reshape turns wide year-column tables into long (id, year, value) records.
package reshape

import (
	"fmt"

	"github.com/ougirez/yhdash/internal/pkg/schema"
)

// LongRecord is one (identifier tuple, year) pair. Value is nil for a blank cell.
type LongRecord struct {
	ID    map[string]string
	Row   int
	Year  int
	Value *float64
}

// Melt emits exactly len(bound.Family(measure)) records per row. idFields are
// copied into every record.
func Melt(rows [][]string, bound *schema.Bound, idFields []string, measure string) ([]LongRecord, error) {
	cols := bound.Family(measure)
	if len(cols) == 0 {
		return nil, &schema.SchemaError{Dataset: bound.Dataset, Column: measure, Reason: "family not bound"}
	}

	out := make([]LongRecord, 0, len(rows)*len(cols))
	for i, row := range rows {
		id := make(map[string]string, len(idFields))
		for _, f := range idFields {
			id[f] = bound.Get(row, f)
		}

		for _, c := range cols {
			rec := LongRecord{ID: id, Row: i, Year: c.Year}

			var cell string
			if c.Index < len(row) {
				cell = row[c.Index]
			}
			v, ok, err := schema.ParseNumber(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", i, c.Name, err)
			}
			if ok {
				rec.Value = &v
			}
			out = append(out, rec)
		}
	}

	return out, nil
}

// YearValues reads a whole family of one row into a year map, skipping blanks.
func YearValues(row []string, cols []schema.YearColumn) (map[int]float64, error) {
	out := make(map[int]float64, len(cols))
	for _, c := range cols {
		if c.Index >= len(row) {
			continue
		}
		v, ok, err := schema.ParseNumber(row[c.Index])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		if ok {
			out[c.Year] = v
		}
	}
	return out, nil
}
