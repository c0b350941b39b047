// Package schema describes the expected header of every source table and binds
// it to the actual header at load time, so header drift fails before any
// aggregation runs.
package schema

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var yearRe = regexp.MustCompile(`(?:^|\D)(\d{4})(?:\D|$)`)

// SchemaError is fatal for the dataset it was raised for.
type SchemaError struct {
	Dataset string
	Column  string
	Reason  string
}

func (e *SchemaError) Error() string {
	if e.Dataset == "" {
		return fmt.Sprintf("schema: column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("schema: dataset %s, column %q: %s", e.Dataset, e.Column, e.Reason)
}

// ExtractYear returns the first run of exactly four digits in a column name.
func ExtractYear(column string) (int, error) {
	sub := yearRe.FindStringSubmatch(column)
	if sub == nil {
		return 0, &SchemaError{Column: column, Reason: "no 4-digit year in column name"}
	}
	year, err := strconv.Atoi(sub[1])
	if err != nil {
		return 0, &SchemaError{Column: column, Reason: err.Error()}
	}
	return year, nil
}

// YearColumn is one member of a value family.
type YearColumn struct {
	Name  string
	Index int
	Year  int
}

// Family selects every header column containing prefix. Each selected column must
// carry a distinct year.
func Family(header []string, prefix string) ([]YearColumn, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, &SchemaError{Column: prefix, Reason: "empty family prefix"}
	}

	var cols []YearColumn
	seen := make(map[int]string)
	for i, name := range header {
		if !strings.Contains(name, prefix) {
			continue
		}
		year, err := ExtractYear(name)
		if err != nil {
			return nil, &SchemaError{Column: name, Reason: fmt.Sprintf("matches prefix %q but has no year", prefix)}
		}
		if prev, ok := seen[year]; ok {
			return nil, &SchemaError{
				Column: name,
				Reason: fmt.Sprintf("ambiguous prefix %q: year %d also in column %q", prefix, year, prev),
			}
		}
		seen[year] = name
		cols = append(cols, YearColumn{Name: name, Index: i, Year: year})
	}
	if len(cols) == 0 {
		return nil, &SchemaError{Column: prefix, Reason: "no column matches family prefix"}
	}

	sort.Slice(cols, func(i, j int) bool { return cols[i].Year < cols[j].Year })
	return cols, nil
}

// Descriptor is the narrow schema of one source table.
type Descriptor struct {
	Dataset string
	// Columns maps a logical field to the header name it is read from.
	Columns map[string]string
	// Optional fields may be absent from the header.
	Optional map[string]bool
	// Families maps a logical measure to the prefix of its year columns.
	Families map[string]string
}

// Bound is a Descriptor resolved against a concrete header.
type Bound struct {
	Dataset  string
	index    map[string]int
	families map[string][]YearColumn
}

// Bind validates header against d.
func (d Descriptor) Bind(header []string) (*Bound, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, ok := pos[h]; !ok {
			pos[h] = i
		}
	}

	b := &Bound{
		Dataset:  d.Dataset,
		index:    make(map[string]int, len(d.Columns)),
		families: make(map[string][]YearColumn, len(d.Families)),
	}

	for _, field := range sortedKeys(d.Columns) {
		col := d.Columns[field]
		i, ok := pos[col]
		if !ok {
			if d.Optional[field] {
				continue
			}
			return nil, &SchemaError{Dataset: d.Dataset, Column: col, Reason: "expected column absent"}
		}
		b.index[field] = i
	}

	trimmed := make([]string, len(header))
	for i, h := range header {
		trimmed[i] = strings.TrimSpace(h)
	}

	claimed := make(map[int]string)
	for _, measure := range sortedKeys(d.Families) {
		cols, err := Family(trimmed, d.Families[measure])
		if err != nil {
			var se *SchemaError
			if errors.As(err, &se) {
				se.Dataset = d.Dataset
			}
			return nil, err
		}
		for _, c := range cols {
			if other, ok := claimed[c.Index]; ok {
				return nil, &SchemaError{
					Dataset: d.Dataset,
					Column:  c.Name,
					Reason:  fmt.Sprintf("ambiguous prefix: claimed by families %q and %q", other, measure),
				}
			}
			claimed[c.Index] = measure
		}
		b.families[measure] = cols
	}

	return b, nil
}

// Has reports whether an optional field was found.
func (b *Bound) Has(field string) bool {
	_, ok := b.index[field]
	return ok
}

// Get returns the trimmed cell of field in row, "" when absent or short.
func (b *Bound) Get(row []string, field string) string {
	i, ok := b.index[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Family returns the year columns bound for measure.
func (b *Bound) Family(measure string) []YearColumn {
	return b.families[measure]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
