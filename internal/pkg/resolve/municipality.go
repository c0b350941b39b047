// Package resolve maps municipality (kommun) names to their region (län).
package resolve

import (
	"errors"
	"fmt"
)

// ErrUnresolved marks a municipality that is not in the mapping table.
var ErrUnresolved = errors.New("unresolved municipality")

// Pair is one mapping table entry.
type Pair struct {
	Municipality string `mapstructure:"municipality" validate:"required"`
	Region       string `mapstructure:"region" validate:"required"`
}

// Table is a read-only municipality -> region mapping.
type Table struct {
	m map[string]string
}

// NewTable builds a table; a municipality listed twice with different regions is an error.
func NewTable(pairs []Pair) (*Table, error) {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		if prev, ok := m[p.Municipality]; ok && prev != p.Region {
			return nil, fmt.Errorf("municipality %q mapped to both %q and %q", p.Municipality, prev, p.Region)
		}
		m[p.Municipality] = p.Region
	}
	return &Table{m: m}, nil
}

func (t *Table) Len() int {
	return len(t.m)
}

// Resolver looks municipalities up in an injected table.
type Resolver struct {
	table *Table
}

func NewResolver(table *Table) *Resolver {
	return &Resolver{table: table}
}

// Resolve is an exact, case-sensitive lookup.
func (r *Resolver) Resolve(municipality string) (string, error) {
	region, ok := r.table.m[municipality]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnresolved, municipality)
	}
	return region, nil
}
