package resolve

import (
	"errors"
	"testing"
)

func TestResolveDefaultTable(t *testing.T) {
	r := NewResolver(DefaultTable())

	region, err := r.Resolve("Stockholm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if region != "Stockholms län" {
		t.Fatalf("expected Stockholms län, got %q", region)
	}

	region, err = r.Resolve("Malmö")
	if err != nil || region != "Skåne län" {
		t.Fatalf("expected Skåne län, got %q (%v)", region, err)
	}
}

func TestResolveUnknownMunicipality(t *testing.T) {
	r := NewResolver(DefaultTable())

	for _, name := range []string{"Nonexistent Town", "stockholm", "", `Se "Lista flera kommuner"`} {
		region, err := r.Resolve(name)
		if !errors.Is(err, ErrUnresolved) {
			t.Fatalf("%q: expected ErrUnresolved, got %v", name, err)
		}
		if region != "" {
			t.Fatalf("%q: expected no region, got %q", name, region)
		}
	}
}

func TestSubstituteTable(t *testing.T) {
	table, err := NewTable([]Pair{{Municipality: "Atlantis", Region: "Havets län"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := NewResolver(table)

	if region, err := r.Resolve("Atlantis"); err != nil || region != "Havets län" {
		t.Fatalf("expected Havets län, got %q (%v)", region, err)
	}
	if _, err := r.Resolve("Stockholm"); !errors.Is(err, ErrUnresolved) {
		t.Fatalf("expected substituted table to not know Stockholm")
	}
}

func TestNewTableRejectsConflicts(t *testing.T) {
	_, err := NewTable([]Pair{
		{Municipality: "Lund", Region: "Skåne län"},
		{Municipality: "Lund", Region: "Hallands län"},
	})
	if err == nil {
		t.Fatalf("expected conflict error")
	}

	if _, err := NewTable([]Pair{
		{Municipality: "Lund", Region: "Skåne län"},
		{Municipality: "Lund", Region: "Skåne län"},
	}); err != nil {
		t.Fatalf("identical duplicates should be accepted: %v", err)
	}
}

func TestDefaultTableIsFreshCopy(t *testing.T) {
	a := DefaultTable()
	b := DefaultTable()
	a.m["Atlantis"] = "Havets län"
	if _, ok := b.m["Atlantis"]; ok {
		t.Fatalf("default tables must not share state")
	}
	if b.Len() != len(defaultPairs) {
		t.Fatalf("expected %d entries, got %d", len(defaultPairs), b.Len())
	}
}
