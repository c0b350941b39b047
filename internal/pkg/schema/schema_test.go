package schema

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractYear(t *testing.T) {
	cases := []struct {
		column string
		year   int
		fail   bool
	}{
		{column: "Seats 2021", year: 2021},
		{column: "Sökt antal platser 2024", year: 2024},
		{column: "Antal beviljade platser start 2024 omgång 2025", year: 2024},
		{column: "Totalt antal beviljade platser", fail: true},
		{column: "YH 202", fail: true},
		{column: "Kod 12345 platser 2024", year: 2024},
		{column: "2023", year: 2023},
		{column: "Kod 123456", fail: true},
	}

	for _, tc := range cases {
		year, err := ExtractYear(tc.column)
		if tc.fail {
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("%q: expected SchemaError, got %v", tc.column, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.column, err)
		}
		if year != tc.year {
			t.Fatalf("%q: expected %d, got %d", tc.column, tc.year, year)
		}
	}
}

func TestFamilySortsByYear(t *testing.T) {
	header := []string{"Kommun", "Seats 2022", "Seats 2020", "Seats 2021"}

	cols, err := Family(header, "Seats")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(cols))
	}
	for i, want := range []int{2020, 2021, 2022} {
		if cols[i].Year != want {
			t.Fatalf("column %d: expected year %d, got %d", i, want, cols[i].Year)
		}
	}
	if cols[0].Index != 2 {
		t.Fatalf("expected header index 2 for 2020, got %d", cols[0].Index)
	}
}

func TestFamilyRejectsColumnWithoutYear(t *testing.T) {
	header := []string{"Seats 2020", "Seats total"}

	_, err := Family(header, "Seats")
	if err == nil || !strings.Contains(err.Error(), "has no year") {
		t.Fatalf("expected missing year error, got %v", err)
	}
}

func TestFamilyRejectsDuplicateYear(t *testing.T) {
	header := []string{"Seats 2020", "Seats requested 2020"}

	_, err := Family(header, "Seats")
	if err == nil || !strings.Contains(err.Error(), "ambiguous prefix") {
		t.Fatalf("expected ambiguous prefix error, got %v", err)
	}
}

func TestBindReportsMissingColumn(t *testing.T) {
	d := Descriptor{
		Dataset: "courses",
		Columns: map[string]string{"organizer": "Anordnare namn", "municipality": "Kommun"},
	}

	_, err := d.Bind([]string{"Anordnare namn"})
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Dataset != "courses" || se.Column != "Kommun" {
		t.Fatalf("unexpected error fields: %+v", se)
	}
}

func TestBindSkipsOptionalColumn(t *testing.T) {
	d := Descriptor{
		Columns:  map[string]string{"organizer": "Anordnare namn", "points": "YH-poäng"},
		Optional: map[string]bool{"points": true},
	}

	b, err := d.Bind([]string{" Anordnare namn "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Has("points") {
		t.Fatalf("expected optional column to be absent")
	}
	if got := b.Get([]string{" Yrkeshögskolan "}, "organizer"); got != "Yrkeshögskolan" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestBindRejectsOverlappingFamilies(t *testing.T) {
	d := Descriptor{
		Dataset: "courses",
		Families: map[string]string{
			"requested": "platser",
			"approved":  "beviljade platser",
		},
	}
	header := []string{"Sökt antal platser 2024", "Antal beviljade platser 2024"}

	_, err := d.Bind(header)
	if err == nil || !strings.Contains(err.Error(), "ambiguous prefix") {
		t.Fatalf("expected ambiguous prefix error, got %v", err)
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		cell    string
		value   float64
		present bool
		fail    bool
	}{
		{cell: "12", value: 12, present: true},
		{cell: "1 234,5", value: 1234.5, present: true},
		{cell: "2 000", value: 2000, present: true},
		{cell: "", present: false},
		{cell: "..", present: false},
		{cell: "n/a", fail: true},
		{cell: "NaN", fail: true},
		{cell: "inf", fail: true},
		{cell: "-Infinity", fail: true},
	}

	for _, tc := range cases {
		v, ok, err := ParseNumber(tc.cell)
		if tc.fail {
			if err == nil {
				t.Fatalf("%q: expected error", tc.cell)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.cell, err)
		}
		if ok != tc.present || v != tc.value {
			t.Fatalf("%q: expected (%v, %v), got (%v, %v)", tc.cell, tc.value, tc.present, v, ok)
		}
	}
}
