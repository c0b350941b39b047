package filter

import (
	"math"
	"testing"

	"github.com/ougirez/yhdash/internal/domain"
)

func str(s string) *string { return &s }

func fixture() []domain.CourseRecord {
	p := func(v float64) *float64 { return &v }
	return []domain.CourseRecord{
		{Organizer: "A", Municipality: "Malmö", Area: "Data/IT", EducationName: "Systemutvecklare",
			YHPoints: p(400), RequestedSeats: domain.YearData{2024: 30}, ApprovedSeats: domain.YearData{2024: 30}},
		{Organizer: "A", Municipality: "Lund", Area: "Ekonomi", EducationName: "Redovisning",
			YHPoints: p(200), RequestedSeats: domain.YearData{2024: 20}, ApprovedSeats: domain.YearData{2024: 0}},
		{Organizer: "B", Municipality: "Malmö", Area: "Data/IT", EducationName: "Nätverkstekniker",
			RequestedSeats: domain.YearData{2024: 25}, ApprovedSeats: domain.YearData{2024: 25, 2025: 25}},
	}
}

func TestEmptyFiltersMatchEverything(t *testing.T) {
	empty := ""
	for _, f := range []Filters{{}, {Area: &empty, Organizer: &empty}} {
		out, k := Apply(fixture(), f)
		if len(out) != 3 || k.TotalApplications != 3 {
			t.Fatalf("expected all rows for %+v, got %d", f, len(out))
		}
		if !f.IsEmpty() {
			t.Fatalf("expected %+v to be empty", f)
		}
	}
}

func TestFiltersCompose(t *testing.T) {
	out, k := Apply(fixture(), Filters{Area: str("Data/IT"), Municipality: str("Malmö")})
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}

	out, k = Apply(fixture(), Filters{Area: str("Data/IT"), Organizer: str("A")})
	if len(out) != 1 || out[0].EducationName != "Systemutvecklare" {
		t.Fatalf("expected the single A Data/IT course, got %+v", out)
	}
	if k.TotalApplications != 1 || k.ApprovedApplications != 1 || k.ApprovalRate != 100 {
		t.Fatalf("unexpected KPIs %+v", k)
	}
}

func TestKPIsUseFilteredSetOnly(t *testing.T) {
	_, k := Apply(fixture(), Filters{Organizer: str("A")})

	if k.TotalApplications != 2 || k.ApprovedApplications != 1 {
		t.Fatalf("unexpected counts %+v", k)
	}
	if k.ApprovalRate != 50 {
		t.Fatalf("expected 50%% approval, got %v", k.ApprovalRate)
	}
	if k.TotalApprovedSeats != 30 || k.TotalRequestedSeats != 50 {
		t.Fatalf("unexpected seats %+v", k)
	}
	if k.DistinctOrganizers != 1 || k.MeanYHPoints != 300 {
		t.Fatalf("unexpected organizer/points %+v", k)
	}
}

func TestUnknownFilterValueYieldsZeroKPIs(t *testing.T) {
	out, k := Apply(fixture(), Filters{Municipality: str("Atlantis")})
	if len(out) != 0 {
		t.Fatalf("expected no rows, got %d", len(out))
	}
	if k != (domain.KPIs{}) {
		t.Fatalf("expected zero KPIs, got %+v", k)
	}
}

func TestApprovalRateGuardsZeroTotal(t *testing.T) {
	r := ApprovalRate(0, 0)
	if r != 0 || math.IsNaN(r) {
		t.Fatalf("expected 0, got %v", r)
	}
	if r := ApprovalRate(1, 3); r != 33.33 {
		t.Fatalf("expected 33.33, got %v", r)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := fixture()
	out, _ := Apply(in, Filters{Organizer: str("B")})
	out[0].Organizer = "changed"
	if in[2].Organizer != "B" {
		t.Fatalf("input mutated")
	}
}

func TestMeanYHPointsSkipsMissing(t *testing.T) {
	_, k := Apply(fixture(), Filters{})
	if k.MeanYHPoints != 300 {
		t.Fatalf("mean over courses with points = %v, want 300", k.MeanYHPoints)
	}

	p := func(v float64) *float64 { return &v }
	k = ComputeKPIs([]domain.CourseRecord{{YHPoints: p(1)}, {YHPoints: p(1)}, {YHPoints: p(2)}})
	if k.MeanYHPoints != 1.33 {
		t.Fatalf("mean rounds to two decimals: got %v", k.MeanYHPoints)
	}

	k = ComputeKPIs([]domain.CourseRecord{{Organizer: "A"}})
	if k.MeanYHPoints != 0 {
		t.Fatalf("no points gives 0, got %v", k.MeanYHPoints)
	}
}
