// Package filter narrows the course set to the dashboard's selector state and
// derives KPIs from what remains.
package filter

import (
	"github.com/ougirez/yhdash/internal/domain"
	"github.com/ougirez/yhdash/internal/pkg/aggregate"
	"github.com/shopspring/decimal"
)

// Filters are ANDed; a nil or empty field matches everything.
type Filters struct {
	Area          *string
	Municipality  *string
	Organizer     *string
	EducationName *string
}

func set(p *string) bool {
	return p != nil && *p != ""
}

// Match reports whether c passes every set filter.
func (f Filters) Match(c *domain.CourseRecord) bool {
	if set(f.Area) && c.Area != *f.Area {
		return false
	}
	if set(f.Municipality) && c.Municipality != *f.Municipality {
		return false
	}
	if set(f.Organizer) && c.Organizer != *f.Organizer {
		return false
	}
	if set(f.EducationName) && c.EducationName != *f.EducationName {
		return false
	}
	return true
}

// IsEmpty reports whether no filter is set.
func (f Filters) IsEmpty() bool {
	return !set(f.Area) && !set(f.Municipality) && !set(f.Organizer) && !set(f.EducationName)
}

// Apply returns a new slice with the matching records and the KPIs of that slice.
func Apply(records []domain.CourseRecord, f Filters) ([]domain.CourseRecord, domain.KPIs) {
	if f.IsEmpty() {
		out := make([]domain.CourseRecord, len(records))
		copy(out, records)
		return out, ComputeKPIs(out)
	}

	out := make([]domain.CourseRecord, 0, len(records))
	for i := range records {
		if f.Match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out, ComputeKPIs(out)
}

// ComputeKPIs derives the headline numbers from records only.
func ComputeKPIs(records []domain.CourseRecord) domain.KPIs {
	var (
		k          domain.KPIs
		approved   = decimal.Zero
		requested  = decimal.Zero
		points     = make([]aggregate.Fact, 0, len(records))
		organizers = make(map[string]struct{})
	)

	for i := range records {
		c := &records[i]
		k.TotalApplications++
		if c.Approved() {
			k.ApprovedApplications++
		}
		for _, v := range c.ApprovedSeats {
			approved = approved.Add(decimal.NewFromFloat(v))
		}
		for _, v := range c.RequestedSeats {
			requested = requested.Add(decimal.NewFromFloat(v))
		}
		if c.YHPoints != nil {
			points = append(points, aggregate.Fact{Measures: map[domain.Field]float64{domain.FieldYHPoints: *c.YHPoints}})
		}
		if c.Organizer != "" {
			organizers[c.Organizer] = struct{}{}
		}
	}

	k.TotalApprovedSeats = approved.InexactFloat64()
	k.TotalRequestedSeats = requested.InexactFloat64()
	k.DistinctOrganizers = len(organizers)
	k.ApprovalRate = ApprovalRate(k.ApprovedApplications, k.TotalApplications)
	k.MeanYHPoints = meanOf(points, domain.FieldYHPoints)
	return k
}

// meanOf is the mean of measure over facts, rounded to two decimals; 0 for none.
func meanOf(facts []aggregate.Fact, measure domain.Field) float64 {
	res, err := aggregate.Aggregate(facts, nil, measure, aggregate.OpMean)
	if err != nil || len(res.Stats) == 0 {
		return 0
	}
	return decimal.NewFromFloat(res.Stats[0].Value).Round(2).InexactFloat64()
}

// ApprovalRate is approved / total * 100, and 0 when total is 0.
func ApprovalRate(approved, total int) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(approved)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2).
		InexactFloat64()
}
