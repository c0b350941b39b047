package dashboard

import (
	"context"
	"fmt"

	"github.com/ougirez/yhdash/internal/domain"
	"github.com/ougirez/yhdash/internal/pkg/aggregate"
	"github.com/ougirez/yhdash/internal/pkg/constants"
	"github.com/ougirez/yhdash/internal/pkg/filter"
)

// courseDims resolves the grouping dimensions of course rows. A municipality
// missing from the mapping table leaves the row without region keys.
type courseDims struct {
	s    *Service
	code func(name string) (string, string, error)
}

func (s *Service) newCourseDims() *courseDims {
	return &courseDims{s: s, code: s.coder.Memo()}
}

func (d *courseDims) of(c *domain.CourseRecord) map[domain.Field]string {
	dims := make(map[domain.Field]string, 6)
	put := func(f domain.Field, v string) {
		if v != "" {
			dims[f] = v
		}
	}

	put(domain.FieldOrganizer, c.Organizer)
	put(domain.FieldArea, c.Area)
	put(domain.FieldEducationName, c.EducationName)
	if c.Municipality != constants.MultipleMunicipalities {
		put(domain.FieldMunicipality, c.Municipality)
	}

	region, err := d.s.resolver.Resolve(c.Municipality)
	if err != nil {
		return dims
	}
	dims[domain.FieldRegion] = region
	if code, canonical, err := d.code(region); err == nil {
		dims[domain.FieldRegion] = canonical
		dims[domain.FieldRegionCode] = code
	}
	return dims
}

type seatFamily int

const (
	requestedSeats seatFamily = iota
	approvedSeats
)

func (f seatFamily) field() domain.Field {
	if f == approvedSeats {
		return domain.FieldApprovedSeats
	}
	return domain.FieldRequestedSeats
}

func (f seatFamily) of(c *domain.CourseRecord) domain.YearData {
	if f == approvedSeats {
		return c.ApprovedSeats
	}
	return c.RequestedSeats
}

// latestYear is the newest year of the family over the whole course set.
func (s *Service) latestYear(f seatFamily) domain.Year {
	var year domain.Year
	for i := range s.ds.Courses {
		if y := latest(f.of(&s.ds.Courses[i])); y > year {
			year = y
		}
	}
	return year
}

// seatFacts emits one fact per (record, year) of the family; a non-zero year
// keeps that year only. A blank cell gives a fact without the measure.
func (s *Service) seatFacts(records []domain.CourseRecord, f seatFamily, year domain.Year) []aggregate.Fact {
	dims := s.newCourseDims()
	measure := f.field()

	facts := make([]aggregate.Fact, 0, len(records))
	for i := range records {
		c := &records[i]
		d := dims.of(c)
		values := f.of(c)

		if year != 0 {
			fact := aggregate.Fact{Dims: d, Year: year, Measures: map[domain.Field]float64{}}
			if v, ok := values[year]; ok {
				fact.Measures[measure] = v
			}
			facts = append(facts, fact)
			continue
		}
		for y, v := range values {
			facts = append(facts, aggregate.Fact{Dims: d, Year: y, Measures: map[domain.Field]float64{measure: v}})
		}
	}
	return facts
}

func (s *Service) seatView(name string, f filter.Filters, fam seatFamily, year domain.Year, keys []domain.Field) (*domain.View, error) {
	if year == 0 {
		year = s.latestYear(fam)
	}
	records, _ := filter.Apply(s.ds.Courses, f)

	res, err := aggregate.Aggregate(s.seatFacts(records, fam, year), keys, fam.field(), aggregate.OpSum)
	if err != nil {
		return nil, fmt.Errorf("aggregate.Aggregate, view-%s: %w", name, err)
	}
	view := buildView(name, keys, fam.field(), res)
	for i := range view.Records {
		view.Records[i].Year = year
	}
	return view, nil
}

// Applications is requested seats per education area for one year.
func (s *Service) Applications(_ context.Context, f filter.Filters, year domain.Year) (*domain.View, error) {
	return s.seatView(ViewApplications, f, requestedSeats, year, []domain.Field{domain.FieldArea})
}

// ApprovedShare is approved seats per education area, for a pie chart.
func (s *Service) ApprovedShare(_ context.Context, f filter.Filters, year domain.Year) (*domain.View, error) {
	return s.seatView(ViewApprovedShare, f, approvedSeats, year, []domain.Field{domain.FieldArea})
}

func (s *Service) TopOrganizers(_ context.Context, f filter.Filters, year domain.Year, n int) (*domain.View, error) {
	view, err := s.seatView(ViewTopOrganizers, f, approvedSeats, year, []domain.Field{domain.FieldOrganizer})
	if err != nil {
		return nil, err
	}
	view.Records = aggregate.TopN(view.Records, topN(n))
	return view, nil
}

// TopMunicipalities ranks municipalities by approved seats. Courses spanning
// several municipalities carry no municipality and are dropped.
func (s *Service) TopMunicipalities(_ context.Context, f filter.Filters, year domain.Year, n int) (*domain.View, error) {
	view, err := s.seatView(ViewTopMunicipalities, f, approvedSeats, year, []domain.Field{domain.FieldMunicipality})
	if err != nil {
		return nil, err
	}
	view.Records = aggregate.TopN(view.Records, topN(n))
	return view, nil
}

// TopSchoolsByApplications ranks organizers by number of submitted applications.
func (s *Service) TopSchoolsByApplications(_ context.Context, f filter.Filters, n int) (*domain.View, error) {
	records, _ := filter.Apply(s.ds.Courses, f)
	dims := s.newCourseDims()

	facts := make([]aggregate.Fact, 0, len(records))
	for i := range records {
		facts = append(facts, aggregate.Fact{Dims: dims.of(&records[i])})
	}

	keys := []domain.Field{domain.FieldOrganizer}
	res, err := aggregate.Aggregate(facts, keys, "", aggregate.OpCount)
	if err != nil {
		return nil, fmt.Errorf("aggregate.Aggregate, view-%s: %w", ViewTopSchools, err)
	}
	for i := range res.Stats {
		res.Stats[i].Measure = domain.FieldApplications
	}

	view := buildView(ViewTopSchools, keys, domain.FieldApplications, res)
	view.Records = aggregate.TopN(view.Records, topN(n))
	return view, nil
}

// SeatsByRegion is requested seats per region code, the choropleth input.
func (s *Service) SeatsByRegion(_ context.Context, f filter.Filters, year domain.Year) (*domain.View, error) {
	return s.seatView(ViewSeatsByRegion, f, requestedSeats, year, []domain.Field{domain.FieldRegionCode, domain.FieldRegion})
}

// SeatsHierarchy is requested seats as region -> municipality -> organizer.
func (s *Service) SeatsHierarchy(_ context.Context, f filter.Filters, year domain.Year) (*domain.Hierarchy, error) {
	levels := []domain.Field{domain.FieldRegion, domain.FieldMunicipality, domain.FieldOrganizer}
	view, err := s.seatView(ViewSeatsHierarchy, f, requestedSeats, year, levels)
	if err != nil {
		return nil, err
	}

	return &domain.Hierarchy{
		Name:    ViewSeatsHierarchy,
		Levels:  levels,
		Measure: view.Measure,
		Nodes:   aggregate.Hierarchy(view.Records, levels),
		Dropped: view.Dropped,
	}, nil
}

// ApplicationTrend is requested seats per (area, year) over every year column.
func (s *Service) ApplicationTrend(_ context.Context, f filter.Filters) (*domain.View, error) {
	records, _ := filter.Apply(s.ds.Courses, f)
	keys := []domain.Field{domain.FieldArea, domain.FieldYear}

	res, err := aggregate.Aggregate(s.seatFacts(records, requestedSeats, 0), keys, domain.FieldRequestedSeats, aggregate.OpSum)
	if err != nil {
		return nil, fmt.Errorf("aggregate.Aggregate, view-%s: %w", ViewApplicationTrend, err)
	}
	return buildView(ViewApplicationTrend, keys, domain.FieldRequestedSeats, res), nil
}

// OrganizerStats summarises every application of one organizer.
func (s *Service) OrganizerStats(_ context.Context, name string) domain.OrganizerStats {
	records, k := filter.Apply(s.ds.Courses, filter.Filters{Organizer: &name})

	stats := domain.OrganizerStats{
		Name:           name,
		Courses:        k.TotalApplications,
		RequestedSeats: k.TotalRequestedSeats,
		ApprovedSeats:  k.TotalApprovedSeats,
		MeanYHPoints:   k.MeanYHPoints,
		Areas:          make(map[string]int),
	}
	for i := range records {
		stats.Areas[records[i].Area]++
	}
	return stats
}

func topN(n int) int {
	if n <= 0 {
		return constants.DefaultTopN
	}
	return n
}
