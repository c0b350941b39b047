package dashboard

import (
	"context"
	"fmt"

	"github.com/ougirez/yhdash/internal/domain"
	"github.com/ougirez/yhdash/internal/pkg/aggregate"
	"github.com/ougirez/yhdash/internal/pkg/constants"
)

// studentFacts keeps rows of area ("" keeps all) and year (0 keeps all).
func (s *Service) studentFacts(area string, year domain.Year) []aggregate.Fact {
	code := s.coder.Memo()

	facts := make([]aggregate.Fact, 0, len(s.ds.Students))
	for i := range s.ds.Students {
		st := &s.ds.Students[i]
		if area != "" && st.Area != area {
			continue
		}
		if year != 0 && st.Year != year {
			continue
		}

		fact := aggregate.Fact{
			Dims:     map[domain.Field]string{domain.FieldArea: st.Area},
			Year:     st.Year,
			Measures: make(map[domain.Field]float64, 1),
		}
		if regionCode, canonical, err := code(st.Region); err == nil {
			fact.Dims[domain.FieldRegion] = canonical
			fact.Dims[domain.FieldRegionCode] = regionCode
		}
		if st.Qualified != nil {
			fact.Measures[domain.FieldQualified] = *st.Qualified
		}
		facts = append(facts, fact)
	}
	return facts
}

func (s *Service) latestStudentYear() domain.Year {
	var year domain.Year
	for i := range s.ds.Students {
		if y := s.ds.Students[i].Year; y > year {
			year = y
		}
	}
	return year
}

// StudentsByRegion is qualified applicants per region code for one area and year.
func (s *Service) StudentsByRegion(_ context.Context, area string, year domain.Year) (*domain.View, error) {
	if len(s.ds.Students) == 0 {
		return nil, fmt.Errorf("view-%s: %w", ViewStudentsByRegion, constants.ErrNotLoaded)
	}
	if year == 0 {
		year = s.latestStudentYear()
	}

	keys := []domain.Field{domain.FieldRegionCode, domain.FieldRegion}
	res, err := aggregate.Aggregate(s.studentFacts(area, year), keys, domain.FieldQualified, aggregate.OpSum)
	if err != nil {
		return nil, fmt.Errorf("aggregate.Aggregate, view-%s: %w", ViewStudentsByRegion, err)
	}

	view := buildView(ViewStudentsByRegion, keys, domain.FieldQualified, res)
	for i := range view.Records {
		view.Records[i].Year = year
	}
	return view, nil
}

// StudentTrend is qualified applicants per (area, year).
func (s *Service) StudentTrend(_ context.Context, area string) (*domain.View, error) {
	if len(s.ds.Students) == 0 {
		return nil, fmt.Errorf("view-%s: %w", ViewStudentTrend, constants.ErrNotLoaded)
	}

	keys := []domain.Field{domain.FieldArea, domain.FieldYear}
	res, err := aggregate.Aggregate(s.studentFacts(area, 0), keys, domain.FieldQualified, aggregate.OpSum)
	if err != nil {
		return nil, fmt.Errorf("aggregate.Aggregate, view-%s: %w", ViewStudentTrend, err)
	}
	return buildView(ViewStudentTrend, keys, domain.FieldQualified, res), nil
}
