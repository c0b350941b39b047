package dashboard

import (
	"context"
	"fmt"

	"github.com/ougirez/yhdash/internal/domain"
	"github.com/ougirez/yhdash/internal/pkg/aggregate"
	"github.com/ougirez/yhdash/internal/pkg/constants"
)

// grantFacts keeps records of round ("" keeps both) and year (0 keeps all).
func (s *Service) grantFacts(round string, year domain.Year) ([]aggregate.Fact, error) {
	switch domain.GrantRound(round) {
	case "", domain.GrantRoundApril, domain.GrantRoundJuly:
	default:
		return nil, fmt.Errorf("round-%s: %w", round, constants.ErrUnknownRound)
	}

	code := s.coder.Memo()
	facts := make([]aggregate.Fact, 0, len(s.ds.Grants))
	for i := range s.ds.Grants {
		g := &s.ds.Grants[i]
		if round != "" && string(g.Round) != round {
			continue
		}
		if year != 0 && g.Year != year {
			continue
		}

		fact := aggregate.Fact{
			Dims: map[domain.Field]string{
				domain.FieldRound:     string(g.Round),
				domain.FieldArea:      g.Area,
				domain.FieldOrganizer: g.Organizer,
			},
			Year: g.Year,
			Measures: map[domain.Field]float64{
				domain.FieldGrantAmount:   g.GrantAmount,
				domain.FieldApprovedSeats: g.ApprovedSeats,
			},
		}
		if regionCode, canonical, err := code(g.Region); err == nil {
			fact.Dims[domain.FieldRegion] = canonical
			fact.Dims[domain.FieldRegionCode] = regionCode
		}
		facts = append(facts, fact)
	}
	return facts, nil
}

// Grants is the estimated Statsbidrag per education area.
func (s *Service) Grants(_ context.Context, round string, year domain.Year) (*domain.View, error) {
	if len(s.ds.Grants) == 0 {
		return nil, fmt.Errorf("view-%s: %w", ViewGrants, constants.ErrNotLoaded)
	}
	facts, err := s.grantFacts(round, year)
	if err != nil {
		return nil, err
	}

	keys := []domain.Field{domain.FieldArea}
	res, err := aggregate.Aggregate(facts, keys, domain.FieldGrantAmount, aggregate.OpSum)
	if err != nil {
		return nil, fmt.Errorf("aggregate.Aggregate, view-%s: %w", ViewGrants, err)
	}
	view := buildView(ViewGrants, keys, domain.FieldGrantAmount, res)
	for i := range view.Records {
		view.Records[i].Year = year
	}
	return view, nil
}

// GrantsByRegion is the estimated Statsbidrag per region code, both rounds.
func (s *Service) GrantsByRegion(_ context.Context, year domain.Year) (*domain.View, error) {
	if len(s.ds.Grants) == 0 {
		return nil, fmt.Errorf("view-%s: %w", ViewGrantsByRegion, constants.ErrNotLoaded)
	}
	facts, err := s.grantFacts("", year)
	if err != nil {
		return nil, err
	}

	keys := []domain.Field{domain.FieldRegionCode, domain.FieldRegion}
	res, err := aggregate.Aggregate(facts, keys, domain.FieldGrantAmount, aggregate.OpSum)
	if err != nil {
		return nil, fmt.Errorf("aggregate.Aggregate, view-%s: %w", ViewGrantsByRegion, err)
	}
	view := buildView(ViewGrantsByRegion, keys, domain.FieldGrantAmount, res)
	for i := range view.Records {
		view.Records[i].Year = year
	}
	return view, nil
}
