// Package dashboard computes every dashboard view fresh from the loaded datasets.
package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/ougirez/yhdash/internal/domain"
	"github.com/ougirez/yhdash/internal/pkg/aggregate"
	"github.com/ougirez/yhdash/internal/pkg/constants"
	"github.com/ougirez/yhdash/internal/pkg/filter"
	"github.com/ougirez/yhdash/internal/pkg/geo"
	"github.com/ougirez/yhdash/internal/pkg/logger"
	"github.com/ougirez/yhdash/internal/pkg/resolve"
	"github.com/ougirez/yhdash/internal/service/ingest"
)

const (
	ViewApplications      = "applications"
	ViewApprovedShare     = "approved_share"
	ViewTopOrganizers     = "top_organizers"
	ViewTopMunicipalities = "top_municipalities"
	ViewTopSchools        = "top_schools"
	ViewSeatsByRegion     = "seats_by_region"
	ViewSeatsHierarchy    = "seats_hierarchy"
	ViewApplicationTrend  = "application_trend"
	ViewStudentsByRegion  = "students_by_region"
	ViewStudentTrend      = "student_trend"
	ViewGrants            = "grants"
	ViewGrantsByRegion    = "grants_by_region"
)

// Params is the request state shared by all views; each view reads what it needs.
type Params struct {
	Filters filter.Filters
	// Year 0 selects the latest year of the view's measure.
	Year  domain.Year
	N     int
	Area  string
	Round string
}

type Service struct {
	ds       *ingest.Datasets
	resolver *resolve.Resolver
	coder    *geo.Coder
}

func NewDashboardService(ds *ingest.Datasets, resolver *resolve.Resolver, matcher geo.NameMatcher) *Service {
	return &Service{
		ds:       ds,
		resolver: resolver,
		coder:    geo.NewCoder(ds.Regions, matcher),
	}
}

// Views lists the names accepted by View, sorted.
func Views() []string {
	out := []string{
		ViewApplications, ViewApprovedShare, ViewTopOrganizers, ViewTopMunicipalities,
		ViewTopSchools, ViewSeatsByRegion, ViewApplicationTrend, ViewStudentsByRegion,
		ViewStudentTrend, ViewGrants, ViewGrantsByRegion,
	}
	sort.Strings(out)
	return out
}

// View dispatches a flat view by name.
func (s *Service) View(ctx context.Context, name string, p Params) (*domain.View, error) {
	var (
		view *domain.View
		err  error
	)

	switch name {
	case ViewApplications:
		view, err = s.Applications(ctx, p.Filters, p.Year)
	case ViewApprovedShare:
		view, err = s.ApprovedShare(ctx, p.Filters, p.Year)
	case ViewTopOrganizers:
		view, err = s.TopOrganizers(ctx, p.Filters, p.Year, p.N)
	case ViewTopMunicipalities:
		view, err = s.TopMunicipalities(ctx, p.Filters, p.Year, p.N)
	case ViewTopSchools:
		view, err = s.TopSchoolsByApplications(ctx, p.Filters, p.N)
	case ViewSeatsByRegion:
		view, err = s.SeatsByRegion(ctx, p.Filters, p.Year)
	case ViewApplicationTrend:
		view, err = s.ApplicationTrend(ctx, p.Filters)
	case ViewStudentsByRegion:
		view, err = s.StudentsByRegion(ctx, p.Area, p.Year)
	case ViewStudentTrend:
		view, err = s.StudentTrend(ctx, p.Area)
	case ViewGrants:
		view, err = s.Grants(ctx, p.Round, p.Year)
	case ViewGrantsByRegion:
		view, err = s.GrantsByRegion(ctx, p.Year)
	default:
		return nil, fmt.Errorf("view-%s: %w", name, constants.ErrUnknownView)
	}
	if err != nil {
		return nil, err
	}

	if view.Dropped > 0 {
		logger.Debugf(ctx, "view %s dropped %d records without a group key", name, view.Dropped)
	}
	return view, nil
}

func (s *Service) KPIs(_ context.Context, f filter.Filters) domain.KPIs {
	_, kpis := filter.Apply(s.ds.Courses, f)
	return kpis
}

func (s *Service) Regions(_ context.Context) []domain.Region {
	return s.ds.Regions.Regions()
}

func buildView(name string, keys []domain.Field, measure domain.Field, res aggregate.Result) *domain.View {
	return &domain.View{
		Name:    name,
		Fields:  keys,
		Measure: measure,
		Records: res.Stats,
		Dropped: res.Dropped,
	}
}

// latest returns the largest key over all year maps, 0 when there is none.
func latest[V any](maps ...map[domain.Year]V) domain.Year {
	var year domain.Year
	for _, m := range maps {
		for y := range m {
			if y > year {
				year = y
			}
		}
	}
	return year
}

func sortedYears(set map[domain.Year]struct{}) []domain.Year {
	out := make([]domain.Year, 0, len(set))
	for y := range set {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		if v != "" {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
