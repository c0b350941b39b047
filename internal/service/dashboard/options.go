package dashboard

import (
	"context"

	"github.com/ougirez/yhdash/internal/domain"
)

// Options collects the selector values. Years are the union of both seat families.
func (s *Service) Options(_ context.Context) domain.Options {
	var (
		areas, municipalities  = map[string]struct{}{}, map[string]struct{}{}
		organizers, educations = map[string]struct{}{}, map[string]struct{}{}
		studentAreas           = map[string]struct{}{}
		years, studentYears    = map[domain.Year]struct{}{}, map[domain.Year]struct{}{}
		grantYears             = map[domain.Year]struct{}{}
	)

	for i := range s.ds.Courses {
		c := &s.ds.Courses[i]
		areas[c.Area] = struct{}{}
		municipalities[c.Municipality] = struct{}{}
		organizers[c.Organizer] = struct{}{}
		educations[c.EducationName] = struct{}{}
		for y := range c.RequestedSeats {
			years[y] = struct{}{}
		}
		for y := range c.ApprovedSeats {
			years[y] = struct{}{}
		}
	}
	for i := range s.ds.Students {
		studentAreas[s.ds.Students[i].Area] = struct{}{}
		studentYears[s.ds.Students[i].Year] = struct{}{}
	}
	for i := range s.ds.Grants {
		grantYears[s.ds.Grants[i].Year] = struct{}{}
	}

	return domain.Options{
		Areas:          sortedSet(areas),
		Municipalities: sortedSet(municipalities),
		Organizers:     sortedSet(organizers),
		EducationNames: sortedSet(educations),
		StudentAreas:   sortedSet(studentAreas),
		Years:          sortedYears(years),
		StudentYears:   sortedYears(studentYears),
		GrantYears:     sortedYears(grantYears),
	}
}
