package ingest

import (
	"fmt"

	"github.com/ougirez/yhdash/internal/domain"
	"github.com/ougirez/yhdash/internal/pkg/config"
	"github.com/ougirez/yhdash/internal/pkg/constants"
	"github.com/ougirez/yhdash/internal/pkg/reshape"
	"github.com/ougirez/yhdash/internal/pkg/schema"
	"github.com/ougirez/yhdash/internal/pkg/table"
	"github.com/shopspring/decimal"
)

const (
	fOrganizer     = string(domain.FieldOrganizer)
	fMunicipality  = string(domain.FieldMunicipality)
	fRegion        = string(domain.FieldRegion)
	fArea          = string(domain.FieldArea)
	fEducationName = string(domain.FieldEducationName)
	fYHPoints      = string(domain.FieldYHPoints)
	fRequested     = string(domain.FieldRequestedSeats)
	fApproved      = string(domain.FieldApprovedSeats)
	fQualified     = string(domain.FieldQualified)
	fGender        = "gender"
	fStudyPace     = "study_pace"
)

// descriptor drops unnamed optional columns so a blank header cell never binds.
func descriptor(dataset string, required, optional, families map[string]string) schema.Descriptor {
	d := schema.Descriptor{
		Dataset:  dataset,
		Columns:  make(map[string]string, len(required)+len(optional)),
		Optional: make(map[string]bool, len(optional)),
		Families: families,
	}
	for field, col := range required {
		d.Columns[field] = col
	}
	for field, col := range optional {
		if col == "" {
			continue
		}
		d.Columns[field] = col
		d.Optional[field] = true
	}
	return d
}

func CourseDescriptor(cols config.CourseColumns) schema.Descriptor {
	return descriptor(DatasetCourses,
		map[string]string{
			fOrganizer:    cols.Organizer,
			fMunicipality: cols.Municipality,
			fArea:         cols.Area,
		},
		map[string]string{
			fRegion:        cols.Region,
			fEducationName: cols.EducationName,
			fYHPoints:      cols.YHPoints,
		},
		map[string]string{
			fRequested: cols.RequestedPrefix,
			fApproved:  cols.ApprovedPrefix,
		},
	)
}

func StudentDescriptor(cols config.StudentColumns) schema.Descriptor {
	return descriptor(DatasetStudents,
		map[string]string{
			fRegion:    cols.Region,
			fArea:      cols.Area,
			fGender:    cols.Gender,
			fStudyPace: cols.StudyPace,
		},
		nil,
		map[string]string{fQualified: cols.QualifiedPrefix},
	)
}

func GrantDescriptor(round domain.GrantRound, cols config.GrantColumns) schema.Descriptor {
	return descriptor(grantDataset(round),
		map[string]string{
			fArea:      cols.Area,
			fOrganizer: cols.Organizer,
			fRegion:    cols.Region,
			fYHPoints:  cols.YHPoints,
		},
		nil,
		map[string]string{fApproved: cols.ApprovedPrefix},
	)
}

// ParseCourses builds one CourseRecord per row.
func ParseCourses(tbl *table.Table, cols config.CourseColumns) ([]domain.CourseRecord, error) {
	bound, err := CourseDescriptor(cols).Bind(tbl.Header)
	if err != nil {
		return nil, err
	}

	requested := bound.Family(fRequested)
	approved := bound.Family(fApproved)

	out := make([]domain.CourseRecord, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		rec := domain.CourseRecord{
			Organizer:     bound.Get(row, fOrganizer),
			Municipality:  bound.Get(row, fMunicipality),
			Region:        bound.Get(row, fRegion),
			Area:          bound.Get(row, fArea),
			EducationName: bound.Get(row, fEducationName),
		}

		if rec.RequestedSeats, err = reshape.YearValues(row, requested); err != nil {
			return nil, fmt.Errorf("courses row %d: %w", i, err)
		}
		if rec.ApprovedSeats, err = reshape.YearValues(row, approved); err != nil {
			return nil, fmt.Errorf("courses row %d: %w", i, err)
		}

		if bound.Has(fYHPoints) {
			v, ok, err := schema.ParseNumber(bound.Get(row, fYHPoints))
			if err != nil {
				return nil, fmt.Errorf("courses row %d, column %q: %w", i, cols.YHPoints, err)
			}
			if ok {
				rec.YHPoints = &v
			}
		}

		out = append(out, rec)
	}

	return out, nil
}

// ParseStudents melts the qualified-applicant family, keeping only the total rows.
func ParseStudents(tbl *table.Table, cols config.StudentColumns) ([]domain.StudentRecord, error) {
	bound, err := StudentDescriptor(cols).Bind(tbl.Header)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		if bound.Get(row, fGender) != constants.StudentGenderTotal ||
			bound.Get(row, fStudyPace) != constants.StudentPaceTotal ||
			bound.Get(row, fRegion) == constants.StudentAllRegions {
			continue
		}
		rows = append(rows, row)
	}

	long, err := reshape.Melt(rows, bound, []string{fRegion, fArea, fGender, fStudyPace}, fQualified)
	if err != nil {
		return nil, fmt.Errorf("reshape.Melt, dataset-%s: %w", DatasetStudents, err)
	}

	out := make([]domain.StudentRecord, 0, len(long))
	for _, l := range long {
		out = append(out, domain.StudentRecord{
			Region:    l.ID[fRegion],
			Area:      l.ID[fArea],
			Gender:    l.ID[fGender],
			StudyPace: l.ID[fStudyPace],
			Year:      l.Year,
			Qualified: l.Value,
		})
	}
	return out, nil
}

// ParseGrants emits one GrantRecord per (row, year) with approved seats. The
// grant amount is YH points times rate; rows without points carry 0.
func ParseGrants(tbl *table.Table, round domain.GrantRound, cols config.GrantColumns, rate float64) ([]domain.GrantRecord, error) {
	bound, err := GrantDescriptor(round, cols).Bind(tbl.Header)
	if err != nil {
		return nil, err
	}

	long, err := reshape.Melt(tbl.Rows, bound, []string{fArea, fOrganizer, fRegion, fYHPoints}, fApproved)
	if err != nil {
		return nil, fmt.Errorf("reshape.Melt, dataset-%s: %w", grantDataset(round), err)
	}

	rateDec := decimal.NewFromFloat(rate)
	out := make([]domain.GrantRecord, 0, len(long))
	for _, l := range long {
		if l.Value == nil || *l.Value <= 0 {
			continue
		}

		points, _, err := schema.ParseNumber(l.ID[fYHPoints])
		if err != nil {
			return nil, fmt.Errorf("%s row %d, column %q: %w", grantDataset(round), l.Row, cols.YHPoints, err)
		}

		out = append(out, domain.GrantRecord{
			Round:         round,
			Area:          l.ID[fArea],
			Organizer:     l.ID[fOrganizer],
			Region:        l.ID[fRegion],
			Year:          l.Year,
			ApprovedSeats: *l.Value,
			YHPoints:      points,
			GrantAmount:   decimal.NewFromFloat(points).Mul(rateDec).InexactFloat64(),
		})
	}
	return out, nil
}
