package dto

import (
	"github.com/ougirez/yhdash/internal/domain"
	"github.com/ougirez/yhdash/internal/pkg/filter"
)

// FilterQuery is the selector state of the course views.
type FilterQuery struct {
	Area          string `query:"area"`
	Municipality  string `query:"municipality"`
	Organizer     string `query:"organizer"`
	EducationName string `query:"education_name"`
}

func (q FilterQuery) ToFilters() filter.Filters {
	var f filter.Filters
	if q.Area != "" {
		f.Area = &q.Area
	}
	if q.Municipality != "" {
		f.Municipality = &q.Municipality
	}
	if q.Organizer != "" {
		f.Organizer = &q.Organizer
	}
	if q.EducationName != "" {
		f.EducationName = &q.EducationName
	}
	return f
}

type ViewQuery struct {
	FilterQuery
	Year   domain.Year `query:"year" validate:"omitempty,gte=1990,lte=2100"`
	N      int         `query:"n" validate:"gte=0,lte=500"`
	Round  string      `query:"round" validate:"omitempty,oneof=april july"`
	Format string      `query:"format" validate:"omitempty,oneof=json xlsx"`
}

type RawQuery struct {
	Offset int `query:"offset" validate:"gte=0"`
	Limit  int `query:"limit" validate:"gte=0,lte=1000"`
}

// RawTable is a page of a loaded source table.
type RawTable struct {
	Dataset string     `json:"dataset"`
	Header  []string   `json:"header"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}
