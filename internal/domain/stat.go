package domain

import "github.com/bytedance/sonic"

// Field is a stable column name shared by facts, aggregates and view records.
type Field string

const (
	FieldRegion        Field = "region"
	FieldRegionCode    Field = "region_code"
	FieldMunicipality  Field = "municipality"
	FieldOrganizer     Field = "organizer"
	FieldArea          Field = "area"
	FieldEducationName Field = "education_name"
	FieldRound         Field = "round"
	FieldYear          Field = "year"

	FieldRequestedSeats Field = "requested_seats"
	FieldApprovedSeats  Field = "approved_seats"
	FieldApplications   Field = "applications"
	FieldYHPoints       Field = "yh_points"
	FieldGrantAmount    Field = "grant_amount"
	FieldQualified      Field = "qualified"
)

// AggregatedStat is one output row of a view: group key values plus one measure.
type AggregatedStat struct {
	Keys    map[Field]string
	Year    Year
	Measure Field
	Value   float64
	Count   int
	Rank    int
}

// Key returns the value of a grouping field. The year is kept in Year, so
// Key(FieldYear) is empty.
func (s AggregatedStat) Key(f Field) string {
	return s.Keys[f]
}

// MarshalJSON flattens the stat so charting code can bind field names directly.
func (s AggregatedStat) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(s.Keys)+4)
	for k, v := range s.Keys {
		out[string(k)] = v
	}
	if s.Year != 0 {
		out[string(FieldYear)] = s.Year
	}
	out[string(s.Measure)] = s.Value
	out["count"] = s.Count
	if s.Rank > 0 {
		out["rank"] = s.Rank
	}
	return sonic.Marshal(out)
}

// View is the contract handed to the presentation layer.
type View struct {
	Name    string           `json:"view"`
	Fields  []Field          `json:"fields"`
	Measure Field            `json:"measure"`
	Records []AggregatedStat `json:"records"`
	Dropped int              `json:"dropped"`
}

// KPIs are recomputed from the filtered course set on every request.
type KPIs struct {
	TotalApplications    int     `json:"total_applications"`
	ApprovedApplications int     `json:"approved_applications"`
	ApprovalRate         float64 `json:"approval_rate"`
	TotalApprovedSeats   float64 `json:"total_approved_seats"`
	TotalRequestedSeats  float64 `json:"total_requested_seats"`
	DistinctOrganizers   int     `json:"distinct_organizers"`
	MeanYHPoints         float64 `json:"mean_yh_points"`
}

// OrganizerStats summarises one course organizer.
type OrganizerStats struct {
	Name           string         `json:"name"`
	Courses        int            `json:"courses"`
	RequestedSeats float64        `json:"requested_seats"`
	ApprovedSeats  float64        `json:"approved_seats"`
	MeanYHPoints   float64        `json:"mean_yh_points"`
	Areas          map[string]int `json:"areas"`
}

// HierarchyNode is one sector of a sunburst.
type HierarchyNode struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Parent string  `json:"parent"`
	Level  Field   `json:"level"`
	Value  float64 `json:"value"`
}

// Options are the distinct values offered by the dashboard selectors.
type Options struct {
	Areas          []string `json:"areas"`
	Municipalities []string `json:"municipalities"`
	Organizers     []string `json:"organizers"`
	EducationNames []string `json:"education_names"`
	StudentAreas   []string `json:"student_areas"`
	Years          []Year   `json:"years"`
	StudentYears   []Year   `json:"student_years"`
	GrantYears     []Year   `json:"grant_years"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Hierarchy is a sunburst-ready view: Levels from the root outwards.
type Hierarchy struct {
	Name    string          `json:"view"`
	Levels  []Field         `json:"levels"`
	Measure Field           `json:"measure"`
	Nodes   []HierarchyNode `json:"nodes"`
	Dropped int             `json:"dropped"`
}
