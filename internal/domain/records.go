package domain

// CourseRecord is one submitted course application.
type CourseRecord struct {
	Organizer      string   `json:"organizer"`
	Municipality   string   `json:"municipality"`
	Region         string   `json:"region"`
	Area           string   `json:"area"`
	EducationName  string   `json:"education_name"`
	YHPoints       *float64 `json:"yh_points,omitempty"`
	RequestedSeats YearData `json:"requested_seats"`
	ApprovedSeats  YearData `json:"approved_seats"`
}

// TotalApproved sums approved seats over every year column.
func (c *CourseRecord) TotalApproved() float64 {
	var total float64
	for _, v := range c.ApprovedSeats {
		total += v
	}
	return total
}

// Approved reports whether the application was granted any seats.
func (c *CourseRecord) Approved() bool {
	return c.TotalApproved() > 0
}

// StudentRecord is the qualified-applicant count for one region, area and year.
type StudentRecord struct {
	Region    string   `json:"region"`
	Area      string   `json:"area"`
	Gender    string   `json:"gender"`
	StudyPace string   `json:"study_pace"`
	Year      Year     `json:"year"`
	Qualified *float64 `json:"qualified,omitempty"`
}

type GrantRound string

const (
	GrantRoundApril GrantRound = "april"
	GrantRoundJuly  GrantRound = "july"
)

// GrantRecord is the approved seats and estimated Statsbidrag of one course for one year.
type GrantRecord struct {
	Round         GrantRound `json:"round"`
	Area          string     `json:"area"`
	Organizer     string     `json:"organizer"`
	Region        string     `json:"region"`
	Year          Year       `json:"year"`
	ApprovedSeats float64    `json:"approved_seats"`
	YHPoints      float64    `json:"yh_points"`
	GrantAmount   float64    `json:"grant_amount"`
}
