package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ougirez/yhdash/internal/domain"
	"github.com/ougirez/yhdash/internal/pkg/constants"
	"github.com/ougirez/yhdash/internal/pkg/filter"
	"github.com/ougirez/yhdash/internal/pkg/fuzzy"
	"github.com/ougirez/yhdash/internal/pkg/geo"
	"github.com/ougirez/yhdash/internal/pkg/resolve"
	"github.com/ougirez/yhdash/internal/pkg/table"
	"github.com/ougirez/yhdash/internal/service/ingest"
)

const regionsJSON = `{"type":"FeatureCollection","features":[
 {"type":"Feature","properties":{"name":"Stockholms län","ref:se:länskod":"01"},
  "geometry":{"type":"Polygon","coordinates":[[[17,59],[19,59],[19,60],[17,60],[17,59]]]}},
 {"type":"Feature","properties":{"name":"Skåne län","ref:se:länskod":"12"},
  "geometry":{"type":"Polygon","coordinates":[[[12,55],[14,55],[14,56],[12,56],[12,55]]]}}
]}`

func ptr(v float64) *float64 { return &v }

func newService(t *testing.T, ds *ingest.Datasets) *Service {
	t.Helper()
	ref, err := geo.Load(strings.NewReader(regionsJSON), geo.DefaultNameProperty, geo.DefaultCodeProperty)
	if err != nil {
		t.Fatalf("geo.Load: %v", err)
	}
	ds.Regions = ref
	return NewDashboardService(ds, resolve.NewResolver(resolve.DefaultTable()), fuzzy.NewMatcher(constants.DefaultFuzzyFloor))
}

func course(org, municipality, area string, requested, approved domain.YearData) domain.CourseRecord {
	return domain.CourseRecord{
		Organizer:      org,
		Municipality:   municipality,
		Area:           area,
		RequestedSeats: requested,
		ApprovedSeats:  approved,
	}
}

func fixture() *ingest.Datasets {
	return &ingest.Datasets{
		Courses: []domain.CourseRecord{
			course("A", "Malmö", "Data/IT", domain.YearData{2023: 4, 2024: 10}, domain.YearData{2024: 10}),
			course("B", "Stockholm", "Ekonomi", domain.YearData{2024: 8}, domain.YearData{2024: 0}),
			course("B", "Lund", "Data/IT", domain.YearData{2024: 6}, domain.YearData{2024: 6}),
			course("C", constants.MultipleMunicipalities, "Data/IT", domain.YearData{2024: 20}, domain.YearData{2024: 20}),
		},
		Students: []domain.StudentRecord{
			{Region: "Skane lan", Area: "Data/IT", Gender: "totalt", StudyPace: "Totalt", Year: 2023, Qualified: ptr(30)},
			{Region: "Skåne län", Area: "Data/IT", Gender: "totalt", StudyPace: "Totalt", Year: 2024, Qualified: ptr(35)},
			{Region: "Stockholms län", Area: "Data/IT", Gender: "totalt", StudyPace: "Totalt", Year: 2024, Qualified: ptr(100)},
			{Region: "Stockholms län", Area: "Ekonomi", Gender: "totalt", StudyPace: "Totalt", Year: 2024},
			{Region: "Atlantis", Area: "Data/IT", Gender: "totalt", StudyPace: "Totalt", Year: 2024, Qualified: ptr(7)},
		},
		Grants: []domain.GrantRecord{
			{Round: domain.GrantRoundApril, Area: "Data/IT", Organizer: "A", Region: "Skåne län", Year: 2024, ApprovedSeats: 30, YHPoints: 400, GrantAmount: 2800000},
			{Round: domain.GrantRoundJuly, Area: "Data/IT", Organizer: "B", Region: "Stockholms lan", Year: 2024, ApprovedSeats: 10, YHPoints: 200, GrantAmount: 1400000},
			{Round: domain.GrantRoundJuly, Area: "Ekonomi", Organizer: "C", Region: "Stockholms län", Year: 2025, ApprovedSeats: 5, YHPoints: 100, GrantAmount: 700000},
		},
		Raw: map[string]*table.Table{
			ingest.DatasetCourses: {
				Name:   ingest.DatasetCourses,
				Header: []string{"Anordnare namn", "Kommun"},
				Rows:   [][]string{{"A", "Malmö"}, {"B", "Stockholm"}, {"B", "Lund"}},
			},
		},
	}
}

func stat(t *testing.T, view *domain.View, field domain.Field, key string) domain.AggregatedStat {
	t.Helper()
	for _, r := range view.Records {
		if r.Key(field) == key {
			return r
		}
	}
	t.Fatalf("view %s has no record %s=%q: %+v", view.Name, field, key, view.Records)
	return domain.AggregatedStat{}
}

func TestEndToEndRegionAndOrganizer(t *testing.T) {
	svc := newService(t, &ingest.Datasets{
		Courses: []domain.CourseRecord{
			course("A", "Malmö", "Data/IT", domain.YearData{2024: 10}, nil),
			course("B", "Nonexistent", "Data/IT", domain.YearData{2024: 5}, nil),
		},
	})
	ctx := context.Background()

	byRegion, err := svc.SeatsByRegion(ctx, filter.Filters{}, 2024)
	if err != nil {
		t.Fatalf("SeatsByRegion: %v", err)
	}
	if len(byRegion.Records) != 1 {
		t.Fatalf("expected one region group, got %+v", byRegion.Records)
	}
	r := byRegion.Records[0]
	if r.Key(domain.FieldRegion) != "Skåne län" || r.Key(domain.FieldRegionCode) != "12" || r.Value != 10 {
		t.Fatalf("unexpected region group: %+v", r)
	}
	if byRegion.Dropped != 1 {
		t.Fatalf("dropped = %d, want 1", byRegion.Dropped)
	}

	byOrganizer, err := svc.seatView("by_organizer", filter.Filters{}, requestedSeats, 2024, []domain.Field{domain.FieldOrganizer})
	if err != nil {
		t.Fatalf("seatView: %v", err)
	}
	if len(byOrganizer.Records) != 2 {
		t.Fatalf("expected two organizer groups, got %+v", byOrganizer.Records)
	}
	if a := stat(t, byOrganizer, domain.FieldOrganizer, "A"); a.Value != 10 {
		t.Fatalf("A = %v, want 10", a.Value)
	}
	if b := stat(t, byOrganizer, domain.FieldOrganizer, "B"); b.Value != 5 {
		t.Fatalf("B = %v, want 5", b.Value)
	}
}

func TestApplicationsDefaultsToLatestYear(t *testing.T) {
	svc := newService(t, fixture())

	view, err := svc.Applications(context.Background(), filter.Filters{}, 0)
	if err != nil {
		t.Fatalf("Applications: %v", err)
	}
	it := stat(t, view, domain.FieldArea, "Data/IT")
	if it.Value != 36 || it.Year != 2024 {
		t.Fatalf("Data/IT = %+v, want 36 in 2024", it)
	}
	if eco := stat(t, view, domain.FieldArea, "Ekonomi"); eco.Value != 8 {
		t.Fatalf("Ekonomi = %v", eco.Value)
	}

	older, err := svc.Applications(context.Background(), filter.Filters{}, 2023)
	if err != nil {
		t.Fatalf("Applications 2023: %v", err)
	}
	if it := stat(t, older, domain.FieldArea, "Data/IT"); it.Value != 4 || it.Count != 1 {
		t.Fatalf("2023 Data/IT = %+v, want 4 from one record", it)
	}
}

func TestFiltersNarrowViews(t *testing.T) {
	svc := newService(t, fixture())
	org := "B"

	view, err := svc.Applications(context.Background(), filter.Filters{Organizer: &org}, 2024)
	if err != nil {
		t.Fatal(err)
	}
	if it := stat(t, view, domain.FieldArea, "Data/IT"); it.Value != 6 {
		t.Fatalf("filtered Data/IT = %v, want 6", it.Value)
	}

	unknown := "Nobody"
	empty, err := svc.Applications(context.Background(), filter.Filters{Organizer: &unknown}, 2024)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty.Records) != 0 {
		t.Fatalf("expected empty view, got %+v", empty.Records)
	}
	if k := svc.KPIs(context.Background(), filter.Filters{Organizer: &unknown}); k != (domain.KPIs{}) {
		t.Fatalf("expected zero KPIs, got %+v", k)
	}
}

func TestTopMunicipalitiesSkipsMultiple(t *testing.T) {
	svc := newService(t, fixture())

	view, err := svc.TopMunicipalities(context.Background(), filter.Filters{}, 0, 2)
	if err != nil {
		t.Fatalf("TopMunicipalities: %v", err)
	}
	if len(view.Records) != 2 {
		t.Fatalf("expected 2 ranked records, got %+v", view.Records)
	}
	if first := view.Records[0]; first.Key(domain.FieldMunicipality) != "Malmö" || first.Rank != 1 || first.Value != 10 {
		t.Fatalf("unexpected first: %+v", first)
	}
	for _, r := range view.Records {
		if r.Key(domain.FieldMunicipality) == constants.MultipleMunicipalities {
			t.Fatal("placeholder municipality must not be ranked")
		}
	}
	if view.Dropped != 1 {
		t.Fatalf("dropped = %d, want 1", view.Dropped)
	}
}

func TestTopOrganizersAndSchools(t *testing.T) {
	svc := newService(t, fixture())
	ctx := context.Background()

	top, err := svc.TopOrganizers(ctx, filter.Filters{}, 2024, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"C", "A", "B"}
	for i, w := range want {
		if got := top.Records[i].Key(domain.FieldOrganizer); got != w {
			t.Fatalf("rank %d = %q, want %q", i+1, got, w)
		}
	}

	schools, err := svc.TopSchoolsByApplications(ctx, filter.Filters{}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(schools.Records) != 1 || schools.Records[0].Key(domain.FieldOrganizer) != "B" || schools.Records[0].Value != 2 {
		t.Fatalf("unexpected top school: %+v", schools.Records)
	}
	if schools.Records[0].Measure != domain.FieldApplications {
		t.Fatalf("measure = %s", schools.Records[0].Measure)
	}
}

func TestSeatsHierarchy(t *testing.T) {
	svc := newService(t, fixture())

	h, err := svc.SeatsHierarchy(context.Background(), filter.Filters{}, 2024)
	if err != nil {
		t.Fatalf("SeatsHierarchy: %v", err)
	}

	values := make(map[string]float64)
	for _, n := range h.Nodes {
		values[n.ID] = n.Value
	}
	if values["Skåne län"] != 16 {
		t.Fatalf("Skåne län = %v, want 16 (Malmö + Lund)", values["Skåne län"])
	}
	if values["Skåne län/Lund/B"] != 6 {
		t.Fatalf("leaf = %v", values["Skåne län/Lund/B"])
	}
	if h.Dropped != 1 {
		t.Fatalf("dropped = %d, want 1 (multi-municipality course)", h.Dropped)
	}
}

func TestApplicationTrend(t *testing.T) {
	svc := newService(t, fixture())

	view, err := svc.ApplicationTrend(context.Background(), filter.Filters{})
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, r := range view.Records {
		got = append(got, r.Key(domain.FieldArea))
	}
	if len(view.Records) != 3 {
		t.Fatalf("records = %+v", view.Records)
	}
	first := view.Records[0]
	if first.Key(domain.FieldArea) != "Data/IT" || first.Year != 2023 || first.Value != 4 {
		t.Fatalf("unexpected order: %v / %+v", got, first)
	}
}

func TestStudentViews(t *testing.T) {
	svc := newService(t, fixture())
	ctx := context.Background()

	view, err := svc.StudentsByRegion(ctx, "Data/IT", 2023)
	if err != nil {
		t.Fatalf("StudentsByRegion: %v", err)
	}
	if len(view.Records) != 1 {
		t.Fatalf("records = %+v", view.Records)
	}
	if r := view.Records[0]; r.Key(domain.FieldRegionCode) != "12" || r.Value != 30 {
		t.Fatalf("fuzzy region not coded: %+v", r)
	}

	latest, err := svc.StudentsByRegion(ctx, "Data/IT", 0)
	if err != nil {
		t.Fatal(err)
	}
	if latest.Dropped != 1 {
		t.Fatalf("unmatched region must be dropped, got %d", latest.Dropped)
	}
	if r := stat(t, latest, domain.FieldRegionCode, "01"); r.Value != 100 || r.Year != 2024 {
		t.Fatalf("Stockholm = %+v", r)
	}

	trend, err := svc.StudentTrend(ctx, "Ekonomi")
	if err != nil {
		t.Fatal(err)
	}
	if len(trend.Records) != 1 || trend.Records[0].Value != 0 || trend.Records[0].Count != 0 {
		t.Fatalf("missing counts must sum to 0 with count 0: %+v", trend.Records)
	}
}

func TestStudentsNotLoaded(t *testing.T) {
	ds := fixture()
	ds.Students = nil
	svc := newService(t, ds)

	_, err := svc.StudentTrend(context.Background(), "")
	if !errors.Is(err, constants.ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
}

func TestGrants(t *testing.T) {
	svc := newService(t, fixture())
	ctx := context.Background()

	all, err := svc.Grants(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if it := stat(t, all, domain.FieldArea, "Data/IT"); it.Value != 4200000 {
		t.Fatalf("Data/IT = %v", it.Value)
	}

	july, err := svc.Grants(ctx, "july", 2024)
	if err != nil {
		t.Fatal(err)
	}
	if len(july.Records) != 1 || july.Records[0].Value != 1400000 {
		t.Fatalf("july 2024 = %+v", july.Records)
	}

	if _, err := svc.Grants(ctx, "december", 0); !errors.Is(err, constants.ErrUnknownRound) {
		t.Fatalf("expected ErrUnknownRound, got %v", err)
	}

	byRegion, err := svc.GrantsByRegion(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if sthlm := stat(t, byRegion, domain.FieldRegionCode, "01"); sthlm.Value != 2100000 || sthlm.Count != 2 {
		t.Fatalf("Stockholm = %+v", sthlm)
	}
}

func TestOrganizerStats(t *testing.T) {
	ds := fixture()
	ds.Courses[1].YHPoints = ptr(200)
	ds.Courses[2].YHPoints = ptr(300)
	svc := newService(t, ds)

	stats := svc.OrganizerStats(context.Background(), "B")
	if stats.Courses != 2 || stats.RequestedSeats != 14 || stats.ApprovedSeats != 6 || stats.MeanYHPoints != 250 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Areas["Data/IT"] != 1 || stats.Areas["Ekonomi"] != 1 {
		t.Fatalf("areas = %v", stats.Areas)
	}

	if none := svc.OrganizerStats(context.Background(), "Nobody"); none.Courses != 0 {
		t.Fatalf("expected empty stats, got %+v", none)
	}
}

func TestOptions(t *testing.T) {
	svc := newService(t, fixture())

	opts := svc.Options(context.Background())
	if strings.Join(opts.Organizers, ",") != "A,B,C" {
		t.Fatalf("organizers = %v", opts.Organizers)
	}
	if len(opts.Years) != 2 || opts.Years[0] != 2023 || opts.Years[1] != 2024 {
		t.Fatalf("years = %v", opts.Years)
	}
	if len(opts.GrantYears) != 2 || len(opts.StudentYears) != 2 {
		t.Fatalf("grant years = %v, student years = %v", opts.GrantYears, opts.StudentYears)
	}
	if len(opts.EducationNames) != 0 {
		t.Fatalf("blank education names must not be offered: %v", opts.EducationNames)
	}
}

func TestViewDispatch(t *testing.T) {
	svc := newService(t, fixture())

	for _, name := range Views() {
		if _, err := svc.View(context.Background(), name, Params{}); err != nil {
			t.Fatalf("view %s: %v", name, err)
		}
	}

	if _, err := svc.View(context.Background(), "pie_of_everything", Params{}); !errors.Is(err, constants.ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
}

func TestRaw(t *testing.T) {
	svc := newService(t, fixture())
	ctx := context.Background()

	page, err := svc.Raw(ctx, ingest.DatasetCourses, 1, 1)
	if err != nil {
		t.Fatalf("Raw: %v", err)
	}
	if page.Total != 3 || len(page.Rows) != 1 || page.Rows[0][1] != "Stockholm" {
		t.Fatalf("unexpected page: %+v", page)
	}
	if strings.Join(page.Header, ",") != "Anordnare namn,Kommun" {
		t.Fatalf("header = %v", page.Header)
	}

	past, err := svc.Raw(ctx, ingest.DatasetCourses, 10, 5)
	if err != nil || len(past.Rows) != 0 {
		t.Fatalf("offset past end: %+v, %v", past, err)
	}

	if _, err := svc.Raw(ctx, "nope", 0, 0); !errors.Is(err, constants.ErrUnknownDataset) {
		t.Fatalf("expected ErrUnknownDataset, got %v", err)
	}
}

func TestRawKeepsHeaderAsRead(t *testing.T) {
	ds := fixture()
	ds.Raw[ingest.DatasetGraduates] = &table.Table{
		Name:   ingest.DatasetGraduates,
		Header: []string{"Kommun", "Kommun", ""},
		Rows:   [][]string{{"Malmö", "Lund", "12"}},
	}
	svc := newService(t, ds)

	page, err := svc.Raw(context.Background(), ingest.DatasetGraduates, 0, 0)
	if err != nil {
		t.Fatalf("Raw: %v", err)
	}
	if strings.Join(page.Header, ",") != "Kommun,Kommun," {
		t.Fatalf("header renamed: %q", page.Header)
	}
	if strings.Join(page.Rows[0], ",") != "Malmö,Lund,12" {
		t.Fatalf("row = %v", page.Rows[0])
	}
}
