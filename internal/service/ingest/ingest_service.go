// Package ingest loads every configured dataset once at startup.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ougirez/yhdash/internal/domain"
	"github.com/ougirez/yhdash/internal/pkg/config"
	"github.com/ougirez/yhdash/internal/pkg/geo"
	"github.com/ougirez/yhdash/internal/pkg/logger"
	"github.com/ougirez/yhdash/internal/pkg/table"
	"golang.org/x/sync/errgroup"
)

const (
	DatasetCourses     = "courses"
	DatasetStudents    = "students"
	DatasetGrantsApril = "grants_april"
	DatasetGrantsJuly  = "grants_july"
	DatasetRegions     = "regions"
	DatasetGraduates   = "graduates"
)

func grantDataset(round domain.GrantRound) string {
	if round == domain.GrantRoundJuly {
		return DatasetGrantsJuly
	}
	return DatasetGrantsApril
}

// Datasets is the process-wide, read-only result of a load.
type Datasets struct {
	Courses  []domain.CourseRecord
	Students []domain.StudentRecord
	Grants   []domain.GrantRecord
	Regions  *geo.Reference
	// Raw keeps the source tables by dataset name for previews.
	Raw map[string]*table.Table
}

// RawNames returns the dataset names with a raw table, sorted.
func (d *Datasets) RawNames() []string {
	out := make([]string, 0, len(d.Raw))
	for name := range d.Raw {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

type Opener interface {
	Open(ctx context.Context, name string, src table.Source) (*table.Table, error)
	ReadAll(ctx context.Context, path string) ([]byte, error)
}

type Service struct {
	cfg    *config.Config
	opener Opener
}

func NewIngestService(cfg *config.Config, opener Opener) *Service {
	return &Service{cfg: cfg, opener: opener}
}

// LoadError names the dataset, file and expected columns of a failed load.
type LoadError struct {
	Dataset  string
	Path     string
	Expected []string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %s from %s (expected columns: %s): %v",
		e.Dataset, e.Path, strings.Join(e.Expected, ", "), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads all datasets in parallel. Any failure aborts the whole load.
func (s *Service) Load(ctx context.Context) (*Datasets, error) {
	var (
		ds   = &Datasets{Raw: make(map[string]*table.Table)}
		mx   sync.Mutex
		srcs = s.cfg.Sources
	)

	keepRaw := func(name string, tbl *table.Table) {
		mx.Lock()
		defer mx.Unlock()
		ds.Raw[name] = tbl
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		src := srcs.Courses
		tbl, err := s.opener.Open(egCtx, DatasetCourses, src.Source)
		if err == nil {
			var courses []domain.CourseRecord
			if courses, err = ParseCourses(tbl, src.Columns); err == nil {
				keepRaw(DatasetCourses, tbl)
				ds.Courses = courses
				logger.Infof(egCtx, "loaded %d course applications from %s", len(courses), src.Path)
				return nil
			}
		}
		return &LoadError{Dataset: DatasetCourses, Path: src.Path, Expected: expected(CourseDescriptor(src.Columns).Columns, src.Columns.RequestedPrefix, src.Columns.ApprovedPrefix), Err: err}
	})

	if srcs.Students.Path == "" {
		logger.Warnf(ctx, "no %s source configured, student views are disabled", DatasetStudents)
	} else {
		eg.Go(func() error {
			src := srcs.Students
			tbl, err := s.opener.Open(egCtx, DatasetStudents, src.Table())
			if err == nil {
				var students []domain.StudentRecord
				if students, err = ParseStudents(tbl, src.Columns); err == nil {
					keepRaw(DatasetStudents, tbl)
					ds.Students = students
					logger.Infof(egCtx, "loaded %d student records from %s", len(students), src.Path)
					return nil
				}
			}
			return &LoadError{Dataset: DatasetStudents, Path: src.Path, Expected: expected(StudentDescriptor(src.Columns).Columns, src.Columns.QualifiedPrefix), Err: err}
		})
	}

	var (
		grants   = make(map[domain.GrantRound][]domain.GrantRecord)
		grantsMx sync.Mutex
	)
	for round, src := range map[domain.GrantRound]config.GrantSource{
		domain.GrantRoundApril: srcs.GrantsApril,
		domain.GrantRoundJuly:  srcs.GrantsJuly,
	} {
		if src.Path == "" {
			logger.Warnf(ctx, "no %s source configured, round skipped", grantDataset(round))
			continue
		}
		round, src := round, src
		eg.Go(func() error {
			name := grantDataset(round)
			tbl, err := s.opener.Open(egCtx, name, src.Table())
			if err == nil {
				var recs []domain.GrantRecord
				if recs, err = ParseGrants(tbl, round, src.Columns, s.cfg.Grant.RatePerPoint); err == nil {
					keepRaw(name, tbl)
					grantsMx.Lock()
					grants[round] = recs
					grantsMx.Unlock()
					logger.Infof(egCtx, "loaded %d %s grant records from %s", len(recs), round, src.Path)
					return nil
				}
			}
			return &LoadError{Dataset: name, Path: src.Path, Expected: expected(GrantDescriptor(round, src.Columns).Columns, src.Columns.ApprovedPrefix), Err: err}
		})
	}

	if srcs.Graduates.Path != "" {
		eg.Go(func() error {
			src := srcs.Graduates
			tbl, err := s.opener.Open(egCtx, DatasetGraduates, src.Table())
			if err != nil {
				return &LoadError{Dataset: DatasetGraduates, Path: src.Path, Err: err}
			}
			keepRaw(DatasetGraduates, tbl)
			logger.Infof(egCtx, "loaded %d graduate rows from %s", tbl.Len(), src.Path)
			return nil
		})
	}

	eg.Go(func() error {
		src := srcs.Regions
		data, err := s.opener.ReadAll(egCtx, src.Path)
		if err == nil {
			var ref *geo.Reference
			if ref, err = geo.Load(bytes.NewReader(data), src.NameProperty, src.CodeProperty); err == nil {
				ds.Regions = ref
				logger.Infof(egCtx, "loaded %d regions from %s", len(ref.Names()), src.Path)
				return nil
			}
		}
		return &LoadError{Dataset: DatasetRegions, Path: src.Path, Expected: []string{src.NameProperty, src.CodeProperty}, Err: err}
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// april before july, keeping file order within a round
	ds.Grants = append(grants[domain.GrantRoundApril], grants[domain.GrantRoundJuly]...)

	logger.Infow(ctx, "datasets loaded",
		"courses", len(ds.Courses),
		"students", len(ds.Students),
		"grants", len(ds.Grants),
		"raw", ds.RawNames(),
	)

	return ds, nil
}

func expected(columns map[string]string, prefixes ...string) []string {
	out := make([]string, 0, len(columns)+len(prefixes))
	for _, col := range columns {
		out = append(out, col)
	}
	sort.Strings(out)
	for _, p := range prefixes {
		out = append(out, p+" <year>")
	}
	return out
}
