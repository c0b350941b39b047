// Package config reads yhdash settings with viper and validates them.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ougirez/yhdash/internal/pkg/constants"
	"github.com/ougirez/yhdash/internal/pkg/geo"
	"github.com/ougirez/yhdash/internal/pkg/resolve"
	"github.com/ougirez/yhdash/internal/pkg/table"
	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig   `mapstructure:"server"`
	Log            LogConfig      `mapstructure:"log"`
	Grant          GrantConfig    `mapstructure:"grant"`
	Fuzzy          FuzzyConfig    `mapstructure:"fuzzy"`
	Ingest         IngestConfig   `mapstructure:"ingest"`
	Sources        SourcesConfig  `mapstructure:"sources"`
	Municipalities []resolve.Pair `mapstructure:"municipalities" validate:"dive"`
}

type ServerConfig struct {
	Addr        string   `mapstructure:"addr" validate:"required"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type LogConfig struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

type GrantConfig struct {
	RatePerPoint float64 `mapstructure:"rate_per_point" validate:"gt=0"`
}

type FuzzyConfig struct {
	Floor float64 `mapstructure:"floor" validate:"gte=0,lte=1"`
}

type IngestConfig struct {
	FetchRetries uint64        `mapstructure:"fetch_retries"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout" validate:"gt=0"`
}

type SourcesConfig struct {
	Courses     CourseSource  `mapstructure:"courses"`
	Students    StudentSource `mapstructure:"students"`
	GrantsApril GrantSource   `mapstructure:"grants_april"`
	GrantsJuly  GrantSource   `mapstructure:"grants_july"`
	Regions     RegionSource  `mapstructure:"regions"`
	Graduates   RawSource     `mapstructure:"graduates"`
}

type CourseSource struct {
	table.Source `mapstructure:",squash"`
	Columns      CourseColumns `mapstructure:"columns"`
}

type CourseColumns struct {
	Organizer       string `mapstructure:"organizer" validate:"required"`
	Municipality    string `mapstructure:"municipality" validate:"required"`
	Region          string `mapstructure:"region"`
	Area            string `mapstructure:"area" validate:"required"`
	EducationName   string `mapstructure:"education_name"`
	YHPoints        string `mapstructure:"yh_points"`
	RequestedPrefix string `mapstructure:"requested_prefix" validate:"required"`
	ApprovedPrefix  string `mapstructure:"approved_prefix" validate:"required"`
}

// StudentSource is optional: an empty path disables the student views.
type StudentSource struct {
	Path      string         `mapstructure:"path"`
	Format    table.Format   `mapstructure:"format"`
	Sheet     string         `mapstructure:"sheet"`
	Encoding  string         `mapstructure:"encoding"`
	Delimiter string         `mapstructure:"delimiter"`
	HeaderRow int            `mapstructure:"header_row"`
	Columns   StudentColumns `mapstructure:"columns"`
}

type StudentColumns struct {
	Region          string `mapstructure:"region" validate:"required"`
	Area            string `mapstructure:"area" validate:"required"`
	Gender          string `mapstructure:"gender" validate:"required"`
	StudyPace       string `mapstructure:"study_pace" validate:"required"`
	QualifiedPrefix string `mapstructure:"qualified_prefix" validate:"required"`
}

// GrantSource is optional: an empty path skips that round.
type GrantSource struct {
	Path      string       `mapstructure:"path"`
	Format    table.Format `mapstructure:"format"`
	Sheet     string       `mapstructure:"sheet"`
	Encoding  string       `mapstructure:"encoding"`
	Delimiter string       `mapstructure:"delimiter"`
	HeaderRow int          `mapstructure:"header_row"`
	Columns   GrantColumns `mapstructure:"columns"`
}

type GrantColumns struct {
	Area           string `mapstructure:"area" validate:"required"`
	Organizer      string `mapstructure:"organizer" validate:"required"`
	Region         string `mapstructure:"region" validate:"required"`
	YHPoints       string `mapstructure:"yh_points" validate:"required"`
	ApprovedPrefix string `mapstructure:"approved_prefix" validate:"required"`
}

// RawSource is a table kept only for the raw preview; an empty path skips it.
type RawSource struct {
	Path      string       `mapstructure:"path"`
	Format    table.Format `mapstructure:"format"`
	Sheet     string       `mapstructure:"sheet"`
	Encoding  string       `mapstructure:"encoding"`
	Delimiter string       `mapstructure:"delimiter"`
	HeaderRow int          `mapstructure:"header_row"`
}

type RegionSource struct {
	Path         string `mapstructure:"path" validate:"required"`
	NameProperty string `mapstructure:"name_property" validate:"required"`
	CodeProperty string `mapstructure:"code_property" validate:"required"`
}

func (s StudentSource) Table() table.Source {
	return table.Source{Path: s.Path, Format: s.Format, Sheet: s.Sheet, Encoding: s.Encoding, Delimiter: s.Delimiter, HeaderRow: s.HeaderRow}
}

func (s GrantSource) Table() table.Source {
	return table.Source{Path: s.Path, Format: s.Format, Sheet: s.Sheet, Encoding: s.Encoding, Delimiter: s.Delimiter, HeaderRow: s.HeaderRow}
}

func (s RawSource) Table() table.Source {
	return table.Source{Path: s.Path, Format: s.Format, Sheet: s.Sheet, Encoding: s.Encoding, Delimiter: s.Delimiter, HeaderRow: s.HeaderRow}
}

// SetDefaults registers the defaults for every key, matching the published MYH files.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(constants.ViperServerAddrKey, ":5050")
	v.SetDefault(constants.ViperServerCORSOriginsKey, []string{"http://localhost:3000"})
	v.SetDefault(constants.ViperLogLevelKey, "info")
	v.SetDefault(constants.ViperLogDevelopmentKey, false)
	v.SetDefault(constants.ViperGrantRateKey, constants.DefaultGrantRatePerPoint)
	v.SetDefault(constants.ViperFuzzyFloorKey, constants.DefaultFuzzyFloor)
	v.SetDefault(constants.ViperFetchRetriesKey, 5)
	v.SetDefault(constants.ViperFetchTimeoutKey, "30s")

	src := constants.ViperSourcesKey + "."

	v.SetDefault(src+"courses.path", "data/inkomna-ansokningar-2024-for-kurser.xlsx")
	v.SetDefault(src+"courses.columns.organizer", "Anordnare namn")
	v.SetDefault(src+"courses.columns.municipality", "Kommun")
	v.SetDefault(src+"courses.columns.region", "Län")
	v.SetDefault(src+"courses.columns.area", "Sökt utbildningsområde")
	v.SetDefault(src+"courses.columns.education_name", "Utbildningsnamn")
	v.SetDefault(src+"courses.columns.yh_points", "YH-poäng")
	v.SetDefault(src+"courses.columns.requested_prefix", "Sökt antal platser")
	v.SetDefault(src+"courses.columns.approved_prefix", "Antal beviljade platser start")

	v.SetDefault(src+"students.path", "data/student/antal_behoriga_sokande_kurser_kon_omrade_alder_2020_2024.csv")
	v.SetDefault(src+"students.encoding", "latin1")
	v.SetDefault(src+"students.columns.region", "region (hemlän)")
	v.SetDefault(src+"students.columns.area", "utbildningsområde MYH")
	v.SetDefault(src+"students.columns.gender", "kön")
	v.SetDefault(src+"students.columns.study_pace", "utbildningens studietakt")
	v.SetDefault(src+"students.columns.qualified_prefix", "Antal behöriga sökande")

	for _, round := range []string{"grants_april", "grants_july"} {
		v.SetDefault(src+round+".columns.area", "Utbildningsområde")
		v.SetDefault(src+round+".columns.organizer", "Utbildningsanordnare")
		v.SetDefault(src+round+".columns.region", "Län")
		v.SetDefault(src+round+".columns.yh_points", "YH-poäng")
		v.SetDefault(src+round+".columns.approved_prefix", "Beviljade platser")
	}

	v.SetDefault(src+"graduates.path", "")

	v.SetDefault(src+"regions.path", "assets/swedish_regions.geojson")
	v.SetDefault(src+"regions.name_property", geo.DefaultNameProperty)
	v.SetDefault(src+"regions.code_property", geo.DefaultCodeProperty)
}

// Load reads path into the global viper and returns the validated config. An
// empty path uses defaults and env only; a named file that is missing is an error.
func Load(path string) (*Config, error) {
	return LoadInto(viper.GetViper(), path)
}

func LoadInto(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(constants.ViperEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("viper.ReadInConfig, path-%s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// MunicipalityTable returns the configured mapping, or the built-in one.
func (c *Config) MunicipalityTable() (*resolve.Table, error) {
	if len(c.Municipalities) == 0 {
		return resolve.DefaultTable(), nil
	}
	return resolve.NewTable(c.Municipalities)
}
