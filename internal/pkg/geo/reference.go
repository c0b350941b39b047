// Package geo loads the region reference GeoJSON and turns region names into
// region codes.
package geo

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/ougirez/yhdash/internal/domain"
	"github.com/ougirez/yhdash/internal/pkg/schema"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/xy"
)

const (
	DefaultNameProperty = "name"
	DefaultCodeProperty = "ref:se:länskod"
)

// Reference is the authoritative region key space.
type Reference struct {
	regions []domain.Region
	byName  map[string]int
	names   []string
}

// Load parses a FeatureCollection; every feature must carry nameProp and codeProp.
func Load(r io.Reader, nameProp, codeProp string) (*Reference, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read geojson: %w", err)
	}

	var fc geojson.FeatureCollection
	if err := sonic.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, &schema.SchemaError{Dataset: "regions", Column: "features", Reason: "no features"}
	}

	ref := &Reference{
		regions: make([]domain.Region, 0, len(fc.Features)),
		byName:  make(map[string]int, len(fc.Features)),
	}
	for i, f := range fc.Features {
		name, ok := property(f.Properties, nameProp)
		if !ok {
			return nil, &schema.SchemaError{Dataset: "regions", Column: nameProp, Reason: fmt.Sprintf("feature %d has no name", i)}
		}
		code, ok := property(f.Properties, codeProp)
		if !ok {
			return nil, &schema.SchemaError{Dataset: "regions", Column: codeProp, Reason: fmt.Sprintf("feature %q has no code", name)}
		}
		if _, dup := ref.byName[name]; dup {
			return nil, &schema.SchemaError{Dataset: "regions", Column: nameProp, Reason: fmt.Sprintf("duplicate region %q", name)}
		}

		region := domain.Region{Name: name, Code: code, Geometry: f.Geometry}
		if f.Geometry != nil {
			if c, err := xy.Centroid(f.Geometry); err == nil && len(c) >= 2 {
				region.Centroid = [2]float64{c[0], c[1]}
			}
		}

		ref.byName[name] = len(ref.regions)
		ref.regions = append(ref.regions, region)
		ref.names = append(ref.names, name)
	}
	sort.Strings(ref.names)

	return ref, nil
}

// Code is an exact lookup of a region name.
func (r *Reference) Code(name string) (string, bool) {
	i, ok := r.byName[name]
	if !ok {
		return "", false
	}
	return r.regions[i].Code, true
}

// Names returns the region names in sorted order.
func (r *Reference) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Regions returns the regions in file order.
func (r *Reference) Regions() []domain.Region {
	out := make([]domain.Region, len(r.regions))
	copy(out, r.regions)
	return out
}

func property(props map[string]interface{}, key string) (string, bool) {
	v, ok := props[key]
	if !ok || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, val != ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		return fmt.Sprint(val), true
	}
}
