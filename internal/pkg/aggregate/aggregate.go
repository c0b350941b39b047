// Package aggregate groups long-format facts and reduces one measure per group.
package aggregate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ougirez/yhdash/internal/domain"
	"github.com/shopspring/decimal"
)

type Op string

const (
	OpSum   Op = "sum"
	OpMean  Op = "mean"
	OpCount Op = "count"
)

// FieldCount names the measure of a Count over all facts.
const FieldCount domain.Field = "count"

// Fact is one input record. An absent dimension or measure is missing.
type Fact struct {
	Dims     map[domain.Field]string
	Year     domain.Year
	Measures map[domain.Field]float64
}

// Result holds the groups and how many facts lacked a group key.
type Result struct {
	Stats   []domain.AggregatedStat
	Dropped int
}

type group struct {
	keys  []string
	year  domain.Year
	sum   decimal.Decimal
	count int
}

// Aggregate groups facts by keys and reduces measure with op. Key order only
// matters for hierarchical consumers; the groups themselves do not depend on it.
func Aggregate(facts []Fact, keys []domain.Field, measure domain.Field, op Op) (Result, error) {
	switch op {
	case OpSum, OpMean:
		if measure == "" {
			return Result{}, fmt.Errorf("aggregate: op %s needs a measure", op)
		}
	case OpCount:
	default:
		return Result{}, fmt.Errorf("aggregate: unknown op %q", op)
	}

	var res Result
	groups := make(map[string]*group)

	for _, f := range facts {
		vals, year, ok := groupKey(f, keys)
		if !ok {
			res.Dropped++
			continue
		}

		id := strings.Join(vals, "\x1f")
		g, ok := groups[id]
		if !ok {
			g = &group{keys: vals, year: year}
			groups[id] = g
		}

		if measure == "" {
			g.count++
			continue
		}
		v, ok := f.Measures[measure]
		if !ok {
			continue
		}
		g.sum = g.sum.Add(decimal.NewFromFloat(v))
		g.count++
	}

	outMeasure := measure
	if op == OpCount && measure == "" {
		outMeasure = FieldCount
	}

	res.Stats = make([]domain.AggregatedStat, 0, len(groups))
	for _, g := range groups {
		stat := domain.AggregatedStat{
			Keys:    make(map[domain.Field]string, len(keys)),
			Measure: outMeasure,
			Count:   g.count,
			Year:    g.year,
		}
		for i, k := range keys {
			if k == domain.FieldYear {
				continue
			}
			stat.Keys[k] = g.keys[i]
		}

		switch op {
		case OpSum:
			stat.Value = g.sum.InexactFloat64()
		case OpMean:
			if g.count > 0 {
				stat.Value = g.sum.Div(decimal.NewFromInt(int64(g.count))).InexactFloat64()
			}
		case OpCount:
			stat.Value = float64(g.count)
		}
		res.Stats = append(res.Stats, stat)
	}

	sort.Slice(res.Stats, func(i, j int) bool {
		return less(res.Stats[i], res.Stats[j], keys)
	})

	return res, nil
}

func groupKey(f Fact, keys []domain.Field) ([]string, domain.Year, bool) {
	vals := make([]string, len(keys))
	var year domain.Year
	for i, k := range keys {
		if k == domain.FieldYear {
			if f.Year == 0 {
				return nil, 0, false
			}
			year = f.Year
			vals[i] = strconv.Itoa(f.Year)
			continue
		}
		v, ok := f.Dims[k]
		if !ok {
			return nil, 0, false
		}
		vals[i] = v
	}
	return vals, year, true
}

func less(a, b domain.AggregatedStat, keys []domain.Field) bool {
	for _, k := range keys {
		if k == domain.FieldYear {
			if a.Year != b.Year {
				return a.Year < b.Year
			}
			continue
		}
		if av, bv := a.Keys[k], b.Keys[k]; av != bv {
			return av < bv
		}
	}
	return false
}
