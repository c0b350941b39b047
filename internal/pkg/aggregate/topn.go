package aggregate

import (
	"sort"

	"github.com/ougirez/yhdash/internal/domain"
)

// TopN sorts descending by value, keeps the first n and ranks them from 1.
// Equal values keep their input order. n <= 0 keeps every stat.
func TopN(stats []domain.AggregatedStat, n int) []domain.AggregatedStat {
	out := make([]domain.AggregatedStat, len(stats))
	copy(out, stats)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
