package aggregate

import (
	"strings"

	"github.com/ougirez/yhdash/internal/domain"
	"github.com/shopspring/decimal"
)

// idEscaper keeps "/" inside a label from reading as a level separator.
var idEscaper = strings.NewReplacer(`\`, `\\`, "/", `\/`)

// Hierarchy folds leaf stats grouped by keys into sunburst nodes. Each inner
// node's value is the sum of its leaves. Node ids are the escaped labels of the
// path joined with "/".
func Hierarchy(stats []domain.AggregatedStat, keys []domain.Field) []domain.HierarchyNode {
	var (
		order []string
		nodes = make(map[string]*domain.HierarchyNode)
		sums  = make(map[string]decimal.Decimal)
	)

	for _, s := range stats {
		path := make([]string, 0, len(keys))
		for depth, k := range keys {
			path = append(path, idEscaper.Replace(s.Keys[k]))
			id := strings.Join(path, "/")

			if _, ok := nodes[id]; !ok {
				nodes[id] = &domain.HierarchyNode{
					ID:     id,
					Label:  s.Keys[k],
					Parent: strings.Join(path[:depth], "/"),
					Level:  k,
				}
				order = append(order, id)
			}
			sums[id] = sums[id].Add(decimal.NewFromFloat(s.Value))
		}
	}

	out := make([]domain.HierarchyNode, 0, len(order))
	for _, id := range order {
		n := nodes[id]
		n.Value = sums[id].InexactFloat64()
		out = append(out, *n)
	}
	return out
}
