package aggregate

import (
	"testing"

	"github.com/ougirez/yhdash/internal/domain"
)

func stat(org string, v float64) domain.AggregatedStat {
	return domain.AggregatedStat{
		Keys:    map[domain.Field]string{domain.FieldOrganizer: org},
		Measure: domain.FieldApprovedSeats,
		Value:   v,
	}
}

func TestTopNUniqueMaximumRanksFirst(t *testing.T) {
	in := []domain.AggregatedStat{stat("A", 3), stat("B", 40), stat("C", 7)}

	top := TopN(in, 10)
	if len(top) != 3 {
		t.Fatalf("expected 3 stats, got %d", len(top))
	}
	if top[0].Keys[domain.FieldOrganizer] != "B" || top[0].Rank != 1 {
		t.Fatalf("expected B ranked 1, got %+v", top[0])
	}
	if top[2].Rank != 3 {
		t.Fatalf("expected rank 3 last, got %d", top[2].Rank)
	}
	if in[0].Rank != 0 {
		t.Fatalf("input must not be mutated")
	}
}

func TestTopNTiesKeepInputOrder(t *testing.T) {
	in := []domain.AggregatedStat{stat("A", 5), stat("B", 9), stat("C", 9), stat("D", 9), stat("E", 1)}

	for i := 0; i < 5; i++ {
		top := TopN(in, 2)
		if len(top) != 2 {
			t.Fatalf("expected truncation to 2, got %d", len(top))
		}
		if top[0].Keys[domain.FieldOrganizer] != "B" || top[1].Keys[domain.FieldOrganizer] != "C" {
			t.Fatalf("run %d: expected B, C got %v, %v", i, top[0].Keys, top[1].Keys)
		}
	}
}

func TestTopNKeepsAllWhenNotPositive(t *testing.T) {
	in := []domain.AggregatedStat{stat("A", 1), stat("B", 2)}
	if got := TopN(in, 0); len(got) != 2 || got[0].Rank != 1 {
		t.Fatalf("unexpected %+v", got)
	}
}
