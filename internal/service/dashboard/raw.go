package dashboard

import (
	"context"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/ougirez/yhdash/internal/domain/dto"
	"github.com/ougirez/yhdash/internal/pkg/constants"
)

const defaultRawLimit = 50

// Raw returns a page of a loaded source table as read, every cell a string.
func (s *Service) Raw(_ context.Context, dataset string, offset, limit int) (*dto.RawTable, error) {
	tbl, ok := s.ds.Raw[dataset]
	if !ok {
		return nil, fmt.Errorf("dataset-%s: %w", dataset, constants.ErrUnknownDataset)
	}
	if limit <= 0 {
		limit = defaultRawLimit
	}

	out := &dto.RawTable{
		Dataset: dataset,
		Header:  tbl.Header,
		Rows:    [][]string{},
		Total:   tbl.Len(),
	}
	if offset >= tbl.Len() {
		return out, nil
	}

	records := make([][]string, 0, tbl.Len()+1)
	records = append(records, tbl.Header)
	records = append(records, tbl.Rows...)
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.NaNValues([]string{}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("dataframe.LoadRecords, dataset-%s: %w", dataset, df.Err)
	}

	end := min(offset+limit, df.Nrow())
	indexes := make([]int, 0, end-offset)
	for i := offset; i < end; i++ {
		indexes = append(indexes, i)
	}

	page := df.Subset(indexes)
	if page.Err != nil {
		return nil, fmt.Errorf("dataframe.Subset, dataset-%s: %w", dataset, page.Err)
	}
	out.Rows = page.Records()[1:]
	return out, nil
}

// RawDatasets lists the datasets Raw can page through.
func (s *Service) RawDatasets(_ context.Context) []string {
	return s.ds.RawNames()
}
