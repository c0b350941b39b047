package render

import (
	"fmt"
	"io"

	"github.com/ougirez/yhdash/internal/domain"
	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// Workbook writes v as a single-sheet workbook: key columns, year, measure, count, rank.
func Workbook(v *domain.View) (*excelize.File, error) {
	f := excelize.NewFile()

	sheet := v.Name
	if len(sheet) > maxSheetName {
		sheet = sheet[:maxSheetName]
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("excelize.SetSheetName: %w", err)
	}

	keys := make([]domain.Field, 0, len(v.Fields))
	for _, k := range v.Fields {
		if k != domain.FieldYear {
			keys = append(keys, k)
		}
	}

	header := make([]interface{}, 0, len(keys)+4)
	for _, k := range keys {
		header = append(header, string(k))
	}
	header = append(header, string(domain.FieldYear), string(v.Measure), "count", "rank")
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("excelize.SetSheetRow, header: %w", err)
	}

	for i, r := range v.Records {
		row := make([]interface{}, 0, len(header))
		for _, k := range keys {
			row = append(row, r.Key(k))
		}
		row = append(row, yearCell(r.Year), r.Value, r.Count, rankCell(r.Rank))

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("excelize.SetSheetRow, row-%d: %w", i, err)
		}
	}

	return f, nil
}

// WriteWorkbook streams the workbook of v to w.
func WriteWorkbook(v *domain.View, w io.Writer) error {
	f, err := Workbook(v)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("excelize.WriteTo: %w", err)
	}
	return nil
}

func yearCell(y domain.Year) interface{} {
	if y == 0 {
		return ""
	}
	return y
}

func rankCell(r int) interface{} {
	if r == 0 {
		return ""
	}
	return r
}
