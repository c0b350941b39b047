package table

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
)

// ReadCSV reads delimited text. encoding "latin1" decodes ISO-8859-1 sources.
func ReadCSV(name string, r io.Reader, encoding string, delimiter string, headerRow int) (*Table, error) {
	if encoding == "latin1" {
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if delimiter != "" {
		reader.Comma = []rune(delimiter)[0]
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv.ReadAll, table-%s: %w", name, err)
	}

	return fromRows(name, rows, headerRow)
}
