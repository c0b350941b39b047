package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var numberCleaner = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", ",", ".")

// ParseNumber reads a cell written with Swedish formatting ("1 234,5").
// Blank cells and dashes are missing values.
func ParseNumber(cell string) (float64, bool, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "-" || cell == ".." {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(numberCleaner.Replace(cell), 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("non-finite number %q", cell)
	}
	return v, true, nil
}
