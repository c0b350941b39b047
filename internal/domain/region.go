package domain

import "github.com/twpayne/go-geom"

type Year = int
type YearData = map[Year]float64

// Region is one feature of the reference GeoJSON.
type Region struct {
	Name     string     `json:"name"`
	Code     string     `json:"code"`
	Centroid [2]float64 `json:"centroid"`
	Geometry geom.T     `json:"-"`
}
