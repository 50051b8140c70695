package models

import "time"

// SalesRecord is one row of the historical sales dataset. Store and Dept
// are already integer-encoded in the training data; the raw identifiers
// only exist inside the fitted encoders.
type SalesRecord struct {
	DS           time.Time
	Store        int
	Dept         int
	Temperature  float64
	FuelPrice    float64
	CPI          float64
	Unemployment float64
	WeeklySales  float64
}

// ForecastRow is one predicted week. Field casing follows the training
// frame's column names, which the frontend already consumes.
type ForecastRow struct {
	DS    string  `json:"ds"`
	Store int     `json:"Store"`
	Dept  int     `json:"Dept"`
	Yhat  float64 `json:"yhat"`
}
