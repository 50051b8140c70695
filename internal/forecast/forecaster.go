// Package forecast predicts weekly demand for a store/department pair
// using the pre-trained linear regressor and its fitted encoders.
package forecast

import (
	"fmt"
	"sort"
	"time"

	"mercaml/pkg/artifacts"
	"mercaml/pkg/models"
)

// Horizon is the number of future weeks predicted per request.
const Horizon = 4

type Forecaster struct {
	model    *artifacts.LinearModel
	storeEnc *artifacts.LabelEncoder
	deptEnc  *artifacts.LabelEncoder
	history  []models.SalesRecord
}

func New(set *artifacts.Set) *Forecaster {
	return &Forecaster{
		model:    set.Demand,
		storeEnc: set.StoreEncoder,
		deptEnc:  set.DeptEncoder,
		history:  set.History,
	}
}

// Forecast predicts demand for the next four weeks after the latest
// historical date. Unknown store or department identifiers encode as the
// out-of-vocabulary sentinel instead of failing.
func (f *Forecaster) Forecast(storeID, deptID string) ([]models.ForecastRow, error) {
	store := f.storeEnc.Transform(storeID)
	dept := f.deptEnc.Transform(deptID)

	externals, err := f.lastWeeklyMeans()
	if err != nil {
		return nil, err
	}

	dates := nextSundays(f.latestDate(), Horizon)

	rows := make([]models.ForecastRow, 0, Horizon)
	for i, d := range dates {
		// feature order is fixed by training:
		// ds, Store, Dept, Temperature, Fuel_Price, CPI, Unemployment
		ord := DateToOrdinal(d)
		features := []float64{
			float64(ord),
			float64(store),
			float64(dept),
			externals[i][0],
			externals[i][1],
			externals[i][2],
			externals[i][3],
		}

		yhat, err := f.model.Predict(features)
		if err != nil {
			return nil, fmt.Errorf("predict week %d: %w", i+1, err)
		}

		rows = append(rows, models.ForecastRow{
			DS:    OrdinalToDate(ord).Format("2006-01-02"),
			Store: store,
			Dept:  dept,
			Yhat:  yhat,
		})
	}

	return rows, nil
}

func (f *Forecaster) latestDate() time.Time {
	latest := f.history[0].DS
	for _, rec := range f.history[1:] {
		if rec.DS.After(latest) {
			latest = rec.DS
		}
	}
	return latest
}

// lastWeeklyMeans averages the external features per ISO week-of-year over
// the full history and returns the last four weekly rows in ascending week
// order. The four rows are assigned positionally to the four forecast
// dates, not matched to their actual week-of-year; the model was trained
// against this filling, so aligning it by calendar week would skew the
// predictions.
func (f *Forecaster) lastWeeklyMeans() ([Horizon][4]float64, error) {
	var out [Horizon][4]float64

	sums := make(map[int][4]float64)
	counts := make(map[int]int)
	for _, rec := range f.history {
		_, week := rec.DS.ISOWeek()
		s := sums[week]
		s[0] += rec.Temperature
		s[1] += rec.FuelPrice
		s[2] += rec.CPI
		s[3] += rec.Unemployment
		sums[week] = s
		counts[week]++
	}

	weeks := make([]int, 0, len(sums))
	for week := range sums {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	if len(weeks) < Horizon {
		return out, fmt.Errorf("history covers %d distinct weeks, need at least %d", len(weeks), Horizon)
	}

	for i, week := range weeks[len(weeks)-Horizon:] {
		n := float64(counts[week])
		s := sums[week]
		out[i] = [4]float64{s[0] / n, s[1] / n, s[2] / n, s[3] / n}
	}

	return out, nil
}

// nextSundays returns the first n Sundays strictly after the given date,
// one week apart.
func nextSundays(after time.Time, n int) []time.Time {
	d := after.AddDate(0, 0, 1)
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, 1)
	}

	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = d
		d = d.AddDate(0, 0, 7)
	}
	return dates
}
