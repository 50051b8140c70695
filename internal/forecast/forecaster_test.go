package forecast

import (
	"testing"
	"time"

	"mercaml/pkg/artifacts"
	"mercaml/pkg/models"
)

func record(t *testing.T, day string, temp float64) models.SalesRecord {
	t.Helper()
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("parse %s: %v", day, err)
	}
	return models.SalesRecord{
		DS:           d,
		Temperature:  temp,
		FuelPrice:    3.5,
		CPI:          190.0,
		Unemployment: 7.0,
		WeeklySales:  20000.0,
	}
}

// fixtureSet covers ISO weeks 40-43 of 2012; the latest record is Friday
// 2012-10-26. The model is yhat = 100*Store + 10*Dept + Temperature + 500.
func fixtureSet(t *testing.T) *artifacts.Set {
	t.Helper()

	model, err := artifacts.NewLinearModel(
		[]string{"ds", "Store", "Dept", "Temperature", "Fuel_Price", "CPI", "Unemployment"},
		[]float64{0, 100, 10, 1, 0, 0, 0},
		500,
	)
	if err != nil {
		t.Fatalf("NewLinearModel: %v", err)
	}

	return &artifacts.Set{
		Demand:       model,
		StoreEncoder: artifacts.NewLabelEncoder([]string{"1", "2", "3"}),
		DeptEncoder:  artifacts.NewLabelEncoder([]string{"7", "12"}),
		History: []models.SalesRecord{
			record(t, "2012-10-05", 60), // week 40
			record(t, "2012-10-06", 62),
			record(t, "2012-10-12", 58), // week 41
			record(t, "2012-10-13", 60),
			record(t, "2012-10-19", 55), // week 42
			record(t, "2012-10-20", 57),
			record(t, "2012-10-26", 52), // week 43
		},
	}
}

func TestForecastShape(t *testing.T) {
	rows, err := New(fixtureSet(t)).Forecast("2", "12")
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}

	if len(rows) != Horizon {
		t.Fatalf("Forecast() returned %d rows, want %d", len(rows), Horizon)
	}

	latest, _ := time.Parse("2006-01-02", "2012-10-26")
	prev := latest
	for i, row := range rows {
		d, err := time.Parse("2006-01-02", row.DS)
		if err != nil {
			t.Fatalf("row %d: unparseable ds %q", i, row.DS)
		}
		if !d.After(prev) {
			t.Errorf("row %d: ds %s is not after %s", i, row.DS, prev.Format("2006-01-02"))
		}
		if d.Weekday() != time.Sunday {
			t.Errorf("row %d: ds %s is a %s, want Sunday", i, row.DS, d.Weekday())
		}
		if i > 0 && d.Sub(prev) != 7*24*time.Hour {
			t.Errorf("row %d: gap from previous is %v, want one week", i, d.Sub(prev))
		}
		prev = d
	}

	if rows[0].DS != "2012-10-28" {
		t.Errorf("first forecast date = %s, want 2012-10-28", rows[0].DS)
	}
}

func TestForecastValues(t *testing.T) {
	rows, err := New(fixtureSet(t)).Forecast("2", "12")
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}

	// store "2" -> 1, dept "12" -> 1, temperature means for the last four
	// weeks are 61, 59, 56, 52 assigned positionally
	want := []float64{671, 669, 666, 662}
	for i, row := range rows {
		if row.Store != 1 || row.Dept != 1 {
			t.Errorf("row %d: codes = (%d, %d), want (1, 1)", i, row.Store, row.Dept)
		}
		if row.Yhat != want[i] {
			t.Errorf("row %d: yhat = %v, want %v", i, row.Yhat, want[i])
		}
	}
}

func TestForecastUnknownIdentifiers(t *testing.T) {
	tests := []struct {
		name      string
		storeID   string
		deptID    string
		wantStore int
		wantDept  int
	}{
		{"unknown store", "99", "12", -1, 1},
		{"unknown dept", "2", "99", 1, -1},
		{"both unknown", "99", "98", -1, -1},
	}

	f := New(fixtureSet(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := f.Forecast(tt.storeID, tt.deptID)
			if err != nil {
				t.Fatalf("Forecast() error = %v, want sentinel encoding instead", err)
			}
			if len(rows) != Horizon {
				t.Fatalf("Forecast() returned %d rows, want %d", len(rows), Horizon)
			}
			for _, row := range rows {
				if row.Store != tt.wantStore || row.Dept != tt.wantDept {
					t.Errorf("codes = (%d, %d), want (%d, %d)",
						row.Store, row.Dept, tt.wantStore, tt.wantDept)
				}
			}
		})
	}
}

func TestForecastNeedsFourWeeksOfHistory(t *testing.T) {
	set := fixtureSet(t)
	set.History = set.History[:5] // weeks 40-42 only

	if _, err := New(set).Forecast("1", "7"); err == nil {
		t.Errorf("Forecast() with 3 weeks of history succeeded, want error")
	}
}
