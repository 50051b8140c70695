package artifacts

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LinearModel is the demand regressor: one coefficient per feature plus
// an intercept. Read-only after construction; concurrent Predict calls
// are safe.
type LinearModel struct {
	Features  []string
	Intercept float64

	coef *mat.VecDense
}

func NewLinearModel(features []string, coefficients []float64, intercept float64) (*LinearModel, error) {
	if len(coefficients) == 0 {
		return nil, fmt.Errorf("model has no coefficients")
	}
	if len(features) != len(coefficients) {
		return nil, fmt.Errorf("model has %d features but %d coefficients", len(features), len(coefficients))
	}
	return &LinearModel{
		Features:  features,
		Intercept: intercept,
		coef:      mat.NewVecDense(len(coefficients), coefficients),
	}, nil
}

// Predict evaluates the regressor on one feature row. The row must follow
// the fitted feature order exactly.
func (m *LinearModel) Predict(row []float64) (float64, error) {
	if len(row) != m.coef.Len() {
		return 0, fmt.Errorf("feature row has %d values, model expects %d", len(row), m.coef.Len())
	}
	x := mat.NewVecDense(len(row), row)
	return mat.Dot(m.coef, x) + m.Intercept, nil
}
