// Package recommend ranks catalog products against a query product using
// the precomputed similarity matrix, weighted by rating quality.
package recommend

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"mercaml/pkg/artifacts"
	"mercaml/pkg/models"
)

// DefaultTopN is the number of recommendations returned when the caller
// does not ask for a specific count.
const DefaultTopN = 7

// ErrProductNotFound reports a query product absent from the catalog.
var ErrProductNotFound = errors.New("producto no encontrado")

type Recommender struct {
	catalog []models.Product
	sim     *mat.Dense
	index   map[string]int
}

func New(set *artifacts.Set) *Recommender {
	index := make(map[string]int, len(set.Catalog))
	for i, p := range set.Catalog {
		// first occurrence wins; catalog names are assumed unique
		if _, ok := index[p.Name]; !ok {
			index[p.Name] = i
		}
	}
	return &Recommender{
		catalog: set.Catalog,
		sim:     set.Similarity,
		index:   index,
	}
}

// Recommend returns up to topN products ranked by weighted similarity to
// the named product.
//
// score[j] = sim[idx][j] * ratings[j] * log1p(no_of_ratings[j])
//
// The query product is excluded from the candidate set outright rather
// than by slicing off the top-ranked entry: rating weights can push
// another product above the self match, and the caller must never be
// recommended the product it asked about. Ties are broken by ascending
// catalog position, so rankings are deterministic for a fixed artifact
// set.
func (r *Recommender) Recommend(product string, topN int) (*models.Recommendations, error) {
	if topN <= 0 {
		topN = DefaultTopN
	}

	idx, ok := r.index[product]
	if !ok {
		return nil, ErrProductNotFound
	}

	n := len(r.catalog)
	scores := make([]float64, n)
	order := make([]int, 0, n-1)
	for j, p := range r.catalog {
		if j == idx {
			continue
		}
		scores[j] = r.sim.At(idx, j) * p.Ratings * math.Log1p(float64(p.NoOfRatings))
		order = append(order, j)
	}

	sort.Slice(order, func(a, b int) bool {
		if scores[order[a]] != scores[order[b]] {
			return scores[order[a]] > scores[order[b]]
		}
		return order[a] < order[b]
	})

	ranked := order
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	recs := make([]models.Product, 0, len(ranked))
	for _, j := range ranked {
		recs = append(recs, r.catalog[j])
	}

	return &models.Recommendations{
		Producto:        product,
		Recomendaciones: recs,
	}, nil
}
