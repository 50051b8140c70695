package models

// Product is one catalog row. Products are addressed by exact name;
// the catalog is assumed (not enforced) to carry unique names.
type Product struct {
	Name         string  `json:"name"`
	MainCategory string  `json:"main_category"`
	SubCategory  string  `json:"sub_category"`
	Ratings      float64 `json:"ratings"`
	NoOfRatings  int     `json:"no_of_ratings"`
}

// Recommendations is the response payload for a recommendation query.
type Recommendations struct {
	Producto        string    `json:"producto"`
	Recomendaciones []Product `json:"recomendaciones"`
}
