package artifacts

// Vectorizer is the fitted text vectorizer exported by the training
// pipeline. The serving path never vectorizes text (the similarity matrix
// is precomputed), but the artifact is part of the pipeline's output set
// and loading it keeps startup validation honest about missing exports.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}
