// Package artifacts loads the serialized, pre-trained objects the API
// serves: the demand regressor with its encoders and history, and the
// recommender's catalog with its similarity matrix. Everything is loaded
// once at startup and immutable afterwards; a *Set is safe to share
// across concurrent requests.
package artifacts

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"gonum.org/v1/gonum/mat"

	"mercaml/pkg/models"
)

// Artifact file names, as written by the training pipeline.
const (
	DemandModelFile = "modelo_demanda.json"
	StoreEncFile    = "encoder_store.json"
	DeptEncFile     = "encoder_dept.json"
	HistoryFile     = "datos_historicos.csv"
	VectorizerFile  = "vectorizer.json"
	SimilarityFile  = "similarity_matrix.json"
	CatalogFile     = "data.csv"
)

const dateLayout = "2006-01-02"

// Set holds every loaded artifact. All fields are read-only after Load.
type Set struct {
	Demand       *LinearModel
	StoreEncoder *LabelEncoder
	DeptEncoder  *LabelEncoder
	History      []models.SalesRecord
	Vectorizer   *Vectorizer
	Similarity   *mat.Dense
	Catalog      []models.Product
}

// Load reads and validates the full artifact set under dir. Any missing
// or malformed file is a startup failure; there is no partial set.
func Load(dir string) (*Set, error) {
	set := &Set{}

	var modelFile struct {
		Features     []string  `json:"features"`
		Coefficients []float64 `json:"coefficients"`
		Intercept    float64   `json:"intercept"`
	}
	if err := decodeJSONFile(filepath.Join(dir, DemandModelFile), &modelFile); err != nil {
		return nil, err
	}

	var err error
	if set.Demand, err = NewLinearModel(modelFile.Features, modelFile.Coefficients, modelFile.Intercept); err != nil {
		return nil, fmt.Errorf("%s: %w", DemandModelFile, err)
	}
	if set.StoreEncoder, err = loadEncoder(filepath.Join(dir, StoreEncFile)); err != nil {
		return nil, err
	}
	if set.DeptEncoder, err = loadEncoder(filepath.Join(dir, DeptEncFile)); err != nil {
		return nil, err
	}

	if set.History, err = loadHistory(filepath.Join(dir, HistoryFile)); err != nil {
		return nil, err
	}
	if len(set.History) == 0 {
		return nil, fmt.Errorf("%s: no records", HistoryFile)
	}

	if err := decodeJSONFile(filepath.Join(dir, VectorizerFile), &set.Vectorizer); err != nil {
		return nil, err
	}

	if set.Catalog, err = loadCatalog(filepath.Join(dir, CatalogFile)); err != nil {
		return nil, err
	}
	if len(set.Catalog) == 0 {
		return nil, fmt.Errorf("%s: no products", CatalogFile)
	}

	if set.Similarity, err = loadSimilarity(filepath.Join(dir, SimilarityFile)); err != nil {
		return nil, err
	}
	if n, _ := set.Similarity.Dims(); n != len(set.Catalog) {
		return nil, fmt.Errorf("%s: matrix order %d does not match catalog size %d",
			SimilarityFile, n, len(set.Catalog))
	}

	return set, nil
}

func MustLoad(dir string) *Set {
	set, err := Load(dir)
	if err != nil {
		log.Fatalf("failed to load artifacts from %s: %v", dir, err)
	}
	return set
}

func decodeJSONFile(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func loadEncoder(path string) (*LabelEncoder, error) {
	var file struct {
		Classes []string `json:"classes"`
	}
	if err := decodeJSONFile(path, &file); err != nil {
		return nil, err
	}
	if len(file.Classes) == 0 {
		return nil, fmt.Errorf("%s: empty class list", filepath.Base(path))
	}
	return NewLabelEncoder(file.Classes), nil
}

func loadSimilarity(path string) (*mat.Dense, error) {
	var rows [][]float64
	if err := decodeJSONFile(path, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty matrix", filepath.Base(path))
	}

	n := len(rows)
	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%s: row %d has %d entries, want %d (matrix must be square)",
				filepath.Base(path), i, len(row), n)
		}
		data = append(data, row...)
	}
	return mat.NewDense(n, n, data), nil
}

func loadHistory(path string) ([]models.SalesRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	var records []models.SalesRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if len(row) == 0 {
			continue
		}

		rec := models.SalesRecord{}
		rec.DS, err = time.Parse(dateLayout, valueAt(header, row, "ds"))
		if err != nil {
			return nil, fmt.Errorf("%s: parse ds: %w", filepath.Base(path), err)
		}

		if rec.Store, err = intAt(header, row, "store"); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if rec.Dept, err = intAt(header, row, "dept"); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if rec.Temperature, err = floatAt(header, row, "temperature"); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if rec.FuelPrice, err = floatAt(header, row, "fuel_price"); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if rec.CPI, err = floatAt(header, row, "cpi"); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if rec.Unemployment, err = floatAt(header, row, "unemployment"); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if rec.WeeklySales, err = floatAt(header, row, "weekly_sales"); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}

		records = append(records, rec)
	}

	return records, nil
}

func loadCatalog(path string) ([]models.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	var products []models.Product
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if len(row) == 0 {
			continue
		}

		name := valueAt(header, row, "name")
		if name == "" {
			continue
		}

		p := models.Product{
			Name:         name,
			MainCategory: valueAt(header, row, "main_category"),
			SubCategory:  valueAt(header, row, "sub_category"),
		}
		if p.Ratings, err = floatAt(header, row, "ratings"); err != nil {
			return nil, fmt.Errorf("%s: product %q: %w", filepath.Base(path), name, err)
		}
		if p.NoOfRatings, err = intAt(header, row, "no_of_ratings"); err != nil {
			return nil, fmt.Errorf("%s: product %q: %w", filepath.Base(path), name, err)
		}

		products = append(products, p)
	}

	return products, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func intAt(header map[string]int, row []string, key string) (int, error) {
	raw := valueAt(header, row, key)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func floatAt(header map[string]int, row []string, key string) (float64, error) {
	raw := valueAt(header, row, key)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}
