// Package classify accepts image uploads and delegates their labeling to
// an external classifier service. This side only does I/O marshalling and
// error translation; the model itself is out of scope.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Classifier labels one image file and reports a confidence score.
type Classifier interface {
	Classify(ctx context.Context, imagePath string) (label string, confidence float64, err error)
}

// HTTPClassifier talks to the model-serving endpoint that hosts the image
// classifier. One instance is shared by all requests.
type HTTPClassifier struct {
	endpoint string
	client   *http.Client
}

func NewHTTPClassifier(endpoint string, timeout time.Duration) *HTTPClassifier {
	return &HTTPClassifier{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type classifyResponse struct {
	Clase     string  `json:"clase"`
	Confianza float64 `json:"confianza"`
}

func (c *HTTPClassifier) Classify(ctx context.Context, imagePath string) (string, float64, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return "", 0, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("imagen", filepath.Base(imagePath))
	if err != nil {
		return "", 0, fmt.Errorf("build classifier request: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", 0, fmt.Errorf("build classifier request: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", 0, fmt.Errorf("build classifier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", 0, fmt.Errorf("build classifier request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", 0, fmt.Errorf("decode classifier response: %w", err)
	}

	return out.Clase, out.Confianza, nil
}
