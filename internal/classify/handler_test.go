package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeClassifier struct {
	calls int32
	label string
	conf  float64
	err   error
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) (string, float64, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.label, f.conf, f.err
}

func newTestRouter(t *testing.T, fake *fakeClassifier) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uploadDir := t.TempDir()
	h, err := NewHandler(fake, uploadDir)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	router := gin.New()
	h.RegisterRoutes(router.Group("/api"))
	return router, uploadDir
}

func imageRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/clasificar", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestClassifyEndpointMissingImage(t *testing.T) {
	fake := &fakeClassifier{label: "perro", conf: 0.9}
	router, _ := newTestRouter(t, fake)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, imageRequest(t, "", "", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if atomic.LoadInt32(&fake.calls) != 0 {
		t.Errorf("classifier was invoked for a request with no image")
	}
}

func TestClassifyEndpointEmptyFile(t *testing.T) {
	fake := &fakeClassifier{label: "perro", conf: 0.9}
	router, _ := newTestRouter(t, fake)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, imageRequest(t, "imagen", "foto.jpg", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if atomic.LoadInt32(&fake.calls) != 0 {
		t.Errorf("classifier was invoked for an empty upload")
	}
}

func TestClassifyEndpointSuccess(t *testing.T) {
	fake := &fakeClassifier{label: "gato", conf: 0.87}
	router, uploadDir := newTestRouter(t, fake)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, imageRequest(t, "imagen", "gato.jpg", []byte("not-really-a-jpeg")))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Clase     string  `json:"clase"`
		Confianza float64 `json:"confianza"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Clase != "gato" || resp.Confianza != 0.87 {
		t.Errorf("response = %+v, want gato/0.87", resp)
	}

	// scratch file must be gone once the request is answered
	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("upload dir still holds %d files after the request", len(entries))
	}
}

func TestClassifyEndpointClassifierFailure(t *testing.T) {
	fake := &fakeClassifier{err: errors.New("model exploded: tensor shape mismatch")}
	router, _ := newTestRouter(t, fake)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, imageRequest(t, "imagen", "foto.jpg", []byte("data")))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// this route never leaks the underlying error
	if resp["error"] != "Error interno al procesar la imagen" {
		t.Errorf("error = %q, want the generic message", resp["error"])
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"foto.jpg", "foto.jpg"},
		{"../../etc/passwd", "passwd"},
		{"mi foto (1).png", "mi_foto__1_.png"},
		{"c:\\fotos\\perro.png", "perro.png"},
		{"ñandú.png", "and_.png"},
		{"...", "imagen"},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
