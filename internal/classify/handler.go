package classify

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mercaml/pkg/models"
)

type Handler struct {
	Classifier Classifier
	UploadDir  string
}

func NewHandler(classifier Classifier, uploadDir string) (*Handler, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, err
	}
	return &Handler{Classifier: classifier, UploadDir: uploadDir}, nil
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/clasificar", h.classify)
}

func (h *Handler) classify(c *gin.Context) {
	file, err := c.FormFile("imagen")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se envió ninguna imagen"})
		return
	}
	if strings.TrimSpace(file.Filename) == "" || file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Archivo vacío"})
		return
	}

	// uuid prefix keeps concurrent uploads of the same filename from
	// clobbering each other
	path := filepath.Join(h.UploadDir, uuid.NewString()+"_"+sanitizeFilename(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		log.Printf("saving upload %q failed: %v", file.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno al procesar la imagen"})
		return
	}
	defer os.Remove(path)

	label, confidence, err := h.Classifier.Classify(c.Request.Context(), path)
	if err != nil {
		// detail stays server-side on this route
		log.Printf("classifying %q failed: %v", file.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno al procesar la imagen"})
		return
	}

	c.JSON(http.StatusOK, models.Classification{
		Clase:     label,
		Confianza: confidence,
	})
}

// sanitizeFilename reduces an uploaded filename to a safe basename:
// path components are stripped and anything outside [A-Za-z0-9._-]
// becomes an underscore.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := strings.Trim(b.String(), "._")
	if out == "" {
		out = "imagen"
	}
	return out
}
