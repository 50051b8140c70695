package recommend

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Recommender *Recommender
}

func NewHandler(r *Recommender) *Handler {
	return &Handler{Recommender: r}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recomendar", h.recommend)
}

type recommendReq struct {
	Producto string `json:"producto"`
}

func (h *Handler) recommend(c *gin.Context) {
	var req recommendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el nombre del producto"})
		return
	}

	producto := strings.TrimSpace(req.Producto)
	if producto == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el nombre del producto"})
		return
	}

	result, err := h.Recommender.Recommend(producto, DefaultTopN)
	if errors.Is(err, ErrProductNotFound) {
		// the frontend contract expects a 200 payload carrying an error
		// key for unknown products, not a 404
		c.JSON(http.StatusOK, gin.H{"error": "Producto no encontrado"})
		return
	}
	if err != nil {
		log.Printf("recommendation failed for %q: %v", producto, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
