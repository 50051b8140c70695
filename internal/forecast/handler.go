package forecast

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Forecaster *Forecaster
}

func NewHandler(f *Forecaster) *Handler {
	return &Handler{Forecaster: f}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/predecir_demanda", h.predict)
}

type predictReq struct {
	StoreID string `json:"store_id"`
	DeptID  string `json:"dept_id"`
}

func (h *Handler) predict(c *gin.Context) {
	var req predictReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan store_id o dept_id"})
		return
	}

	storeID := strings.TrimSpace(req.StoreID)
	deptID := strings.TrimSpace(req.DeptID)
	if storeID == "" || deptID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan store_id o dept_id"})
		return
	}

	rows, err := h.Forecaster.Forecast(storeID, deptID)
	if err != nil {
		log.Printf("demand forecast failed for store=%s dept=%s: %v", storeID, deptID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rows)
}
