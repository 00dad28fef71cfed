package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
	"github.com/mamadbah2/fertiplan/internal/reference"
)

// CatalogHandler serves the read-only reference tables.
type CatalogHandler struct {
	catalog *reference.Catalog
}

// NewCatalogHandler constructs the handler. A nil catalog selects the embedded tables.
func NewCatalogHandler(catalog *reference.Catalog) *CatalogHandler {
	if catalog == nil {
		catalog = reference.Default()
	}
	return &CatalogHandler{catalog: catalog}
}

// ListCrops returns every crop profile.
func (h *CatalogHandler) ListCrops(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Crops())
}

// GetCrop returns the requirements and growth stages of one crop.
func (h *CatalogHandler) GetCrop(c *gin.Context) {
	crop, ok := h.catalog.Crop(models.CropID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown crop", "supported": h.catalog.CropIDs()})
		return
	}
	c.JSON(http.StatusOK, crop)
}

// ListFertilizers returns the fertilizer table.
func (h *CatalogHandler) ListFertilizers(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Fertilizers())
}

// ListRegions returns the regional adjustments.
func (h *CatalogHandler) ListRegions(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Regions())
}
