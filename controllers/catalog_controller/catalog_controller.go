package catalog_controller

import (
	"net/http"

	"github.com/dudeandirt/lawncare/logger"
	"github.com/dudeandirt/lawncare/models/product_models"
	"github.com/dudeandirt/lawncare/models/service_models"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogController serves the public service and product listings.
type CatalogController struct {
	DB *pgxpool.Pool
}

// NewCatalogController creates a CatalogController.
func NewCatalogController(db *pgxpool.Pool) *CatalogController {
	return &CatalogController{DB: db}
}

// Services handles GET /api/services.
func (cc *CatalogController) Services(c *gin.Context) {
	services, err := service_models.GetActiveServices(c.Request.Context(), cc.DB)
	if err != nil {
		logger.ErrorLogger.Errorf("Services API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching services"})
		return
	}
	if services == nil {
		services = []service_models.Service{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "services": services})
}

// Products handles GET /api/products. The catalog is fixed, so this never
// touches the database.
func (cc *CatalogController) Products(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "products": product_models.All()})
}
