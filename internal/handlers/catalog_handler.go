package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"storefront-service/internal/catalog"
	"storefront-service/internal/config"
	"storefront-service/internal/models"
)

type CatalogHandler struct {
	loader *catalog.Loader
	cfg    *config.Config
}

func NewCatalogHandler(loader *catalog.Loader, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{loader: loader, cfg: cfg}
}

// GetProducts returns the filtered/sorted display list
// @Summary Browse products
// @Description Get products filtered by search term and category, ordered by the given sort key
// @Tags Products
// @Produce json
// @Param search query string false "Free-text search over title, description and brand"
// @Param category query string false "Exact category, empty or 'all' for everything"
// @Param sort query string false "Sort key" Enums(featured, price-asc, price-desc, rating, new) default(featured)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ProductListResponse
// @Router /products [get]
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.cfg.DefaultPageSize)))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > h.cfg.MaxPageSize {
		limit = h.cfg.DefaultPageSize
	}

	state := models.FilterState{
		Query:    c.Query("search"),
		Category: c.Query("category"),
		Sort:     models.ParseSortKey(c.Query("sort")),
	}

	list := catalog.Apply(h.loader.Products(), state)
	total := int64(len(list))

	start := (page - 1) * limit
	if start > len(list) {
		start = len(list)
	}
	end := start + limit
	if end > len(list) {
		end = len(list)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	c.JSON(http.StatusOK, models.ProductListResponse{
		Success: true,
		Data:    list[start:end],
		Pagination: &models.PaginationInfo{
			Page:        page,
			Limit:       limit,
			Total:       total,
			TotalPages:  totalPages,
			HasNext:     page < totalPages,
			HasPrevious: page > 1,
		},
	})
}

// GetProduct returns a single product by id
// @Summary Get product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ProductResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, ok := h.loader.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "NOT_FOUND",
				Message: "Product not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.ProductResponse{
		Success: true,
		Data:    &product,
	})
}

// GetCategories returns the distinct category list of the full catalog
// @Summary Get categories
// @Description Sorted set of distinct non-empty categories present in the catalog
// @Tags Products
// @Produce json
// @Success 200 {object} models.CategoryListResponse
// @Router /categories [get]
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.CategoryListResponse{
		Success: true,
		Data:    h.loader.Categories(),
	})
}

// ReloadCatalog re-runs the loader source chain
// @Summary Reload catalog
// @Description Re-fetch the catalog from its configured sources
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /catalog/reload [post]
func (h *CatalogHandler) ReloadCatalog(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	h.loader.Load(ctx)

	message := "Catalog reloaded"
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    gin.H{"productCount": h.loader.Len()},
		Message: &message,
	})
}
