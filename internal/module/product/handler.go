package product

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prefabworks/server/internal/shared/middleware"
)

// Handler handles HTTP requests for products.
type Handler struct {
	service *Service
}

// NewHandler creates a new product handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers product routes. Reads are open to any
// authenticated actor; writes are back-office operations.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	products := r.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.Get)

		staff := products.Group("")
		staff.Use(middleware.RequireRole(middleware.RoleAdmin))
		staff.POST("", h.Create)
		staff.PATCH("/:id", h.Update)
	}
}

// Create adds a product to the catalog.
//
//	@Summary		Create product
//	@Tags			Product
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateProductRequest	true	"Create product request"
//	@Success		201		{object}	map[string]interface{}
//	@Failure		400		{object}	map[string]string
//	@Router			/products [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handleProductError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": p})
}

// List returns products matching the filter.
//
//	@Summary		List products
//	@Tags			Product
//	@Produce		json
//	@Security		BearerAuth
//	@Param			category	query		string	false	"Category"
//	@Param			active		query		bool	false	"Only active products"
//	@Param			limit		query		int		false	"Page size"
//	@Param			offset		query		int		false	"Offset"
//	@Success		200			{object}	map[string]interface{}
//	@Router			/products [get]
func (h *Handler) List(c *gin.Context) {
	filter := ProductFilter{
		Category:   c.Query("category"),
		ActiveOnly: c.Query("active") == "true",
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, total, err := h.service.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		handleProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
	})
}

// Get returns a single product.
//
//	@Summary		Get product
//	@Tags			Product
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Product ID"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		404	{object}	map[string]string
//	@Router			/products/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": p})
}

// Update applies a partial update to a product.
//
//	@Summary		Update product
//	@Tags			Product
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Product ID"
//	@Param			request	body		UpdateProductRequest	true	"Update product request"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		404		{object}	map[string]string
//	@Router			/products/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": p})
}

func handleProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
	case errors.Is(err, ErrDuplicateModelNumber):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate_model_number"})
	case errors.Is(err, ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_price"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
