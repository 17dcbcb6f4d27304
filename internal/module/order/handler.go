package order

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prefabworks/server/internal/shared/middleware"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	service *Service
}

// NewHandler creates a new order handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers order routes that require authentication.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.GET("/:id/payment", h.GetPaymentSummary)
		orders.POST("/:id/cancel", h.CancelOrder)
		orders.POST("/:id/payment/full", h.ConfirmFullPayment)
		orders.POST("/:id/payment/stages/:stage", h.SubmitStagePayment)

		// Status changes are back-office operations.
		staff := orders.Group("")
		staff.Use(middleware.RequireRole(middleware.RoleAdmin, middleware.RolePersonnel))
		staff.POST("/:id/status", h.UpdateStatus)
	}
}

// CreateOrder places a new order.
//
//	@Summary		Place order
//	@Description	Place a new prefab construction order
//	@Tags			Order
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateOrderRequest	true	"Create order request"
//	@Success		201		{object}	map[string]interface{}
//	@Failure		400		{object}	map[string]string
//	@Router			/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order": OrderToResponse(order),
	})
}

// ListOrders returns orders matching the filter.
//
//	@Summary		List orders
//	@Description	List orders with optional status and customer filters
//	@Tags			Order
//	@Produce		json
//	@Security		BearerAuth
//	@Param			status		query		string	false	"Order status"
//	@Param			customer_id	query		string	false	"Customer ID"
//	@Param			page		query		int		false	"Page"
//	@Param			page_size	query		int		false	"Page size"
//	@Success		200			{object}	map[string]interface{}
//	@Router			/orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	var filter OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pagination := NewPagination()
	if err := c.ShouldBindQuery(pagination); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orders, total, err := h.service.ListOrders(c.Request.Context(), &filter, pagination)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, OrderToResponse(o))
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":    responses,
		"total":     total,
		"page":      pagination.Page,
		"page_size": pagination.PageSize,
	})
}

// GetOrder returns a single order.
//
//	@Summary		Get order
//	@Description	Get an order by ID
//	@Tags			Order
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Order ID"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		404	{object}	map[string]string
//	@Router			/orders/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": OrderToResponse(order),
	})
}

// GetPaymentSummary returns the ledger view of an order.
//
//	@Summary		Payment summary
//	@Description	Stage amounts, paid amount and remaining balance for an order
//	@Tags			Order
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Order ID"
//	@Success		200	{object}	PaymentSummaryResponse
//	@Failure		404	{object}	map[string]string
//	@Router			/orders/{id}/payment [get]
func (h *Handler) GetPaymentSummary(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	summary, err := h.service.PaymentSummary(c.Request.Context(), orderID)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// UpdateStatus moves an order to a new status.
//
//	@Summary		Update order status
//	@Description	Move an order to the next status in the pipeline
//	@Tags			Order
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"Order ID"
//	@Param			request	body		UpdateStatusRequest	true	"Target status"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/orders/{id}/status [post]
func (h *Handler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), orderID, req.Status, middleware.GetActorRole(c))
	if err != nil {
		handleOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": OrderToResponse(order),
	})
}

// CancelOrder cancels a pending order.
//
//	@Summary		Cancel order
//	@Description	Cancel an order while it is still pending
//	@Tags			Order
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Order ID"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		400	{object}	map[string]string
//	@Router			/orders/{id}/cancel [post]
func (h *Handler) CancelOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := h.service.Cancel(c.Request.Context(), orderID, middleware.GetActorRole(c))
	if err != nil {
		handleOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": OrderToResponse(order),
	})
}

// ConfirmFullPayment confirms the single payment of a full-method order.
//
//	@Summary		Confirm full payment
//	@Description	Confirm the full payment of an order paid all at once
//	@Tags			Payment
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Order ID"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		400	{object}	map[string]string
//	@Failure		409	{object}	map[string]string
//	@Router			/orders/{id}/payment/full [post]
func (h *Handler) ConfirmFullPayment(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := h.service.ConfirmFullPayment(c.Request.Context(), orderID)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": OrderToResponse(order),
	})
}

// SubmitStagePayment confirms an installment stage with receipt uploads.
//
//	@Summary		Submit stage payment
//	@Description	Confirm the next installment stage with receipt references
//	@Tags			Payment
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Order ID"
//	@Param			stage	path		string						true	"Installment stage"
//	@Param			request	body		SubmitStagePaymentRequest	true	"Receipt references"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/orders/{id}/payment/stages/{stage} [post]
func (h *Handler) SubmitStagePayment(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	stage := InstallmentStage(c.Param("stage"))
	if !stage.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid installment stage"})
		return
	}

	var req SubmitStagePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.SubmitStagePayment(c.Request.Context(), orderID, stage, req.Receipts)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": OrderToResponse(order),
	})
}

// handleOrderError maps module errors to HTTP responses.
func handleOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
	case errors.Is(err, ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_state_transition"})
	case errors.Is(err, ErrPaymentIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_incomplete"})
	case errors.Is(err, ErrWrongPaymentMethod):
		c.JSON(http.StatusBadRequest, gin.H{"error": "wrong_payment_method"})
	case errors.Is(err, ErrAlreadyPaid):
		c.JSON(http.StatusConflict, gin.H{"error": "already_paid"})
	case errors.Is(err, ErrStageOutOfOrder):
		c.JSON(http.StatusConflict, gin.H{"error": "stage_out_of_order"})
	case errors.Is(err, ErrMissingReceipt):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_receipt"})
	case errors.Is(err, ErrNotCancellable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_not_cancellable"})
	case errors.Is(err, ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict_retry"})
	case errors.Is(err, ErrEmptyOrder), errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidPayment),
		errors.Is(err, ErrUnknownStatus), errors.Is(err, ErrUnknownStage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
