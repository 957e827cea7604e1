package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// CreateDesign handles POST /api/orders/design.
func (h *OrderHandler) CreateDesign(c *gin.Context) {
	var req dto.DesignOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	order, err := h.facade.CreateTShirtOrder(c.Request.Context(), req.Request())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdOrder(order))
}

// CreateCopies handles POST /api/orders/copies.
func (h *OrderHandler) CreateCopies(c *gin.Context) {
	var req dto.CopiesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	order, err := h.facade.CreateColorCopiesOrder(c.Request.Context(), req.Request())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdOrder(order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	page, ok := queryPage(c)
	if !ok {
		return
	}
	var filter model.OrderFilter
	if s := c.Query("status"); s != "" {
		status := model.OrderStatus(s)
		filter.Status = &status
	}
	if t := c.Query("type"); t != "" {
		kind := model.ProductType(t)
		filter.Type = &kind
	}

	orders, page, err := h.facade.Orders(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.OrderListResponse{
		Success: true,
		Orders:  make([]dto.OrderResponse, 0, len(orders)),
		HasMore: len(orders) == page.Limit,
	}
	for _, o := range orders {
		response.Orders = append(response.Orders, dto.NewOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderEnvelope{Success: true, Order: dto.NewOrderResponse(*order)})
}

// ConfirmPayment handles POST /api/orders/:id/payment.
func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	order, err := h.facade.ConfirmPayment(c.Request.Context(), id, model.PaymentConfirmation{
		PaymentID:     req.PaymentID,
		Status:        model.PaymentStatus(req.Status),
		Method:        req.PaymentMethod,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderEnvelope{Success: true, Order: dto.NewOrderResponse(*order)})
}

// UpdateStatus handles PATCH /api/orders/:id.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		badRequest(c, "Status is required")
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), id, model.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderEnvelope{Success: true, Order: dto.NewOrderResponse(*order)})
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.facade.DeleteOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Success: true, Message: "Order deleted"})
}

func createdOrder(order *model.Order) dto.CreateOrderResponse {
	return dto.CreateOrderResponse{
		Success:         true,
		OrderID:         order.ID.String(),
		TotalPrice:      dto.Money(order.Pricing.TotalPrice),
		BasePrice:       dto.Money(order.Pricing.BasePrice),
		TurnaroundPrice: dto.Money(order.Pricing.TurnaroundPrice),
	}
}
