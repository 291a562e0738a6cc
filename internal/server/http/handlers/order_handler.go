package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/megano/internal/domain/errors"
	"github.com/polkiloo/megano/internal/domain/model"
	"github.com/polkiloo/megano/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req []dto.OrderLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentUserID(c), dto.Lines(req))
	if err != nil {
		if errors.Is(err, domainErrors.ErrEmptyOrder) {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.OrderCreatedResponse{OrderID: order.ID})
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	views, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.OrderResponse, 0, len(views))
	for _, view := range views {
		response = append(response, dto.NewOrderResponse(view))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/order/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	view, err := h.facade.Order(c.Request.Context(), id, CurrentUserID(c), CurrentSessionID(c))
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(*view))
}

// Accept handles POST /api/order/:id.
func (h *OrderHandler) Accept(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.OrderAcceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	details := model.AcceptanceDetails{
		DeliveryType: req.DeliveryType,
		PaymentType:  req.PaymentType,
		City:         req.City,
		Address:      req.Address,
		Lines:        dto.Lines(req.Products),
	}
	if err := h.facade.AcceptOrder(c.Request.Context(), id, CurrentUserID(c), details); err != nil {
		h.writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderCreatedResponse{OrderID: id})
}

// Pay handles POST /api/payment/:id.
func (h *OrderHandler) Pay(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment := model.Payment{
		OrderID: id,
		Name:    req.Name,
		Number:  req.Number,
		Year:    req.Year,
		Code:    req.Code,
	}
	if err := h.facade.PayOrder(c.Request.Context(), id, CurrentUserID(c), CurrentSessionID(c), payment); err != nil {
		h.writeOrderError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *OrderHandler) writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrForbidden):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, domainErrors.ErrEmptyOrder):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, domainErrors.ErrOrderFinalized):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrInsufficientStock):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.Status(http.StatusConflict)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
