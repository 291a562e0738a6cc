package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/megano/internal/domain/errors"
	"github.com/polkiloo/megano/internal/server/http/dto"
)

// BasketHandler serves the session basket endpoints.
type BasketHandler struct {
	facade BasketFacade
}

// NewBasketHandler constructs BasketHandler.
func NewBasketHandler(facade BasketFacade) *BasketHandler {
	return &BasketHandler{facade: facade}
}

// List handles GET /api/basket.
func (h *BasketHandler) List(c *gin.Context) {
	products, err := h.facade.Basket(c.Request.Context(), CurrentSessionID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponses(products))
}

// Add handles POST /api/basket.
func (h *BasketHandler) Add(c *gin.Context) {
	var req dto.BasketItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products, err := h.facade.AddToBasket(c.Request.Context(), CurrentSessionID(c), req.ID, req.Count)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponses(products))
}

// Remove handles DELETE /api/basket.
func (h *BasketHandler) Remove(c *gin.Context) {
	var req dto.BasketItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products, err := h.facade.RemoveFromBasket(c.Request.Context(), CurrentSessionID(c), req.ID, req.Count)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponses(products))
}
