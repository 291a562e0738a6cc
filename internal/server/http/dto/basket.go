package dto

// BasketItemRequest adds or removes product units for the session basket.
type BasketItemRequest struct {
	ID    int64 `json:"id" binding:"required"`
	Count int   `json:"count" binding:"required,min=1"`
}
