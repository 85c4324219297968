package request

// CreateItemRequest represents an item creation request
type CreateItemRequest struct {
	Name       string  `json:"name" binding:"required,min=1,max=255"`
	Price      float64 `json:"price" binding:"min=0"`
	CategoryID string  `json:"categoryId" binding:"required"`
	Image      string  `json:"image"`
	IsActive   *bool   `json:"isActive"`
}

// UpdateItemRequest represents an item update request
type UpdateItemRequest struct {
	Name       *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Price      *float64 `json:"price" binding:"omitempty,min=0"`
	CategoryID *string  `json:"categoryId"`
	Image      *string  `json:"image"`
	IsActive   *bool    `json:"isActive"`
}

// CategoryRequest represents a category create or rename request
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}
