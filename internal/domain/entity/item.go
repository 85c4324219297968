package entity

import "strings"

// Category groups menu items. Deleting a category is blocked while any item
// still references it.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Normalize trims whitespace; a category with an empty name is invalid.
func (c *Category) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
}

// Item is a sellable menu entry. Inactive items are hidden from the sale
// listing but stay valid as historical references inside committed orders.
type Item struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	CategoryID string  `json:"categoryId"`
	Image      string  `json:"image"`
	IsActive   bool    `json:"isActive"`
}

// Normalize trims whitespace and clamps a negative price to zero.
func (i *Item) Normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Image = strings.TrimSpace(i.Image)
	if i.Price < 0 {
		i.Price = 0
	}
}
