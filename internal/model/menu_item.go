package model

import "github.com/shopspring/decimal"

// Nutrition holds optional per-serving facts.
type Nutrition struct {
	Calories    *float64 `json:"calories,omitempty"`
	ServingSize string   `json:"servingSize,omitempty"`
	Protein     *float64 `json:"protein,omitempty"`
	Carbs       *float64 `json:"carbs,omitempty"`
	Fat         *float64 `json:"fat,omitempty"`
	Fiber       *float64 `json:"fiber,omitempty"`
	Sugar       *float64 `json:"sugar,omitempty"`
}

// MenuItem is a dish owned by a restaurant.
type MenuItem struct {
	ID            string          `json:"_id"`
	Restaurant    RestaurantRef   `json:"restaurant"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"imageUrl"`
	Category      string          `json:"category,omitempty"`
	AverageRating float64         `json:"averageRating,omitempty"`
	Nutrition     *Nutrition      `json:"nutrition,omitempty"`
	Ingredients   []string        `json:"ingredients,omitempty"`
	Allergens     []string        `json:"allergens,omitempty"`
}

// FoodPlaceholderImage is shown for menu items without an image.
const FoodPlaceholderImage = "https://via.placeholder.com/300x200?text=Food+Item"

// Image returns the image URL or the placeholder.
func (m MenuItem) Image() string {
	if m.ImageURL == "" {
		return FoodPlaceholderImage
	}
	return m.ImageURL
}
