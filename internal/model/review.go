package model

import "time"

// ReviewTarget says what a review is about.
type ReviewTarget string

const (
	ReviewTargetRestaurant ReviewTarget = "restaurant"
	ReviewTargetMenuItem   ReviewTarget = "menuItem"
)

// Review is a rating left by a user on a restaurant or a menu item.
type Review struct {
	ID         string    `json:"_id"`
	User       UserRef   `json:"user"`
	Restaurant string    `json:"restaurant,omitempty"`
	MenuItem   string    `json:"menuItem,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}
