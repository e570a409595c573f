package model

// Restaurant is a venue listed by the backend.
type Restaurant struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Cuisine  Tags   `json:"cuisine"`
	ImageURL string `json:"imageUrl"`
}

// PlaceholderImage is shown for restaurants without an image.
const PlaceholderImage = "https://via.placeholder.com/300x200?text=Restaurant"

// Image returns the image URL or the placeholder.
func (r Restaurant) Image() string {
	if r.ImageURL == "" {
		return PlaceholderImage
	}
	return r.ImageURL
}
