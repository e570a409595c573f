package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Tags holds a cuisine list. The backend stores either a single string or an array.
type Tags []string

// UnmarshalJSON accepts "Indian", "Indian, Chinese" or ["Indian","Chinese"].
func (t *Tags) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = nil
		return nil
	}
	if b[0] == '[' {
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return fmt.Errorf("decode tags: %w", err)
		}
		*t = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decode tags: %w", err)
	}
	*t = ParseTags(s)
	return nil
}

// String joins the tags the way the admin form edits them.
func (t Tags) String() string {
	return strings.Join(t, ", ")
}

// ParseTags splits a comma separated cuisine string.
func ParseTags(s string) Tags {
	var out Tags
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// decodeRef decodes a reference that is either a bare id string or a populated
// object. For objects, target receives the document and the id is read from _id.
func decodeRef(b []byte, id *string, target any) (bool, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return false, nil
	}
	if b[0] == '"' {
		return false, json.Unmarshal(b, id)
	}
	var head struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return false, err
	}
	*id = head.ID
	return true, json.Unmarshal(b, target)
}

// RestaurantRef points at a restaurant, populated or not.
type RestaurantRef struct {
	ID         string
	Restaurant *Restaurant
}

// UnmarshalJSON accepts an id string or a restaurant document.
func (r *RestaurantRef) UnmarshalJSON(b []byte) error {
	var doc Restaurant
	populated, err := decodeRef(b, &r.ID, &doc)
	if err != nil {
		return fmt.Errorf("decode restaurant ref: %w", err)
	}
	if populated {
		r.Restaurant = &doc
	}
	return nil
}

// MarshalJSON writes the bare id.
func (r RestaurantRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// UserRef points at a user, populated or not.
type UserRef struct {
	ID   string
	User *User
}

// UnmarshalJSON accepts an id string or a user document.
func (r *UserRef) UnmarshalJSON(b []byte) error {
	var doc User
	populated, err := decodeRef(b, &r.ID, &doc)
	if err != nil {
		return fmt.Errorf("decode user ref: %w", err)
	}
	if populated {
		r.User = &doc
	}
	return nil
}

// MarshalJSON writes the bare id.
func (r UserRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// Name returns the populated user name, if any.
func (r UserRef) Name() string {
	if r.User == nil {
		return ""
	}
	return r.User.Name
}

// MenuItemRef points at a menu item, populated or not.
type MenuItemRef struct {
	ID       string
	MenuItem *MenuItem
}

// UnmarshalJSON accepts an id string or a menu item document.
func (r *MenuItemRef) UnmarshalJSON(b []byte) error {
	var doc MenuItem
	populated, err := decodeRef(b, &r.ID, &doc)
	if err != nil {
		return fmt.Errorf("decode menu item ref: %w", err)
	}
	if populated {
		r.MenuItem = &doc
	}
	return nil
}

// MarshalJSON writes the bare id.
func (r MenuItemRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}
