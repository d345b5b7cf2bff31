package packages

import "time"

// Package is a promotion tier sold on the site (views delivered for a price).
type Package struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Views       int       `json:"views"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}
