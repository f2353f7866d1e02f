package domain

import (
	"strings"
	"time"
)

// Categories is the closed set of business and deal categories.
var Categories = []string{
	"food",
	"retail",
	"services",
	"health",
	"auto",
	"beauty",
	"entertainment",
	"home",
	"other",
}

var categorySet = func() map[string]bool {
	m := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		m[c] = true
	}
	return m
}()

func IsValidCategory(category string) bool {
	return categorySet[category]
}

type Business struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	Zip           string    `json:"zip"`
	Phone         string    `json:"phone"`
	Website       string    `json:"website"`
	Hours         string    `json:"hours"`
	HoursJSON     HoursMap  `json:"hoursJson"`
	PriceLevel    string    `json:"priceLevel"`
	Tags          []string  `json:"tags"`
	Description   string    `json:"description"`
	VerifiedBadge bool      `json:"verifiedBadge"`
	ImageURL      string    `json:"imageUrl"`
	Gallery       []string  `json:"gallery"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	CreatedAt     time.Time `json:"createdAt"`

	// Derived on every read, never stored.
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
	OpenNow       *bool   `json:"openNow"`
}

type BusinessInput struct {
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Zip           string   `json:"zip"`
	Phone         string   `json:"phone"`
	Website       string   `json:"website"`
	Hours         string   `json:"hours"`
	HoursJSON     HoursMap `json:"hoursJson"`
	PriceLevel    string   `json:"priceLevel"`
	Tags          []string `json:"tags"`
	Description   string   `json:"description"`
	VerifiedBadge bool     `json:"verifiedBadge"`
	ImageURL      string   `json:"imageUrl"`
	Gallery       []string `json:"gallery"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

func (in *BusinessInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	if in.PriceLevel == "" {
		in.PriceLevel = "$$"
	}
}

func (in *BusinessInput) Validate() error {
	if in.Name == "" {
		return Invalid("name is required")
	}
	if in.City == "" {
		return Invalid("city is required")
	}
	if in.State == "" {
		return Invalid("state is required")
	}
	if !IsValidCategory(in.Category) {
		return Invalid("unknown category")
	}
	return nil
}

// BusinessFilter narrows a directory listing. An invalid Category is cleared
// by the service rather than rejected.
type BusinessFilter struct {
	Category string
	Search   string
	OpenNow  bool
}

type BusinessSort string

const (
	SortRating  BusinessSort = "rating"
	SortReviews BusinessSort = "reviews"
	SortNewest  BusinessSort = "newest"
)
