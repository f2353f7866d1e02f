package domain

import "time"

type Bookmark struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"businessId"`
	UserID     int64     `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ToggleResult struct {
	Saved bool `json:"saved"`
}
