package domain

import (
	"strings"
	"time"
)

type Deal struct {
	ID                     int64      `json:"id"`
	BusinessID             int64      `json:"businessId"`
	BusinessName           string     `json:"businessName,omitempty"`
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	DiscountValue          string     `json:"discountValue"`
	StartDate              *time.Time `json:"startDate"`
	EndDate                time.Time  `json:"endDate"`
	Terms                  string     `json:"terms"`
	CouponCode             string     `json:"couponCode"`
	RedemptionInstructions string     `json:"redemptionInstructions"`
	Category               string     `json:"category"`
	ViewCount              int        `json:"viewCount"`
	CopyCount              int        `json:"copyCount"`
	CreatedAt              time.Time  `json:"createdAt"`
	Active                 bool       `json:"active"`
}

// ActiveAt reports whether t falls in the deal's validity window. Both bounds
// are inclusive; a deal without a start date is active up to its end date.
func (d *Deal) ActiveAt(t time.Time) bool {
	if d.StartDate != nil && t.Before(*d.StartDate) {
		return false
	}
	return !t.After(d.EndDate)
}

type DealInput struct {
	BusinessID             int64      `json:"businessId"`
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	DiscountValue          string     `json:"discountValue"`
	StartDate              *time.Time `json:"startDate"`
	EndDate                *time.Time `json:"endDate"`
	Terms                  string     `json:"terms"`
	CouponCode             string     `json:"couponCode"`
	RedemptionInstructions string     `json:"redemptionInstructions"`
	Category               string     `json:"category"`
}

func (in *DealInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.DiscountValue = strings.TrimSpace(in.DiscountValue)
}

func (in *DealInput) Validate() error {
	if in.BusinessID == 0 {
		return Invalid("businessId is required")
	}
	if in.Title == "" {
		return Invalid("title is required")
	}
	if in.Description == "" {
		return Invalid("description is required")
	}
	if in.DiscountValue == "" {
		return Invalid("discountValue is required")
	}
	if in.EndDate == nil {
		return Invalid("endDate is required")
	}
	if in.StartDate != nil && in.EndDate.Before(*in.StartDate) {
		return Invalid("endDate must not precede startDate")
	}
	if !IsValidCategory(in.Category) {
		return Invalid("unknown category")
	}
	return nil
}

// DealFilter narrows a deal listing.
type DealFilter struct {
	Category     string
	BusinessID   int64
	ExpiringSoon bool
}

// Interaction types recorded in the append-only deal_interactions log.
const (
	InteractionView = "view"
	InteractionCopy = "copy"
)
