package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

type Review struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"businessId"`
	UserID     int64     `json:"-"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"reviewText"`
	UserName   string    `json:"userName,omitempty"`
	UserEmail  string    `json:"userEmail,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AdminReview is the moderation view joined with business and reviewer.
type AdminReview struct {
	ID            int64     `json:"id"`
	Rating        int       `json:"rating"`
	ReviewText    string    `json:"review_text"`
	BusinessName  string    `json:"business_name"`
	ReviewerName  string    `json:"reviewer_name"`
	ReviewerEmail string    `json:"reviewer_email"`
	CreatedAt     time.Time `json:"created_at"`
}

type SubmitReviewRequest struct {
	Rating          int    `json:"rating"`
	ReviewText      string `json:"reviewText"`
	ChallengeToken  string `json:"challengeToken"`
	ChallengeAnswer string `json:"challengeAnswer"`
}

func (r *SubmitReviewRequest) Normalize() {
	r.ReviewText = strings.TrimSpace(r.ReviewText)
}

func (r *SubmitReviewRequest) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return Invalid("rating must be between 1 and 5")
	}
	if utf8.RuneCountInString(r.ReviewText) < 10 {
		return Invalid("review must be at least 10 characters")
	}
	return nil
}
