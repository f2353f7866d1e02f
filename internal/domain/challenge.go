package domain

import "time"

// Challenge purposes. A challenge is only valid for the purpose it was issued
// with.
const (
	PurposeSignup = "signup"
	PurposeReview = "review"
)

func IsValidPurpose(purpose string) bool {
	return purpose == PurposeSignup || purpose == PurposeReview
}

// Challenge is a stored, single-use, time-boxed arithmetic question. The
// answer never leaves the server.
type Challenge struct {
	ID        int64
	Token     string
	Answer    string
	Purpose   string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IssuedChallenge is what the caller receives.
type IssuedChallenge struct {
	Token     string    `json:"token"`
	Question  string    `json:"question"`
	ExpiresAt time.Time `json:"expiresAt"`
}
