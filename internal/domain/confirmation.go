package domain

import "time"

// AccountConfirmation is a pending (or completed) email confirmation.
// Looked up by its (token, code) pair. ExpiresAt is a Unix timestamp also used
// as DynamoDB TTL. A confirmation is mutated exactly once: status flips to true
// and VerifiedAt is set. Expired records are deleted on the first attempt to
// use them.
type AccountConfirmation struct {
	ConfirmationID string     `json:"id" dynamodbav:"confirmation_id"`
	UserID         string     `json:"user_id" dynamodbav:"user_id"`
	Code           string     `json:"code" dynamodbav:"code"`
	Token          string     `json:"token" dynamodbav:"token"`
	Status         bool       `json:"status" dynamodbav:"status"`
	ExpiresAt      int64      `json:"expires_at" dynamodbav:"expires_at"`
	VerifiedAt     *time.Time `json:"verified_at,omitempty" dynamodbav:"verified_at"`
	CreatedAt      time.Time  `json:"created" dynamodbav:"created_at"`
}

// Expired reports whether the confirmation window has elapsed at the given time.
func (c *AccountConfirmation) Expired(now time.Time) bool {
	return c.ExpiresAt < now.Unix()
}
