package models

import "time"

// PasswordReset is an append-only audit row for reset token issuance.
// TokenHash holds the SHA-256 hex digest of the token; the raw token is
// only ever handed to the notifier.
type PasswordReset struct {
	Base
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	TokenHash  string     `gorm:"size:64;not null;index" json:"-"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
}
