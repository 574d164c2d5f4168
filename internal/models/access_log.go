package models

import "time"

// AccessLog records user actions for auditing. Rows are append-only;
// FirstAccess is true iff this is the first logged action for the user,
// computed at write time.
type AccessLog struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Action      string    `gorm:"not null" json:"action"`
	AccessTime  time.Time `gorm:"not null" json:"access_time"`
	FirstAccess bool      `gorm:"default:false" json:"first_access"`
}
