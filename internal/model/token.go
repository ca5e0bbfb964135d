package model

import "time"

// AuthToken is the persisted backing record for a session token. A token is
// valid only while its row exists and Revoked is false, so logout works as a
// durable revocation across service instances. Rows are flagged, not deleted.
type AuthToken struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	TokenID   string    `json:"-" gorm:"uniqueIndex;size:36;not null"` // jti claim
	UserID    uint      `json:"-" gorm:"index;not null"`
	Revoked   bool      `json:"-" gorm:"index;not null;default:false"`
	IssuedAt  time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
