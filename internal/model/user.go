package model

import "time"

// Role names. Scoped roles carry the franchise they apply to in
// UserRole.ObjectID; global roles leave it zero.
const (
	RoleAdmin      = "admin"
	RoleDiner      = "diner"
	RoleFranchisee = "franchisee"
)

// User represents an authenticated user in the system.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"size:255;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Roles        []UserRole `json:"roles" gorm:"foreignKey:UserID"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
}

// UserRole is a single granted role variant.
type UserRole struct {
	ID       uint   `json:"-" gorm:"primaryKey"`
	UserID   uint   `json:"-" gorm:"index;not null"`
	Role     string `json:"role" gorm:"size:50;not null"`
	ObjectID uint   `json:"objectId,omitempty"`
}

// IsAdmin reports whether the user holds the global admin role.
func (u *User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r.Role == RoleAdmin {
			return true
		}
	}
	return false
}
