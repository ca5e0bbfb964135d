package model

import "time"

// Franchise is a named business entity owning zero or more stores. Admin
// membership is stored as franchisee UserRole rows pointing at the franchise.
type Franchise struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Stores    []Store   `json:"stores" gorm:"foreignKey:FranchiseID"`
	Admins    []User    `json:"admins,omitempty" gorm:"-"` // resolved view, not a column
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Store is a physical location under a franchise.
type Store struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FranchiseID uint      `json:"franchiseId" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
