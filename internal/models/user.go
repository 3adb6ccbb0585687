// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. PublicID is the identifier exposed to
// clients and used as the subject of auth tokens; the numeric ID never leaves
// the storage layer except as the "owner" field of post responses.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PublicID  string    `gorm:"size:36;uniqueIndex;not null" json:"public_id"`
	Username  string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Posts     []Post    `gorm:"foreignKey:UserID" json:"-"`
}
