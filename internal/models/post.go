package models

import "time"

// Post is a blog entry. UserID is fixed at creation; only the owner may edit
// or delete the post.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"owner"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// OwnedBy reports whether the given user may mutate or delete this post.
// The IsAdmin flag on User grants no override here.
func (p *Post) OwnedBy(userID uint) bool {
	return p.UserID == userID
}
