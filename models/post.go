package models

import "time"

// MaxMessageLength bounds post and reply messages.
const MaxMessageLength = 500

// Post is a message by UserLogin. A non-nil PostID makes it a reply to that post.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserLogin string    `gorm:"size:64;not null;index" json:"user_login"`
	PostID    *uint     `gorm:"index" json:"post_id"`
	Message   string    `gorm:"size:500;not null" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"foreignKey:UserLogin;references:Login;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Replies   []Post    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;" json:"-"`
}
