package models

import "time"

// Like records that UserLogin liked PostID. The combination must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserLogin string    `gorm:"size:64;not null;uniqueIndex:unique_like,priority:1" json:"user_login"`
	PostID    uint      `gorm:"not null;uniqueIndex:unique_like,priority:2;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"foreignKey:UserLogin;references:Login;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Post      Post      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}
