package models

import "time"

// Session is the only proof of authentication: whoever presents Token acts as UserLogin.
// Rows are never updated; logout and password changes delete them.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserLogin string    `gorm:"size:64;not null;index" json:"user_login"`
	Token     string    `gorm:"size:128;not null;uniqueIndex:idx_sessions_token" json:"token"`
	IP        string    `gorm:"size:45;not null" json:"ip"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"foreignKey:UserLogin;references:Login;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
