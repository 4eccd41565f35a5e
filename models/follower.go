package models

import "time"

// Follower is the directed edge "FollowerLogin follows FollowedLogin"; the pair is unique.
type Follower struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FollowerLogin string    `gorm:"size:64;not null;uniqueIndex:unique_follow,priority:1" json:"follower_login"`
	FollowedLogin string    `gorm:"size:64;not null;uniqueIndex:unique_follow,priority:2;index" json:"followed_login"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	FollowerUser  User      `gorm:"foreignKey:FollowerLogin;references:Login;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	FollowedUser  User      `gorm:"foreignKey:FollowedLogin;references:Login;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
