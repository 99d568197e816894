package model

import "time"

// UserFollow links a follower to a followed user
type UserFollow struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FollowerUserID uint      `gorm:"not null;uniqueIndex:idx_user_follow_pair" json:"follower_user_id"`
	FollowedUserID uint      `gorm:"not null;uniqueIndex:idx_user_follow_pair" json:"followed_user_id"`
	CreatedAt      time.Time `json:"created_at"`

	Follower *User `gorm:"foreignKey:FollowerUserID;constraint:OnDelete:CASCADE" json:"-"`
	Followed *User `gorm:"foreignKey:FollowedUserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserFollow) TableName() string {
	return "user_follows"
}
