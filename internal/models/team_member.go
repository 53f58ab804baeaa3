package models

import "time"

// TeamMember is the join row between a team and a user.
// The composite primary key rejects duplicate memberships.
type TeamMember struct {
	TeamID   uint64    `gorm:"primarykey" json:"team_id"`
	UserID   uint64    `gorm:"primarykey;index" json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
