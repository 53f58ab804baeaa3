package models

import "time"

type Team struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	ManagerID uint64    `gorm:"not null;index" json:"manager_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Manager  User         `gorm:"foreignKey:ManagerID;constraint:OnDelete:RESTRICT" json:"manager,omitempty"`
	Members  []TeamMember `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Projects []Project    `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
}

// HasMember reports whether userID is in the preloaded member set.
func (t Team) HasMember(userID uint64) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
