package models

import "time"

type Project struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	TeamID    *uint64   `gorm:"index" json:"team_id"`
	ManagerID uint64    `gorm:"not null;index" json:"manager_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Team    *Team  `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Manager User   `gorm:"foreignKey:ManagerID;constraint:OnDelete:RESTRICT" json:"manager,omitempty"`
	Tasks   []Task `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}
