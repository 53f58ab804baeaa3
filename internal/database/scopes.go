package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/team-task-api/internal/models"
)

// AccessibleProjects keeps projects the user manages or whose team they belong to.
func AccessibleProjects(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		memberTeams := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.TeamMember{}).
			Select("team_id").
			Where("user_id = ?", userID)

		return db.Where("projects.manager_id = ? OR projects.team_id IN (?)", userID, memberTeams)
	}
}

// AccessibleTasks keeps tasks in accessible projects plus tasks assigned to the user.
func AccessibleTasks(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		projects := AccessibleProjects(userID)(db.Session(&gorm.Session{NewDB: true}).
			Model(&models.Project{}).
			Select("projects.id"))

		return db.Where("tasks.assigned_to = ? OR tasks.project_id IN (?)", userID, projects)
	}
}

// VisibleTeams keeps teams the user manages or belongs to.
func VisibleTeams(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		memberTeams := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.TeamMember{}).
			Select("team_id").
			Where("user_id = ?", userID)

		return db.Where("teams.manager_id = ? OR teams.id IN (?)", userID, memberTeams)
	}
}
