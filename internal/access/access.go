// Package access holds the authorization predicates shared by project, task and comment handling.
// Every predicate works on preloaded models and never touches the database.
package access

import "github.com/yukikurage/team-task-api/internal/models"

// IsTeamManager reports whether userID manages team.
func IsTeamManager(userID uint64, team models.Team) bool {
	return team.ManagerID == userID
}

// IsTeamMember reports whether userID is in the team's member set.
// team.Members must be preloaded.
func IsTeamMember(userID uint64, team models.Team) bool {
	return team.HasMember(userID)
}

// CanViewTeam allows members, the manager and admins.
func CanViewTeam(user models.User, team models.Team) bool {
	return user.IsAdmin() || IsTeamManager(user.ID, team) || IsTeamMember(user.ID, team)
}

// IsProjectManager reports whether userID manages project.
func IsProjectManager(userID uint64, project models.Project) bool {
	return project.ManagerID == userID
}

// CanAccessProject allows the project manager and members of the project's team.
// A project without a team is only reachable by its manager.
// project.Team.Members must be preloaded.
func CanAccessProject(userID uint64, project models.Project) bool {
	if IsProjectManager(userID, project) {
		return true
	}
	if project.Team == nil {
		return false
	}
	return IsTeamMember(userID, *project.Team)
}

// CanAccessTask allows anyone with access to the parent project plus the assignee.
// task.Project.Team.Members must be preloaded.
func CanAccessTask(userID uint64, task models.Task) bool {
	return task.IsAssignedTo(userID) || CanAccessProject(userID, task.Project)
}
