package dto

import (
	"time"

	"github.com/yukikurage/team-task-api/internal/models"
)

// TeamMemberDTO represents a member in a team
type TeamMemberDTO struct {
	User     UserDTO   `json:"user"`
	JoinedAt time.Time `json:"joined_at"`
}

// TeamDTO represents a team with its manager and members
type TeamDTO struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	ManagerID uint64          `json:"manager_id"`
	Manager   *UserDTO        `json:"manager,omitempty"`
	Members   []TeamMemberDTO `json:"members"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	members := make([]TeamMemberDTO, len(team.Members))
	for i, m := range team.Members {
		members[i] = TeamMemberDTO{
			User:     ToUserDTO(m.User),
			JoinedAt: m.JoinedAt,
		}
	}

	return TeamDTO{
		ID:        team.ID,
		Name:      team.Name,
		ManagerID: team.ManagerID,
		Manager:   optionalUser(&team.Manager),
		Members:   members,
		CreatedAt: team.CreatedAt,
	}
}

// ToTeamDTOs converts a slice of teams
func ToTeamDTOs(teams []models.Team) []TeamDTO {
	out := make([]TeamDTO, len(teams))
	for i, t := range teams {
		out[i] = ToTeamDTO(t)
	}
	return out
}
