package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/testutil"
)

func TestTeamService_CreateAddsCreatorAsMember(t *testing.T) {
	env := setupServiceEnv(t)
	ctx := context.Background()
	creator := testutil.CreateUser(t, env.db, "a@example.com")

	team, err := env.teams.Create(ctx, CreateTeamInput{Name: "Eng", ManagerID: creator.ID})
	require.NoError(t, err)
	assert.Equal(t, creator.ID, team.ManagerID)
	require.Len(t, team.Members, 1)
	assert.Equal(t, creator.ID, team.Members[0].UserID)

	_, err = env.teams.Create(ctx, CreateTeamInput{Name: "  ", ManagerID: creator.ID})
	require.ErrorIs(t, err, ErrInvalidTeamName)
}

func TestTeamService_AddMember(t *testing.T) {
	env := setupServiceEnv(t)
	ctx := context.Background()
	manager := testutil.CreateUser(t, env.db, "m@example.com")
	other := testutil.CreateUser(t, env.db, "o@example.com")
	intruder := testutil.CreateUser(t, env.db, "i@example.com")

	team, err := env.teams.Create(ctx, CreateTeamInput{Name: "Eng", ManagerID: manager.ID})
	require.NoError(t, err)

	_, err = env.teams.AddMember(ctx, intruder.ID, team.ID, intruder.ID)
	require.ErrorIs(t, err, ErrNotTeamManager)

	_, err = env.teams.AddMember(ctx, manager.ID, team.ID, 9999)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.teams.AddMember(ctx, manager.ID, 9999, other.ID)
	require.ErrorIs(t, err, ErrTeamNotFound)

	updated, err := env.teams.AddMember(ctx, manager.ID, team.ID, other.ID)
	require.NoError(t, err)
	require.Len(t, updated.Members, 2)

	_, err = env.teams.AddMember(ctx, manager.ID, team.ID, other.ID)
	require.ErrorIs(t, err, ErrAlreadyTeamMember)

	var count int64
	env.db.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestTeamService_RemoveMember(t *testing.T) {
	env := setupServiceEnv(t)
	ctx := context.Background()
	manager := testutil.CreateUser(t, env.db, "m@example.com")
	member := testutil.CreateUser(t, env.db, "x@example.com")
	team := testutil.CreateTeam(t, env.db, "Eng", manager.ID, manager.ID, member.ID)

	_, err := env.teams.RemoveMember(ctx, member.ID, team.ID, manager.ID)
	require.ErrorIs(t, err, ErrNotTeamManager)

	updated, err := env.teams.RemoveMember(ctx, manager.ID, team.ID, member.ID)
	require.NoError(t, err)
	assert.False(t, updated.HasMember(member.ID))

	_, err = env.teams.RemoveMember(ctx, manager.ID, team.ID, member.ID)
	require.ErrorIs(t, err, ErrTeamMemberNotFound)
}

func TestTeamService_GetAndList(t *testing.T) {
	env := setupServiceEnv(t)
	ctx := context.Background()
	manager := testutil.CreateUser(t, env.db, "m@example.com")
	outsider := testutil.CreateUser(t, env.db, "o@example.com")
	admin := testutil.CreateUser(t, env.db, "admin@example.com")
	admin.Role = models.RoleAdmin

	team := testutil.CreateTeam(t, env.db, "Eng", manager.ID, manager.ID)

	_, err := env.teams.Get(ctx, *manager, team.ID)
	require.NoError(t, err)
	_, err = env.teams.Get(ctx, *outsider, team.ID)
	require.ErrorIs(t, err, ErrTeamNotFound)
	_, err = env.teams.Get(ctx, *admin, team.ID)
	require.NoError(t, err)

	teams, err := env.teams.List(ctx, outsider.ID)
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestTeamService_Delete(t *testing.T) {
	env := setupServiceEnv(t)
	ctx := context.Background()
	manager := testutil.CreateUser(t, env.db, "m@example.com")
	member := testutil.CreateUser(t, env.db, "x@example.com")
	outsider := testutil.CreateUser(t, env.db, "o@example.com")
	team := testutil.CreateTeam(t, env.db, "Eng", manager.ID, manager.ID, member.ID)
	testutil.CreateProject(t, env.db, "X", &team.ID, manager.ID)

	require.ErrorIs(t, env.teams.Delete(ctx, *member, team.ID), ErrNotTeamManager)
	require.ErrorIs(t, env.teams.Delete(ctx, *outsider, team.ID), ErrTeamNotFound)
	require.NoError(t, env.teams.Delete(ctx, *manager, team.ID))

	var count int64
	env.db.Model(&models.Project{}).Count(&count)
	assert.Zero(t, count)
}
