package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/team-task-api/internal/auth"
	"github.com/yukikurage/team-task-api/internal/dto"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
	"github.com/yukikurage/team-task-api/internal/services"
	"github.com/yukikurage/team-task-api/internal/testutil"
)

// HandlerTestSuite exercises the handlers against an in-memory database
type HandlerTestSuite struct {
	suite.Suite
	db *gorm.DB

	authService *services.AuthService

	auth          *AuthHandler
	users         *UserHandler
	teams         *TeamHandler
	projects      *ProjectHandler
	tasks         *TaskHandler
	notifications *NotificationHandler
	reports       *ReportHandler
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// SetupTest runs before each test
func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.db = testutil.NewDB(suite.T())
	log := zap.NewNop()

	userRepo := repository.NewUserRepository(suite.db)
	teamRepo := repository.NewTeamRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)

	suite.authService = services.NewAuthService(userRepo, auth.NewTokenService("test-secret", time.Hour), auth.NewMemoryRevocationStore())
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo, teamRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo)
	notificationService := services.NewNotificationService(repository.NewNotificationRepository(suite.db), nil, log)

	suite.auth = NewAuthHandler(suite.authService, log)
	suite.users = NewUserHandler(userService, log)
	suite.teams = NewTeamHandler(services.NewTeamService(teamRepo, userRepo), log)
	suite.projects = NewProjectHandler(projectService, log)
	suite.tasks = NewTaskHandler(taskService, services.NewCommentService(repository.NewCommentRepository(suite.db), notificationService, log), log)
	suite.notifications = NewNotificationHandler(notificationService, log)
	suite.reports = NewReportHandler(services.NewReportService(repository.NewReportRepository(suite.db), projectService, userService), log)
}

// Helper function to create authenticated context
func (suite *HandlerTestSuite) createAuthContext(method, url string, body interface{}, user *models.User, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	if user != nil {
		c.Set("user_id", user.ID)
		c.Set("user", *user)
	}
	return c, w
}

// Helper function to set task context (simulates RequireTaskAccess middleware)
func (suite *HandlerTestSuite) setTaskContext(c *gin.Context, taskID uint64) {
	task, err := repository.NewTaskRepository(suite.db).FindByID(c.Request.Context(), taskID)
	suite.Require().NoError(err)
	suite.Require().True(task.Project.ID != 0)
	c.Set("task", *task)
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (suite *HandlerTestSuite) errorCode(w *httptest.ResponseRecorder) string {
	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	return apiErr.Code
}

func param(key string, value interface{}) gin.Param {
	raw, _ := json.Marshal(value)
	return gin.Param{Key: key, Value: strings.Trim(string(raw), `"`)}
}

// fixture is a team "Eng" managed by A with member B, and a project under it
type fixture struct {
	manager, member, outsider *models.User
	team                      *models.Team
	project                   *models.Project
}

func (suite *HandlerTestSuite) createFixture() fixture {
	t := suite.T()
	a := testutil.CreateUser(t, suite.db, "a@example.com")
	b := testutil.CreateUser(t, suite.db, "b@example.com")
	x := testutil.CreateUser(t, suite.db, "x@example.com")
	team := testutil.CreateTeam(t, suite.db, "Eng", a.ID, a.ID, b.ID)
	project := testutil.CreateProject(t, suite.db, "X", &team.ID, a.ID)
	return fixture{manager: a, member: b, outsider: x, team: team, project: project}
}

// Auth

func (suite *HandlerTestSuite) TestRegister_Success() {
	c, w := suite.createAuthContext(http.MethodPost, "/auth/register", gin.H{
		"email": "New@Example.com", "full_name": "New User", "password": "password123",
	}, nil)
	suite.auth.Register(c)

	suite.Equal(http.StatusCreated, w.Code)
	var user dto.UserDTO
	suite.decode(w, &user)
	suite.Equal("new@example.com", user.Email)
	suite.Equal(models.RoleUser, user.Role)
	suite.True(user.IsActive)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *HandlerTestSuite) TestRegister_Errors() {
	testutil.CreateUser(suite.T(), suite.db, "taken@example.com")

	cases := []struct {
		body gin.H
		code int
		err  string
	}{
		{gin.H{"email": "taken@example.com", "password": "password123"}, http.StatusConflict, apierrors.ErrCodeDuplicateEmail},
		{gin.H{"email": "short@example.com", "password": "short"}, http.StatusBadRequest, apierrors.ErrCodeInvalidInput},
		{gin.H{"email": "not-an-email", "password": "password123"}, http.StatusBadRequest, apierrors.ErrCodeInvalidInput},
		{gin.H{"email": "long@example.com", "password": strings.Repeat("a", 73)}, http.StatusBadRequest, apierrors.ErrCodeInvalidInput},
		{gin.H{"password": "password123"}, http.StatusBadRequest, apierrors.ErrCodeInvalidInput},
	}
	for _, tc := range cases {
		c, w := suite.createAuthContext(http.MethodPost, "/auth/register", tc.body, nil)
		suite.auth.Register(c)
		suite.Equal(tc.code, w.Code, tc.body)
		suite.Equal(tc.err, suite.errorCode(w), tc.body)
	}
}

func (suite *HandlerTestSuite) TestRespondServiceError_PasswordTooLong() {
	c, w := suite.createAuthContext(http.MethodPost, "/auth/register", nil, nil)
	respondServiceError(c, zap.NewNop(), fmt.Errorf("register: %w", services.ErrPasswordTooLong))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(apierrors.ErrCodeInvalidInput, suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestLogin_FormAndJSON() {
	testutil.CreateUser(suite.T(), suite.db, "a@example.com")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("username=a%40example.com&password=password123"))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	suite.auth.Login(c)

	suite.Equal(http.StatusOK, w.Code)
	var token dto.TokenDTO
	suite.decode(w, &token)
	suite.NotEmpty(token.AccessToken)
	suite.Equal("bearer", token.TokenType)

	c, w = suite.createAuthContext(http.MethodPost, "/auth/login", gin.H{"username": "a@example.com", "password": "password123"}, nil)
	suite.auth.Login(c)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestLogin_Failures() {
	user := testutil.CreateUser(suite.T(), suite.db, "a@example.com")

	c, w := suite.createAuthContext(http.MethodPost, "/auth/login", gin.H{"username": "a@example.com", "password": "wrong-password"}, nil)
	suite.auth.Login(c)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(apierrors.ErrCodeInvalidCredentials, suite.errorCode(w))

	c, w = suite.createAuthContext(http.MethodPost, "/auth/login", gin.H{"username": "nobody@example.com", "password": "password123"}, nil)
	suite.auth.Login(c)
	suite.Equal(http.StatusUnauthorized, w.Code)

	suite.Require().NoError(suite.db.Model(user).Update("is_active", false).Error)
	c, w = suite.createAuthContext(http.MethodPost, "/auth/login", gin.H{"username": "a@example.com", "password": "password123"}, nil)
	suite.auth.Login(c)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal(apierrors.ErrCodeInactiveAccount, suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestMe_Unauthorized() {
	c, w := suite.createAuthContext(http.MethodGet, "/auth/me", nil, nil)
	suite.auth.Me(c)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

// Teams

func (suite *HandlerTestSuite) TestCreateTeam_Success() {
	user := testutil.CreateUser(suite.T(), suite.db, "a@example.com")

	c, w := suite.createAuthContext(http.MethodPost, "/teams/", gin.H{"name": "Eng"}, user)
	suite.teams.CreateTeam(c)

	suite.Equal(http.StatusCreated, w.Code)
	var team dto.TeamDTO
	suite.decode(w, &team)
	suite.Equal("Eng", team.Name)
	suite.Equal(user.ID, team.ManagerID)
	suite.Require().Len(team.Members, 1)
	suite.Equal(user.ID, team.Members[0].User.ID)
}

func (suite *HandlerTestSuite) TestCreateTeam_InvalidBody() {
	user := testutil.CreateUser(suite.T(), suite.db, "a@example.com")

	c, w := suite.createAuthContext(http.MethodPost, "/teams/", gin.H{"name": "   "}, user)
	suite.teams.CreateTeam(c)
	suite.Equal(http.StatusBadRequest, w.Code)

	c, w = suite.createAuthContext(http.MethodPost, "/teams/", gin.H{}, user)
	suite.teams.CreateTeam(c)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetTeam_Visibility() {
	f := suite.createFixture()

	c, w := suite.createAuthContext(http.MethodGet, "/teams/1", nil, f.member, param("id", f.team.ID))
	suite.teams.GetTeam(c)
	suite.Equal(http.StatusOK, w.Code)

	c, w = suite.createAuthContext(http.MethodGet, "/teams/1", nil, f.outsider, param("id", f.team.ID))
	suite.teams.GetTeam(c)
	suite.Equal(http.StatusNotFound, w.Code)

	c, w = suite.createAuthContext(http.MethodGet, "/teams/abc", nil, f.member, gin.Param{Key: "id", Value: "abc"})
	suite.teams.GetTeam(c)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestAddMember_BothRoutes() {
	f := suite.createFixture()

	c, w := suite.createAuthContext(http.MethodPost, "/teams/1/members", gin.H{"user_id": f.outsider.ID}, f.manager, param("id", f.team.ID))
	suite.teams.AddMember(c)
	suite.Equal(http.StatusOK, w.Code)
	var team dto.TeamDTO
	suite.decode(w, &team)
	suite.Len(team.Members, 3)

	c, w = suite.createAuthContext(http.MethodPost, "/teams/1/members/3", nil, f.manager, param("id", f.team.ID), param("user_id", f.outsider.ID))
	suite.teams.AddMemberByPath(c)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(apierrors.ErrCodeDuplicateMembership, suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestAddMember_NotManager() {
	f := suite.createFixture()

	c, w := suite.createAuthContext(http.MethodPost, "/teams/1/members/3", nil, f.member, param("id", f.team.ID), param("user_id", f.outsider.ID))
	suite.teams.AddMemberByPath(c)
	suite.Equal(http.StatusForbidden, w.Code)

	c, w = suite.createAuthContext(http.MethodPost, "/teams/1/members/99", nil, f.manager, param("id", f.team.ID), param("user_id", 99))
	suite.teams.AddMemberByPath(c)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestRemoveMember() {
	f := suite.createFixture()

	c, w := suite.createAuthContext(http.MethodDelete, "/teams/1/members/3", nil, f.manager, param("id", f.team.ID), param("user_id", f.outsider.ID))
	suite.teams.RemoveMember(c)
	suite.Equal(http.StatusNotFound, w.Code)

	c, w = suite.createAuthContext(http.MethodDelete, "/teams/1/members/2", nil, f.manager, param("id", f.team.ID), param("user_id", f.member.ID))
	suite.teams.RemoveMember(c)
	suite.Equal(http.StatusOK, w.Code)
	var team dto.TeamDTO
	suite.decode(w, &team)
	suite.Len(team.Members, 1)
}

func (suite *HandlerTestSuite) TestDeleteTeam() {
	f := suite.createFixture()

	c, w := suite.createAuthContext(http.MethodDelete, "/teams/1", nil, f.member, param("id", f.team.ID))
	suite.teams.DeleteTeam(c)
	suite.Equal(http.StatusForbidden, w.Code)

	c, w = suite.createAuthContext(http.MethodDelete, "/teams/1", nil, f.manager, param("id", f.team.ID))
	suite.teams.DeleteTeam(c)
	suite.Equal(http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Project{}).Count(&count)
	suite.Zero(count)
}

// Projects

func (suite *HandlerTestSuite) TestCreateProject() {
	f := suite.createFixture()

	c, w := suite.createAuthContext(http.MethodPost, "/projects/", gin.H{"name": "Y", "team_id": f.team.ID}, f.member)
	suite.projects.CreateProject(c)
	suite.Equal(http.StatusCreated, w.Code)
	var project dto.ProjectDTO
	suite.decode(w, &project)
	suite.Equal(f.member.ID, project.ManagerID)
	suite.Require().NotNil(project.TeamID)
	suite.Equal(f.team.ID, *project.TeamID)

	c, w = suite.createAuthContext(http.MethodPost, "/projects/", gin.H{"name": "Z", "team_id": f.team.ID}, f.outsider)
	suite.projects.CreateProject(c)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestGetProject_Access() {
	f := suite.createFixture()

	c, w := suite.createAuthContext(http.MethodGet, "/projects/1", nil, f.member, param("id", f.project.ID))
	suite.projects.GetProject(c)
	suite.Equal(http.StatusOK, w.Code)

	c, w = suite.createAuthContext(http.MethodGet, "/projects/1", nil, f.outsider, param("id", f.project.ID))
	suite.projects.GetProject(c)
	suite.Equal(http.StatusNotFound, w.Code)

	c, w = suite.createAuthContext(http.MethodGet, "/projects/", nil, f.outsider)
	suite.projects.ListProjects(c)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq("[]", w.Body.String())
}

func (suite *HandlerTestSuite) TestAssignProjectMember() {
	f := suite.createFixture()

	c, w := suite.createAuthContext(http.MethodPost, "/projects/1/assign/3", nil, f.member, param("id", f.project.ID), param("user_id", f.outsider.ID))
	suite.projects.AssignMember(c)
	suite.Equal(http.StatusForbidden, w.Code)

	c, w = suite.createAuthContext(http.MethodPost, "/projects/1/assign/3", nil, f.manager, param("id", f.project.ID), param("user_id", f.outsider.ID))
	suite.projects.AssignMember(c)
	suite.Equal(http.StatusOK, w.Code)

	c, w = suite.createAuthContext(http.MethodGet, "/projects/1", nil, f.outsider, param("id", f.project.ID))
	suite.projects.GetProject(c)
	suite.Equal(http.StatusOK, w.Code)

	solo := testutil.CreateProject(suite.T(), suite.db, "Solo", nil, f.manager.ID)
	c, w = suite.createAuthContext(http.MethodPost, "/projects/2/assign/2", nil, f.manager, param("id", solo.ID), param("user_id", f.member.ID))
	suite.projects.AssignMember(c)
	suite.Equal(http.StatusConflict, w.Code)
}

// Tasks

func (suite *HandlerTestSuite) TestCreateTask_Success() {
	f := suite.createFixture()

	c, w := suite.createAuthContext(http.MethodPost, "/projects/tasks/", gin.H{
		"title":       "Fix bug",
		"project_id":  f.project.ID,
		"assigned_to": f.member.ID,
		"due_date":    "2024-05-01T12:30:00",
	}, f.manager)
	suite.tasks.CreateTask(c)

	suite.Equal(http.StatusCreated, w.Code)
	var task dto.TaskDTO
	suite.decode(w, &task)
	suite.Equal("Fix bug", task.Title)
	suite.Equal(models.TaskStatusTodo, task.Status)
	suite.Equal(models.TaskPriorityMedium, task.Priority)
	suite.Require().NotNil(task.AssignedTo)
	suite.Equal(f.member.ID, *task.AssignedTo)
	suite.Require().NotNil(task.DueDate)
	suite.True(time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC).Equal(*task.DueDate))
}

func (suite *HandlerTestSuite) TestCreateTask_Errors() {
	f := suite.createFixture()

	cases := []struct {
		user *models.User
		body gin.H
		code int
	}{
		{f.outsider, gin.H{"title": "T", "project_id": f.project.ID}, http.StatusForbidden},
		{f.manager, gin.H{"title": "T", "project_id": 999}, http.StatusNotFound},
		{f.manager, gin.H{"title": "T", "project_id": f.project.ID, "assigned_to": 999}, http.StatusNotFound},
		{f.manager, gin.H{"title": "T", "project_id": f.project.ID, "priority": "URGENT"}, http.StatusBadRequest},
		{f.manager, gin.H{"title": "T", "project_id": f.project.ID, "due_date": "soon"}, http.StatusBadRequest},
		{f.manager, gin.H{"project_id": f.project.ID}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		c, w := suite.createAuthContext(http.MethodPost, "/projects/tasks/", tc.body, tc.user)
		suite.tasks.CreateTask(c)
		suite.Equal(tc.code, w.Code, tc.body)
	}
}

func (suite *HandlerTestSuite) TestListTasks_OnlyAccessible() {
	f := suite.createFixture()
	testutil.CreateTask(suite.T(), suite.db, "Fix bug", f.project.ID, &f.member.ID)

	c, w := suite.createAuthContext(http.MethodGet, "/projects/tasks/", nil, f.member)
	suite.tasks.ListTasks(c)
	suite.Equal(http.StatusOK, w.Code)
	var tasks []dto.TaskDTO
	suite.decode(w, &tasks)
	suite.Len(tasks, 1)

	c, w = suite.createAuthContext(http.MethodGet, "/projects/tasks/", nil, f.outsider)
	suite.tasks.ListTasks(c)
	suite.JSONEq("[]", w.Body.String())
}

func (suite *HandlerTestSuite) TestUpdateTask_NullFieldsUntouched() {
	f := suite.createFixture()
	created := testutil.CreateTask(suite.T(), suite.db, "Fix bug", f.project.ID, &f.member.ID)

	c, w := suite.createAuthContext(http.MethodPut, "/projects/tasks/1", gin.H{"title": nil, "priority": "HIGH"}, f.manager)
	suite.setTaskContext(c, created.ID)
	suite.tasks.UpdateTask(c)

	suite.Equal(http.StatusOK, w.Code)
	var task dto.TaskDTO
	suite.decode(w, &task)
	suite.Equal("Fix bug", task.Title)
	suite.Equal(models.TaskPriorityHigh, task.Priority)
	suite.Require().NotNil(task.AssignedTo)
	suite.Equal(f.member.ID, *task.AssignedTo)
}

func (suite *HandlerTestSuite) TestUpdateStatus_QueryAndBody() {
	f := suite.createFixture()
	created := testutil.CreateTask(suite.T(), suite.db, "Fix bug", f.project.ID, nil)

	c, w := suite.createAuthContext(http.MethodPatch, "/projects/tasks/1/status?status=DONE", nil, f.member)
	suite.setTaskContext(c, created.ID)
	suite.tasks.UpdateStatus(c)
	suite.Equal(http.StatusOK, w.Code)
	var task dto.TaskDTO
	suite.decode(w, &task)
	suite.Equal(models.TaskStatusDone, task.Status)

	c, w = suite.createAuthContext(http.MethodPatch, "/projects/tasks/1/status", gin.H{"status": "TODO"}, f.member)
	suite.setTaskContext(c, created.ID)
	suite.tasks.UpdateStatus(c)
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &task)
	suite.Equal(models.TaskStatusTodo, task.Status)

	c, w = suite.createAuthContext(http.MethodPatch, "/projects/tasks/1/status?status=BLOCKED", nil, f.member)
	suite.setTaskContext(c, created.ID)
	suite.tasks.UpdateStatus(c)
	suite.Equal(http.StatusBadRequest, w.Code)

	c, w = suite.createAuthContext(http.MethodPatch, "/projects/tasks/1/status", nil, f.member)
	suite.setTaskContext(c, created.ID)
	suite.tasks.UpdateStatus(c)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestAssignTask() {
	f := suite.createFixture()
	created := testutil.CreateTask(suite.T(), suite.db, "Fix bug", f.project.ID, nil)

	c, w := suite.createAuthContext(http.MethodPost, "/projects/tasks/1/assign/2", nil, f.manager, param("user_id", f.member.ID))
	suite.setTaskContext(c, created.ID)
	suite.tasks.AssignTask(c)
	suite.Equal(http.StatusOK, w.Code)

	c, w = suite.createAuthContext(http.MethodPost, "/projects/tasks/1/assign/99", nil, f.manager, param("user_id", 99))
	suite.setTaskContext(c, created.ID)
	suite.tasks.AssignTask(c)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetTask_MissingContext() {
	f := suite.createFixture()

	c, w := suite.createAuthContext(http.MethodGet, "/projects/tasks/1", nil, f.manager)
	suite.tasks.GetTask(c)
	suite.Equal(http.StatusInternalServerError, w.Code)
}

// Comments and notifications

func (suite *HandlerTestSuite) TestCreateComment_NotifiesAssignee() {
	f := suite.createFixture()
	created := testutil.CreateTask(suite.T(), suite.db, "Fix bug", f.project.ID, &f.member.ID)

	c, w := suite.createAuthContext(http.MethodPost, "/projects/tasks/1/comments", gin.H{"text": "Looks good"}, f.manager)
	suite.setTaskContext(c, created.ID)
	suite.tasks.CreateComment(c)
	suite.Equal(http.StatusCreated, w.Code)
	var comment dto.CommentDTO
	suite.decode(w, &comment)
	suite.Equal("Looks good", comment.Text)
	suite.Require().NotNil(comment.User)
	suite.Equal(f.manager.ID, comment.User.ID)

	c, w = suite.createAuthContext(http.MethodGet, "/notifications/?unread=true", nil, f.member)
	suite.notifications.ListNotifications(c)
	suite.Equal(http.StatusOK, w.Code)
	var notifications []dto.NotificationDTO
	suite.decode(w, &notifications)
	suite.Require().Len(notifications, 1)
	suite.Equal("New comment on task: Fix bug", notifications[0].Message)
	suite.False(notifications[0].IsRead)

	c, w = suite.createAuthContext(http.MethodGet, "/projects/tasks/1/comments", nil, f.member)
	suite.setTaskContext(c, created.ID)
	suite.tasks.ListComments(c)
	suite.Equal(http.StatusOK, w.Code)
	var comments []dto.CommentDTO
	suite.decode(w, &comments)
	suite.Len(comments, 1)
}

func (suite *HandlerTestSuite) TestCreateComment_Empty() {
	f := suite.createFixture()
	created := testutil.CreateTask(suite.T(), suite.db, "Fix bug", f.project.ID, nil)

	c, w := suite.createAuthContext(http.MethodPost, "/projects/tasks/1/comments", gin.H{"text": "   "}, f.manager)
	suite.setTaskContext(c, created.ID)
	suite.tasks.CreateComment(c)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestMarkRead() {
	f := suite.createFixture()
	notification := &models.Notification{UserID: f.member.ID, Message: "hello"}
	suite.Require().NoError(suite.db.Create(notification).Error)

	c, w := suite.createAuthContext(http.MethodPost, "/notifications/1/read", nil, f.manager, param("id", notification.ID))
	suite.notifications.MarkRead(c)
	suite.Equal(http.StatusNotFound, w.Code)

	c, w = suite.createAuthContext(http.MethodPost, "/notifications/mark-read?notification_id=1", nil, f.member)
	suite.notifications.MarkReadByQuery(c)
	suite.Equal(http.StatusOK, w.Code)

	c, w = suite.createAuthContext(http.MethodGet, "/notifications/?unread=true", nil, f.member)
	suite.notifications.ListNotifications(c)
	suite.JSONEq("[]", w.Body.String())

	c, w = suite.createAuthContext(http.MethodGet, "/notifications/?unread=maybe", nil, f.member)
	suite.notifications.ListNotifications(c)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// Reports

func (suite *HandlerTestSuite) TestReports() {
	f := suite.createFixture()
	done := testutil.CreateTask(suite.T(), suite.db, "Done", f.project.ID, &f.member.ID)
	testutil.CreateTask(suite.T(), suite.db, "Open", f.project.ID, &f.member.ID)
	suite.Require().NoError(suite.db.Model(done).Update("status", models.TaskStatusDone).Error)

	c, w := suite.createAuthContext(http.MethodGet, "/reports/tasks-completed", nil, f.member)
	suite.reports.TasksCompleted(c)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"total_tasks":2,"completed_tasks":1,"completion_rate":0.5}`, w.Body.String())

	c, w = suite.createAuthContext(http.MethodGet, "/reports/user-performance/2", nil, f.manager, param("user_id", f.member.ID))
	suite.reports.UserPerformance(c)
	suite.Equal(http.StatusOK, w.Code)
	var perf dto.UserPerformanceDTO
	suite.decode(w, &perf)
	suite.Equal(int64(1), perf.TasksCompleted)
	suite.Equal(int64(2), perf.TotalTasks)

	c, w = suite.createAuthContext(http.MethodGet, "/reports/project-progress/1", nil, f.outsider, param("project_id", f.project.ID))
	suite.reports.ProjectProgress(c)
	suite.Equal(http.StatusNotFound, w.Code)

	c, w = suite.createAuthContext(http.MethodGet, "/reports/project-progress/1", nil, f.member, param("project_id", f.project.ID))
	suite.reports.ProjectProgress(c)
	suite.Equal(http.StatusOK, w.Code)
	var progress dto.ProjectProgressDTO
	suite.decode(w, &progress)
	suite.InDelta(0.5, progress.Progress, 0.001)
}

// Users

func (suite *HandlerTestSuite) TestUpdateUser() {
	f := suite.createFixture()

	c, w := suite.createAuthContext(http.MethodPatch, "/users/3", gin.H{"is_active": false, "role": "admin"}, f.manager, param("id", f.outsider.ID))
	suite.users.UpdateUser(c)
	suite.Equal(http.StatusOK, w.Code)
	var user dto.UserDTO
	suite.decode(w, &user)
	suite.False(user.IsActive)
	suite.Equal(models.RoleAdmin, user.Role)

	c, w = suite.createAuthContext(http.MethodPatch, "/users/3", gin.H{"role": "root"}, f.manager, param("id", f.outsider.ID))
	suite.users.UpdateUser(c)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteUser() {
	f := suite.createFixture()

	c, w := suite.createAuthContext(http.MethodDelete, "/users/1", nil, f.manager, param("id", f.manager.ID))
	suite.users.DeleteUser(c)
	suite.Equal(http.StatusBadRequest, w.Code)

	c, w = suite.createAuthContext(http.MethodDelete, "/users/1", nil, f.outsider, param("id", f.manager.ID))
	suite.users.DeleteUser(c)
	suite.Equal(http.StatusConflict, w.Code)

	c, w = suite.createAuthContext(http.MethodDelete, "/users/2", nil, f.manager, param("id", f.member.ID))
	suite.users.DeleteUser(c)
	suite.Equal(http.StatusOK, w.Code)

	c, w = suite.createAuthContext(http.MethodGet, "/users/2", nil, f.manager, param("id", f.member.ID))
	suite.users.GetUser(c)
	suite.Equal(http.StatusNotFound, w.Code)
}
