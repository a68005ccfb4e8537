package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snishiyama/networking-crm/internal/constants"
	"github.com/snishiyama/networking-crm/internal/models"
	"github.com/snishiyama/networking-crm/internal/repository"
	"github.com/snishiyama/networking-crm/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// GroupHandlerTestSuite defines the test suite for GroupHandler
type GroupHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *GroupHandler
}

// SetupTest runs before each test
func (suite *GroupHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Member{},
		&models.Group{},
		&models.GroupMember{},
		&models.Meeting{},
		&models.Attendance{},
	)
	suite.Require().NoError(err)

	groupRepo := repository.NewGroupRepository(suite.db)
	memberRepo := repository.NewMemberRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	suite.handler = NewGroupHandler(services.NewGroupService(groupRepo, memberRepo, userRepo))

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *GroupHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *GroupHandlerTestSuite) createTestUser(username string, role models.Role) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.db.Create(user)
	return user
}

func (suite *GroupHandlerTestSuite) createTestMember(firstName, lastName, category string) *models.Member {
	member := &models.Member{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          firstName + "@example.com",
		Category:       category,
		MembershipType: models.MembershipActive,
	}
	suite.db.Create(member)
	return member
}

func (suite *GroupHandlerTestSuite) createTestGroup(name string, leaderID uint64) *models.Group {
	group := &models.Group{
		Name:     name,
		LeaderID: leaderID,
	}
	suite.db.Create(group)
	return group
}

func (suite *GroupHandlerTestSuite) createTestMembership(groupID, memberID uint64) *models.GroupMember {
	membership := &models.GroupMember{
		GroupID:  groupID,
		MemberID: memberID,
		JoinedAt: time.Now(),
	}
	suite.db.Create(membership)
	return membership
}

// Helper function to create authenticated context
func (suite *GroupHandlerTestSuite) createAuthContext(method, url string, body []byte, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set(constants.ContextKeyRole, string(user.Role))

	return c, w
}

func (suite *GroupHandlerTestSuite) setIDParam(c *gin.Context, id uint64) {
	c.Params = append(c.Params, gin.Param{Key: "id", Value: fmt.Sprintf("%d", id)})
}

func addMemberBody(memberID uint64) []byte {
	body, _ := json.Marshal(map[string]interface{}{"memberId": memberID})
	return body
}

// TestCreateGroup_AdminBecomesLeader tests that admins lead the groups they create
func (suite *GroupHandlerTestSuite) TestCreateGroup_AdminBecomesLeader() {
	admin := suite.createTestUser("leader", models.RoleAdmin)

	requestBody := map[string]interface{}{
		"name":      "Downtown Chapter",
		"leader_id": 9999, // ignored for admins
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/groups", body, admin)

	suite.handler.CreateGroup(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Downtown Chapter", response["name"])
	assert.Equal(suite.T(), float64(admin.ID), response["leader_id"])
}

// TestCreateGroup_SuperAdminAssignsLeader tests leader assignment by super admins
func (suite *GroupHandlerTestSuite) TestCreateGroup_SuperAdminAssignsLeader() {
	superAdmin := suite.createTestUser("root", models.RoleSuperAdmin)
	leader := suite.createTestUser("leader", models.RoleAdmin)

	requestBody := map[string]interface{}{
		"name":      "Downtown Chapter",
		"leader_id": leader.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/groups", body, superAdmin)

	suite.handler.CreateGroup(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), float64(leader.ID), response["leader_id"])
}

// TestCreateGroup_MissingName tests group creation without a name
func (suite *GroupHandlerTestSuite) TestCreateGroup_MissingName() {
	admin := suite.createTestUser("leader", models.RoleAdmin)

	body, _ := json.Marshal(map[string]interface{}{"description": "no name"})
	c, w := suite.createAuthContext("POST", "/api/groups", body, admin)

	suite.handler.CreateGroup(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestAddGroupMember_Success tests adding a member as the group's leader
func (suite *GroupHandlerTestSuite) TestAddGroupMember_Success() {
	admin := suite.createTestUser("leader", models.RoleAdmin)
	group := suite.createTestGroup("Downtown Chapter", admin.ID)
	member := suite.createTestMember("Alice", "Ng", "Accounting")

	c, w := suite.createAuthContext("POST", "/api/groups/1/members", addMemberBody(member.ID), admin)
	suite.setIDParam(c, group.ID)

	suite.handler.AddGroupMember(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), float64(member.ID), response["member_id"])

	// Verify the membership was persisted
	var membership models.GroupMember
	err = suite.db.Where("group_id = ? AND member_id = ?", group.ID, member.ID).First(&membership).Error
	assert.NoError(suite.T(), err)
}

// TestAddGroupMember_CategoryConflict tests the one-member-per-category rule
func (suite *GroupHandlerTestSuite) TestAddGroupMember_CategoryConflict() {
	admin := suite.createTestUser("leader", models.RoleAdmin)
	group := suite.createTestGroup("Downtown Chapter", admin.ID)
	existing := suite.createTestMember("Alice", "Ng", "Legal Services")
	suite.createTestMembership(group.ID, existing.ID)
	incoming := suite.createTestMember("Bob", "Tan", "Legal Services")

	c, w := suite.createAuthContext("POST", "/api/groups/1/members", addMemberBody(incoming.ID), admin)
	suite.setIDParam(c, group.ID)

	suite.handler.AddGroupMember(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Category conflict", response["error"])
	assert.Contains(suite.T(), response["message"], "Alice Ng")

	conflicting := response["conflictingMember"].(map[string]interface{})
	assert.Equal(suite.T(), float64(existing.ID), conflicting["id"])
	assert.Equal(suite.T(), "Alice Ng", conflicting["name"])
	assert.Equal(suite.T(), "Legal Services", conflicting["category"])

	// The incoming member must not have been added
	var count int64
	suite.db.Model(&models.GroupMember{}).Where("group_id = ?", group.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestAddGroupMember_CategoryConflictCaseInsensitive tests case-insensitive matching
func (suite *GroupHandlerTestSuite) TestAddGroupMember_CategoryConflictCaseInsensitive() {
	admin := suite.createTestUser("leader", models.RoleAdmin)
	group := suite.createTestGroup("Downtown Chapter", admin.ID)
	existing := suite.createTestMember("Alice", "Ng", "Legal Services")
	suite.createTestMembership(group.ID, existing.ID)
	incoming := suite.createTestMember("Bob", "Tan", "legal services")

	c, w := suite.createAuthContext("POST", "/api/groups/1/members", addMemberBody(incoming.ID), admin)
	suite.setIDParam(c, group.ID)

	suite.handler.AddGroupMember(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	// The conflict reports the existing member's stored category
	conflicting := response["conflictingMember"].(map[string]interface{})
	assert.Equal(suite.T(), "Legal Services", conflicting["category"])
}

// TestAddGroupMember_EmptyCategoriesNeverConflict tests that members without a
// category may coexist freely
func (suite *GroupHandlerTestSuite) TestAddGroupMember_EmptyCategoriesNeverConflict() {
	admin := suite.createTestUser("leader", models.RoleAdmin)
	group := suite.createTestGroup("Downtown Chapter", admin.ID)
	existing := suite.createTestMember("Alice", "Ng", "")
	suite.createTestMembership(group.ID, existing.ID)
	incoming := suite.createTestMember("Bob", "Tan", "")

	c, w := suite.createAuthContext("POST", "/api/groups/1/members", addMemberBody(incoming.ID), admin)
	suite.setIDParam(c, group.ID)

	suite.handler.AddGroupMember(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var count int64
	suite.db.Model(&models.GroupMember{}).Where("group_id = ?", group.ID).Count(&count)
	assert.Equal(suite.T(), int64(2), count)
}

// TestAddGroupMember_NotLeader tests that admins cannot modify other leaders' groups
func (suite *GroupHandlerTestSuite) TestAddGroupMember_NotLeader() {
	leader := suite.createTestUser("leader", models.RoleAdmin)
	other := suite.createTestUser("other", models.RoleAdmin)
	group := suite.createTestGroup("Downtown Chapter", leader.ID)
	member := suite.createTestMember("Alice", "Ng", "Accounting")

	c, w := suite.createAuthContext("POST", "/api/groups/1/members", addMemberBody(member.ID), other)
	suite.setIDParam(c, group.ID)

	suite.handler.AddGroupMember(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestAddGroupMember_SuperAdminAnyGroup tests that super admins can modify any group
func (suite *GroupHandlerTestSuite) TestAddGroupMember_SuperAdminAnyGroup() {
	leader := suite.createTestUser("leader", models.RoleAdmin)
	superAdmin := suite.createTestUser("root", models.RoleSuperAdmin)
	group := suite.createTestGroup("Downtown Chapter", leader.ID)
	member := suite.createTestMember("Alice", "Ng", "Accounting")

	c, w := suite.createAuthContext("POST", "/api/groups/1/members", addMemberBody(member.ID), superAdmin)
	suite.setIDParam(c, group.ID)

	suite.handler.AddGroupMember(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
}

// TestAddGroupMember_AlreadyMember tests adding the same member twice
func (suite *GroupHandlerTestSuite) TestAddGroupMember_AlreadyMember() {
	admin := suite.createTestUser("leader", models.RoleAdmin)
	group := suite.createTestGroup("Downtown Chapter", admin.ID)
	member := suite.createTestMember("Alice", "Ng", "Accounting")
	suite.createTestMembership(group.ID, member.ID)

	c, w := suite.createAuthContext("POST", "/api/groups/1/members", addMemberBody(member.ID), admin)
	suite.setIDParam(c, group.ID)

	suite.handler.AddGroupMember(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestAddGroupMember_GroupNotFound tests adding to a non-existent group
func (suite *GroupHandlerTestSuite) TestAddGroupMember_GroupNotFound() {
	admin := suite.createTestUser("leader", models.RoleAdmin)
	member := suite.createTestMember("Alice", "Ng", "Accounting")

	c, w := suite.createAuthContext("POST", "/api/groups/9999/members", addMemberBody(member.ID), admin)
	suite.setIDParam(c, 9999)

	suite.handler.AddGroupMember(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestAddGroupMember_MemberNotFound tests adding a non-existent member
func (suite *GroupHandlerTestSuite) TestAddGroupMember_MemberNotFound() {
	admin := suite.createTestUser("leader", models.RoleAdmin)
	group := suite.createTestGroup("Downtown Chapter", admin.ID)

	c, w := suite.createAuthContext("POST", "/api/groups/1/members", addMemberBody(9999), admin)
	suite.setIDParam(c, group.ID)

	suite.handler.AddGroupMember(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestRemoveGroupMember_Success tests removing a member from a group
func (suite *GroupHandlerTestSuite) TestRemoveGroupMember_Success() {
	admin := suite.createTestUser("leader", models.RoleAdmin)
	group := suite.createTestGroup("Downtown Chapter", admin.ID)
	member := suite.createTestMember("Alice", "Ng", "Accounting")
	suite.createTestMembership(group.ID, member.ID)

	c, w := suite.createAuthContext("DELETE", "/api/groups/1/members/1", nil, admin)
	suite.setIDParam(c, group.ID)
	c.Params = append(c.Params, gin.Param{Key: "memberId", Value: fmt.Sprintf("%d", member.ID)})

	suite.handler.RemoveGroupMember(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.GroupMember{}).Where("group_id = ?", group.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestRemoveGroupMember_NotAMember tests removing someone who was never added
func (suite *GroupHandlerTestSuite) TestRemoveGroupMember_NotAMember() {
	admin := suite.createTestUser("leader", models.RoleAdmin)
	group := suite.createTestGroup("Downtown Chapter", admin.ID)
	member := suite.createTestMember("Alice", "Ng", "Accounting")

	c, w := suite.createAuthContext("DELETE", "/api/groups/1/members/1", nil, admin)
	suite.setIDParam(c, group.ID)
	c.Params = append(c.Params, gin.Param{Key: "memberId", Value: fmt.Sprintf("%d", member.ID)})

	suite.handler.RemoveGroupMember(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestRemoveGroupMember_ThenReAdd tests that removal frees the category slot
func (suite *GroupHandlerTestSuite) TestRemoveGroupMember_ThenReAdd() {
	admin := suite.createTestUser("leader", models.RoleAdmin)
	group := suite.createTestGroup("Downtown Chapter", admin.ID)
	alice := suite.createTestMember("Alice", "Ng", "Legal Services")
	bob := suite.createTestMember("Bob", "Tan", "Legal Services")
	suite.createTestMembership(group.ID, alice.ID)

	// Remove Alice
	c, w := suite.createAuthContext("DELETE", "/api/groups/1/members/1", nil, admin)
	suite.setIDParam(c, group.ID)
	c.Params = append(c.Params, gin.Param{Key: "memberId", Value: fmt.Sprintf("%d", alice.ID)})
	suite.handler.RemoveGroupMember(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Bob's category is now free
	c, w = suite.createAuthContext("POST", "/api/groups/1/members", addMemberBody(bob.ID), admin)
	suite.setIDParam(c, group.ID)
	suite.handler.AddGroupMember(c)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)
}

// TestGetGroup_Success tests fetching a group with its memberships
func (suite *GroupHandlerTestSuite) TestGetGroup_Success() {
	admin := suite.createTestUser("leader", models.RoleAdmin)
	group := suite.createTestGroup("Downtown Chapter", admin.ID)
	member := suite.createTestMember("Alice", "Ng", "Accounting")
	suite.createTestMembership(group.ID, member.ID)

	c, w := suite.createAuthContext("GET", "/api/groups/1", nil, admin)
	suite.setIDParam(c, group.ID)

	suite.handler.GetGroup(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Downtown Chapter", response["name"])

	members := response["members"].([]interface{})
	assert.Len(suite.T(), members, 1)
}

// TestGetGroup_NotFound tests fetching a non-existent group
func (suite *GroupHandlerTestSuite) TestGetGroup_NotFound() {
	admin := suite.createTestUser("leader", models.RoleAdmin)

	c, w := suite.createAuthContext("GET", "/api/groups/9999", nil, admin)
	suite.setIDParam(c, 9999)

	suite.handler.GetGroup(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestUpdateGroup_NotLeader tests updating another leader's group
func (suite *GroupHandlerTestSuite) TestUpdateGroup_NotLeader() {
	leader := suite.createTestUser("leader", models.RoleAdmin)
	other := suite.createTestUser("other", models.RoleAdmin)
	group := suite.createTestGroup("Downtown Chapter", leader.ID)

	body, _ := json.Marshal(map[string]interface{}{"name": "Renamed"})
	c, w := suite.createAuthContext("PATCH", "/api/groups/1", body, other)
	suite.setIDParam(c, group.ID)

	suite.handler.UpdateGroup(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestUpdateGroup_LeaderIgnoredForAdmin tests that admins cannot reassign leadership
func (suite *GroupHandlerTestSuite) TestUpdateGroup_LeaderIgnoredForAdmin() {
	leader := suite.createTestUser("leader", models.RoleAdmin)
	other := suite.createTestUser("other", models.RoleAdmin)
	group := suite.createTestGroup("Downtown Chapter", leader.ID)

	body, _ := json.Marshal(map[string]interface{}{"leader_id": other.ID})
	c, w := suite.createAuthContext("PATCH", "/api/groups/1", body, leader)
	suite.setIDParam(c, group.ID)

	suite.handler.UpdateGroup(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var updated models.Group
	suite.db.First(&updated, group.ID)
	assert.Equal(suite.T(), leader.ID, updated.LeaderID)
}

// TestDeleteGroup_Success tests deleting a group and its memberships
func (suite *GroupHandlerTestSuite) TestDeleteGroup_Success() {
	admin := suite.createTestUser("leader", models.RoleAdmin)
	group := suite.createTestGroup("Downtown Chapter", admin.ID)
	member := suite.createTestMember("Alice", "Ng", "Accounting")
	suite.createTestMembership(group.ID, member.ID)

	c, w := suite.createAuthContext("DELETE", "/api/groups/1", nil, admin)
	suite.setIDParam(c, group.ID)

	suite.handler.DeleteGroup(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var groupCount, membershipCount int64
	suite.db.Model(&models.Group{}).Count(&groupCount)
	suite.db.Model(&models.GroupMember{}).Count(&membershipCount)
	assert.Equal(suite.T(), int64(0), groupCount)
	assert.Equal(suite.T(), int64(0), membershipCount)

	// The member record itself survives
	var memberCount int64
	suite.db.Model(&models.Member{}).Count(&memberCount)
	assert.Equal(suite.T(), int64(1), memberCount)
}

// TestSuite runs the test suite
func TestGroupHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GroupHandlerTestSuite))
}
