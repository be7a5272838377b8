package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/blogem/tenant-admin/models"
	"github.com/blogem/tenant-admin/repositories"
	"github.com/blogem/tenant-admin/repositories/mocks"
)

// UserServiceTestSuite is a test suite for user management business logic
type UserServiceTestSuite struct {
	suite.Suite
	service            UserService
	mockUserRepo       *mocks.MockUserRepository
	mockCredentialRepo *mocks.MockCredentialRepository

	superAdmin models.Principal
	adminA     models.Principal
	userA      models.Principal
}

// SetupTest sets up the test suite before each test
func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = mocks.NewMockUserRepository(suite.T())
	suite.mockCredentialRepo = mocks.NewMockCredentialRepository(suite.T())

	suite.service = NewUserService(suite.mockUserRepo, suite.mockCredentialRepo)

	suite.superAdmin = models.Principal{UserID: "sa", Email: "superadmin@mail.com", Role: models.RoleSuperAdmin, Tenant: models.TenantGlobal}
	suite.adminA = models.Principal{UserID: "a1", Email: "admin1@companyA.com", Role: models.RoleAdmin, Tenant: "Company A"}
	suite.userA = models.Principal{UserID: "u1", Email: "user1@companyA.com", Role: models.RoleUser, Tenant: "Company A"}
}

// TestListUsers_UserRole_Denied tests that user-role accounts have no access
// to user management
func (suite *UserServiceTestSuite) TestListUsers_UserRole_Denied() {
	users, err := suite.service.ListUsers(context.Background(), suite.userA)

	assert.Nil(suite.T(), users)
	assert.ErrorIs(suite.T(), err, ErrPermissionDenied)
}

// TestListUsers_AdminScopedToTenant tests that admins only list accounts of
// their own tenant
func (suite *UserServiceTestSuite) TestListUsers_AdminScopedToTenant() {
	suite.mockUserRepo.On("GetByTenant", mock.Anything, "Company A").Return([]models.User{
		{ID: "u1", Email: "user1@companyA.com", Tenant: "Company A", Role: models.RoleUser},
	}, nil)

	users, err := suite.service.ListUsers(context.Background(), suite.adminA)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), users, 1)
}

// TestCreateUser_AdminPinnedToOwnTenant tests that an admin's submitted
// tenant is overridden with their own
func (suite *UserServiceTestSuite) TestCreateUser_AdminPinnedToOwnTenant() {
	form := &models.UserForm{
		Name:     "New User",
		Email:    "new@companyA.com",
		Tenant:   "Company B",
		Role:     models.RoleUser,
		Password: "temporary",
	}

	suite.mockUserRepo.On("GetByEmail", mock.Anything, "new@companyA.com").Return(nil, repositories.ErrNotFound)
	suite.mockUserRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Tenant == "Company A" && u.Role == models.RoleUser
	})).Return(nil)
	suite.mockCredentialRepo.On("Set", mock.Anything, "new@companyA.com", mock.Anything).Return(nil)

	user, err := suite.service.CreateUser(context.Background(), suite.adminA, form)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Company A", user.Tenant)
}

// TestCreateUser_AdminCannotElevate tests that admins may only hand out the
// user role
func (suite *UserServiceTestSuite) TestCreateUser_AdminCannotElevate() {
	form := &models.UserForm{
		Name:     "New Admin",
		Email:    "new@companyA.com",
		Tenant:   "Company A",
		Role:     models.RoleAdmin,
		Password: "temporary",
	}

	user, err := suite.service.CreateUser(context.Background(), suite.adminA, form)

	assert.Nil(suite.T(), user)
	assert.ErrorIs(suite.T(), err, ErrPermissionDenied)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

// TestCreateUser_DuplicateEmail tests that emails stay unique across tenants
func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	form := &models.UserForm{
		Name:     "New User",
		Email:    "user1@companyA.com",
		Tenant:   "Company A",
		Role:     models.RoleUser,
		Password: "temporary",
	}

	suite.mockUserRepo.On("GetByEmail", mock.Anything, "user1@companyA.com").Return(&models.User{ID: "u1"}, nil)

	user, err := suite.service.CreateUser(context.Background(), suite.adminA, form)

	assert.Nil(suite.T(), user)
	assert.ErrorIs(suite.T(), err, ErrValidation)
}

// TestCreateUser_MissingPassword tests that new accounts require a temporary
// password
func (suite *UserServiceTestSuite) TestCreateUser_MissingPassword() {
	form := &models.UserForm{
		Name:   "New User",
		Email:  "new@companyA.com",
		Tenant: "Company A",
		Role:   models.RoleUser,
	}

	user, err := suite.service.CreateUser(context.Background(), suite.adminA, form)

	assert.Nil(suite.T(), user)
	assert.ErrorIs(suite.T(), err, ErrValidation)
}

// TestUpdateUser_AdminCannotTouchAdmin tests that admins may only manage
// user-role accounts, even in their own tenant
func (suite *UserServiceTestSuite) TestUpdateUser_AdminCannotTouchAdmin() {
	other := &models.User{ID: "a9", Name: "Other Admin", Email: "admin9@companyA.com", Tenant: "Company A", Role: models.RoleAdmin}

	suite.mockUserRepo.On("GetByID", mock.Anything, "a9").Return(other, nil)

	form := &models.UserForm{Name: "Renamed", Email: other.Email, Tenant: "Company A", Role: models.RoleAdmin}
	user, err := suite.service.UpdateUser(context.Background(), suite.adminA, "a9", form)

	assert.Nil(suite.T(), user)
	assert.ErrorIs(suite.T(), err, ErrPermissionDenied)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

// TestUpdateUser_EmailImmutable tests that a changed email in the form is
// ignored in favor of the stored one
func (suite *UserServiceTestSuite) TestUpdateUser_EmailImmutable() {
	existing := &models.User{ID: "u1", Name: "User One", Email: "user1@companyA.com", Tenant: "Company A", Role: models.RoleUser}

	suite.mockUserRepo.On("GetByID", mock.Anything, "u1").Return(existing, nil)
	suite.mockUserRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "user1@companyA.com" && u.Name == "Renamed"
	})).Return(nil)

	form := &models.UserForm{Name: "Renamed", Email: "hijack@evil.com", Tenant: "Company A", Role: models.RoleUser}
	user, err := suite.service.UpdateUser(context.Background(), suite.adminA, "u1", form)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "user1@companyA.com", user.Email)
}

// TestUpdateUser_PasswordReset tests that a non-empty password replaces the
// stored credentials
func (suite *UserServiceTestSuite) TestUpdateUser_PasswordReset() {
	existing := &models.User{ID: "u1", Name: "User One", Email: "user1@companyA.com", Tenant: "Company A", Role: models.RoleUser}

	suite.mockUserRepo.On("GetByID", mock.Anything, "u1").Return(existing, nil)
	suite.mockUserRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	suite.mockCredentialRepo.On("Set", mock.Anything, "user1@companyA.com", mock.Anything).Return(nil)

	form := &models.UserForm{Name: "User One", Email: existing.Email, Tenant: "Company A", Role: models.RoleUser, Password: "fresh-password"}
	_, err := suite.service.UpdateUser(context.Background(), suite.adminA, "u1", form)

	assert.NoError(suite.T(), err)
}

// TestDeleteUser_SelfDeletionDenied tests that nobody may delete their own
// account, super admins included
func (suite *UserServiceTestSuite) TestDeleteUser_SelfDeletionDenied() {
	self := &models.User{ID: "sa", Name: "Super Admin", Email: "superadmin@mail.com", Tenant: models.TenantGlobal, Role: models.RoleSuperAdmin}

	suite.mockUserRepo.On("GetByID", mock.Anything, "sa").Return(self, nil)

	err := suite.service.DeleteUser(context.Background(), suite.superAdmin, "sa")

	assert.ErrorIs(suite.T(), err, ErrPermissionDenied)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

// TestDeleteUser_RemovesCredentials tests that deleting an account also
// removes its login credentials
func (suite *UserServiceTestSuite) TestDeleteUser_RemovesCredentials() {
	target := &models.User{ID: "u1", Name: "User One", Email: "user1@companyA.com", Tenant: "Company A", Role: models.RoleUser}

	suite.mockUserRepo.On("GetByID", mock.Anything, "u1").Return(target, nil)
	suite.mockUserRepo.On("Delete", mock.Anything, "u1").Return(nil)
	suite.mockCredentialRepo.On("Delete", mock.Anything, "user1@companyA.com").Return(nil)

	err := suite.service.DeleteUser(context.Background(), suite.adminA, "u1")

	assert.NoError(suite.T(), err)
}

// TestDeleteUser_AdminOtherTenant_Denied tests that tenant scope applies to
// deletion as well
func (suite *UserServiceTestSuite) TestDeleteUser_AdminOtherTenant_Denied() {
	target := &models.User{ID: "u2", Name: "User Two", Email: "user2@companyB.com", Tenant: "Company B", Role: models.RoleUser}

	suite.mockUserRepo.On("GetByID", mock.Anything, "u2").Return(target, nil)

	err := suite.service.DeleteUser(context.Background(), suite.adminA, "u2")

	assert.ErrorIs(suite.T(), err, ErrPermissionDenied)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

// TestUserServiceTestSuite runs the test suite
func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
