package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/blogem/tenant-admin/models"
	"github.com/blogem/tenant-admin/repositories/mocks"
)

// ProductServiceTestSuite is a test suite for the product mutation paths
type ProductServiceTestSuite struct {
	suite.Suite
	service         ProductService
	mockProductRepo *mocks.MockProductRepository
	mockRequestRepo *mocks.MockRequestRepository

	superAdmin models.Principal
	adminA     models.Principal
	userA      models.Principal
	userB      models.Principal
}

// SetupTest sets up the test suite before each test
func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockProductRepo = mocks.NewMockProductRepository(suite.T())
	suite.mockRequestRepo = mocks.NewMockRequestRepository(suite.T())

	suite.service = NewProductService(suite.mockProductRepo, suite.mockRequestRepo)

	suite.superAdmin = models.Principal{UserID: "sa", Email: "superadmin@mail.com", Role: models.RoleSuperAdmin, Tenant: models.TenantGlobal}
	suite.adminA = models.Principal{UserID: "a1", Email: "admin1@companyA.com", Role: models.RoleAdmin, Tenant: "Company A"}
	suite.userA = models.Principal{UserID: "u1", Email: "user1@companyA.com", Role: models.RoleUser, Tenant: "Company A"}
	suite.userB = models.Principal{UserID: "u2", Email: "user2@companyB.com", Role: models.RoleUser, Tenant: "Company B"}
}

func (suite *ProductServiceTestSuite) laptopA() *models.Product {
	return &models.Product{
		ID:     "p1",
		Name:   "Laptop A",
		Price:  decimal.RequireFromString("1200.00"),
		Stock:  50,
		Tenant: "Company A",
	}
}

// TestCreateProduct_AdminPinnedToOwnTenant tests that an admin's submitted
// tenant is overridden with their own
func (suite *ProductServiceTestSuite) TestCreateProduct_AdminPinnedToOwnTenant() {
	form := &models.ProductForm{
		Name:   "Mouse A",
		Price:  decimal.RequireFromString("25.50"),
		Stock:  200,
		Tenant: "Company B",
	}

	suite.mockProductRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.Tenant == "Company A"
	})).Return(nil)

	product, err := suite.service.CreateProduct(context.Background(), suite.adminA, form)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Company A", product.Tenant)
}

// TestCreateProduct_UserRole_Denied tests that user-role accounts cannot use
// the direct mutation path
func (suite *ProductServiceTestSuite) TestCreateProduct_UserRole_Denied() {
	form := &models.ProductForm{
		Name:   "Mouse A",
		Price:  decimal.RequireFromString("25.50"),
		Stock:  200,
		Tenant: "Company A",
	}

	product, err := suite.service.CreateProduct(context.Background(), suite.userA, form)

	assert.Nil(suite.T(), product)
	assert.ErrorIs(suite.T(), err, ErrPermissionDenied)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

// TestCreateProduct_ValidationFailure tests that invalid form data is rejected
func (suite *ProductServiceTestSuite) TestCreateProduct_ValidationFailure() {
	form := &models.ProductForm{
		Name:   "",
		Price:  decimal.Zero,
		Stock:  -1,
		Tenant: "Company A",
	}

	product, err := suite.service.CreateProduct(context.Background(), suite.adminA, form)

	assert.Nil(suite.T(), product)
	assert.ErrorIs(suite.T(), err, ErrValidation)
}

// TestUpdateProduct_AdminOtherTenant_Denied tests that an admin cannot
// directly mutate another tenant's product
func (suite *ProductServiceTestSuite) TestUpdateProduct_AdminOtherTenant_Denied() {
	product := suite.laptopA()
	product.Tenant = "Company B"

	suite.mockProductRepo.On("GetByID", mock.Anything, "p1").Return(product, nil)

	form := &models.ProductForm{Name: "Laptop A", Price: product.Price, Stock: 10}
	updated, err := suite.service.UpdateProduct(context.Background(), suite.adminA, "p1", form)

	assert.Nil(suite.T(), updated)
	assert.ErrorIs(suite.T(), err, ErrPermissionDenied)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

// TestUpdateProduct_AdminCannotRetenant tests that only super admins may move
// a product to another tenant
func (suite *ProductServiceTestSuite) TestUpdateProduct_AdminCannotRetenant() {
	product := suite.laptopA()

	suite.mockProductRepo.On("GetByID", mock.Anything, "p1").Return(product, nil)
	suite.mockProductRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.Tenant == "Company A"
	})).Return(nil)

	form := &models.ProductForm{Name: "Laptop A", Price: product.Price, Stock: 40, Tenant: "Company B"}
	updated, err := suite.service.UpdateProduct(context.Background(), suite.adminA, "p1", form)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Company A", updated.Tenant)
}

// TestDeleteProduct_UserRole_Denied tests that user-role accounts cannot
// delete directly
func (suite *ProductServiceTestSuite) TestDeleteProduct_UserRole_Denied() {
	product := suite.laptopA()

	suite.mockProductRepo.On("GetByID", mock.Anything, "p1").Return(product, nil)

	err := suite.service.DeleteProduct(context.Background(), suite.userA, "p1")

	assert.ErrorIs(suite.T(), err, ErrPermissionDenied)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

// TestProposeUpdate_SubmitsSnapshotAndProposal tests that a proposal carries
// the current product as snapshot and the applied form as proposed data
func (suite *ProductServiceTestSuite) TestProposeUpdate_SubmitsSnapshotAndProposal() {
	product := suite.laptopA()

	suite.mockProductRepo.On("GetByID", mock.Anything, "p1").Return(product, nil)
	suite.mockRequestRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.ChangeRequest) bool {
		return r.ProductID == "p1" &&
			r.Type == models.RequestUpdate &&
			r.OldData.Price.Equal(decimal.RequireFromString("1200.00")) &&
			r.NewData != nil &&
			r.NewData.Price.Equal(decimal.RequireFromString("1100.00")) &&
			r.NewData.Tenant == "Company A" &&
			r.RequestedBy == suite.userA.Email
	})).Return(nil)

	form := &models.ProductForm{Name: "Laptop A", Price: decimal.RequireFromString("1100.00"), Stock: 50}
	req, err := suite.service.ProposeUpdate(context.Background(), suite.userA, "p1", form)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), req)
	// The product itself must not be touched until review.
	suite.mockProductRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

// TestProposeUpdate_NoChanges tests that a proposal identical to the current
// product is refused without writing to the ledger
func (suite *ProductServiceTestSuite) TestProposeUpdate_NoChanges() {
	product := suite.laptopA()

	suite.mockProductRepo.On("GetByID", mock.Anything, "p1").Return(product, nil)

	form := &models.ProductForm{Name: "Laptop A", Price: decimal.RequireFromString("1200.00"), Stock: 50}
	req, err := suite.service.ProposeUpdate(context.Background(), suite.userA, "p1", form)

	assert.Nil(suite.T(), req)
	assert.ErrorIs(suite.T(), err, ErrNoChanges)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

// TestProposeUpdate_OtherTenant_Denied tests that a user cannot propose
// changes to another tenant's product
func (suite *ProductServiceTestSuite) TestProposeUpdate_OtherTenant_Denied() {
	product := suite.laptopA()

	suite.mockProductRepo.On("GetByID", mock.Anything, "p1").Return(product, nil)

	form := &models.ProductForm{Name: "Laptop A", Price: decimal.RequireFromString("1100.00"), Stock: 50}
	req, err := suite.service.ProposeUpdate(context.Background(), suite.userB, "p1", form)

	assert.Nil(suite.T(), req)
	assert.ErrorIs(suite.T(), err, ErrPermissionDenied)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

// TestProposeUpdate_AdminUsesDirectPath tests that admins are not routed
// through the proposal path
func (suite *ProductServiceTestSuite) TestProposeUpdate_AdminUsesDirectPath() {
	form := &models.ProductForm{Name: "Laptop A", Price: decimal.RequireFromString("1100.00"), Stock: 50}
	req, err := suite.service.ProposeUpdate(context.Background(), suite.adminA, "p1", form)

	assert.Nil(suite.T(), req)
	assert.ErrorIs(suite.T(), err, ErrPermissionDenied)
}

// TestProposeDelete_SubmitsProposal tests that a deletion proposal carries
// the snapshot and no proposed data
func (suite *ProductServiceTestSuite) TestProposeDelete_SubmitsProposal() {
	product := suite.laptopA()

	suite.mockProductRepo.On("GetByID", mock.Anything, "p1").Return(product, nil)
	suite.mockRequestRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.ChangeRequest) bool {
		return r.ProductID == "p1" &&
			r.Type == models.RequestDelete &&
			r.NewData == nil &&
			r.OldData.Name == "Laptop A"
	})).Return(nil)

	req, err := suite.service.ProposeDelete(context.Background(), suite.userA, "p1")

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), req)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

// TestListProducts_UserScopedToTenant tests that every role reads products of
// its own tenant
func (suite *ProductServiceTestSuite) TestListProducts_UserScopedToTenant() {
	suite.mockProductRepo.On("GetByTenant", mock.Anything, "Company A").Return([]models.Product{*suite.laptopA()}, nil)

	products, err := suite.service.ListProducts(context.Background(), suite.userA)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), products, 1)
}

// TestGetProduct_OtherTenant_Denied tests that reads are tenant-scoped too
func (suite *ProductServiceTestSuite) TestGetProduct_OtherTenant_Denied() {
	product := suite.laptopA()

	suite.mockProductRepo.On("GetByID", mock.Anything, "p1").Return(product, nil)

	got, err := suite.service.GetProduct(context.Background(), suite.userB, "p1")

	assert.Nil(suite.T(), got)
	assert.ErrorIs(suite.T(), err, ErrPermissionDenied)
}

// TestProductServiceTestSuite runs the test suite
func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
