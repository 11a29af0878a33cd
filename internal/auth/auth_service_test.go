package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-bms/internal/auth"
	autherrors "go-bms/internal/auth/errors"
	"go-bms/internal/authz"
	"go-bms/internal/company"
	"go-bms/internal/user"

	companyMock "go-bms/internal/company/mock"
	userMock "go-bms/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   auth.Service
	users     *userMock.MockRepository
	companies *companyMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	users := userMock.NewMockRepository(ctrl)
	companies := companyMock.NewMockRepository(ctrl)

	svc := auth.NewService(gormDB, users, companies)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		users:     users,
		companies: companies,
	}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials return tokens", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		u := &user.User{
			ID:       uuid.New(),
			Email:    "owner@acme.test",
			Password: hashOf(t, "secret-pass"),
			Role:     user.RoleParent,
			IsActive: true,
		}
		deps.users.EXPECT().FindByEmail(gomock.Any(), "owner@acme.test").Return(u, nil)

		pair, resp, err := deps.service.Login(ctx, "owner@acme.test", "secret-pass")

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, u.ID, resp.ID)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.users.EXPECT().
			FindByEmail(gomock.Any(), "nobody@acme.test").
			Return(nil, gorm.ErrRecordNotFound)

		_, _, errUnknown := deps.service.Login(ctx, "nobody@acme.test", "whatever")

		u := &user.User{
			ID:       uuid.New(),
			Email:    "owner@acme.test",
			Password: hashOf(t, "secret-pass"),
			IsActive: true,
		}
		deps.users.EXPECT().FindByEmail(gomock.Any(), "owner@acme.test").Return(u, nil)

		_, _, errWrong := deps.service.Login(ctx, "owner@acme.test", "not-the-password")

		assert.ErrorIs(t, errUnknown, autherrors.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, autherrors.ErrInvalidCredentials)
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		u := &user.User{
			ID:       uuid.New(),
			Email:    "gone@acme.test",
			Password: hashOf(t, "secret-pass"),
			IsActive: false,
		}
		deps.users.EXPECT().FindByEmail(gomock.Any(), "gone@acme.test").Return(u, nil)

		_, _, err := deps.service.Login(ctx, "gone@acme.test", "secret-pass")

		assert.ErrorIs(t, err, autherrors.ErrAccountDeactivated)
	})
}

func TestAuthService_UpdateMe(t *testing.T) {
	ctx := context.Background()

	t.Run("updates only the submitted fields", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		u := &user.User{
			ID:        uuid.New(),
			Email:     "owner@acme.test",
			FirstName: "Pat",
			LastName:  "Owner",
			Phone:     "+62-800",
			Role:      user.RoleParent,
			IsActive:  true,
		}
		deps.users.EXPECT().FindByID(gomock.Any(), u.ID).Return(u, nil)

		var saved *user.User
		deps.users.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, upd *user.User) error {
				saved = upd
				return nil
			})

		resp, err := deps.service.UpdateMe(ctx, u.ID.String(), auth.UpdateMeRequest{FirstName: "Patricia"})

		assert.NoError(t, err)
		assert.Equal(t, "Patricia", saved.FirstName)
		assert.Equal(t, "Owner", saved.LastName)
		assert.Equal(t, "+62-800", saved.Phone)
		assert.Equal(t, "Patricia Owner", resp.FullName)
	})

	t.Run("unknown user maps to not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.users.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.UpdateMe(ctx, uuid.NewString(), auth.UpdateMeRequest{FirstName: "X"})

		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})

	t.Run("malformed id is rejected before any lookup", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.UpdateMe(ctx, "not-a-uuid", auth.UpdateMeRequest{FirstName: "X"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}

func TestAuthService_RegisterCompany(t *testing.T) {
	ctx := context.Background()

	validReq := auth.RegisterCompanyRequest{
		Email:              "owner@acme.test",
		Password:           "secret-pass",
		ConfirmPassword:    "secret-pass",
		FirstName:          "Pat",
		LastName:           "Owner",
		CompanyName:        "Acme",
		RegistrationNumber: "REG-001",
	}

	t.Run("creates owner and company in one transaction", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.companies.EXPECT().WithTx(gomock.Any()).Return(deps.companies)

		var createdUser *user.User
		deps.users.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				createdUser = u
				return nil
			})

		var createdCompany *company.Company
		deps.companies.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *company.Company) error {
				createdCompany = c
				return nil
			})

		resp, err := deps.service.RegisterCompany(ctx, validReq)

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.Token.AccessToken)

		assert.Equal(t, user.RoleParent, createdUser.Role)
		// A PARENT has no membership reference; ownership lives on the
		// company row.
		assert.Nil(t, createdUser.CompanyID)
		assert.Equal(t, createdUser.ID, createdCompany.OwnerID)
		assert.Equal(t, "OTHER", createdCompany.Industry)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("password mismatch writes nothing", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validReq
		req.ConfirmPassword = "different"

		_, err := deps.service.RegisterCompany(ctx, req)

		assert.ErrorIs(t, err, autherrors.ErrPasswordMismatch)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate registration number leaves no stray owner", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.companies.EXPECT().WithTx(gomock.Any()).Return(deps.companies)

		deps.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.companies.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(errors.New(`duplicate key value violates unique constraint "uq_company_registration_number"`))

		_, err := deps.service.RegisterCompany(ctx, validReq)

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAuthService_ResolveActor(t *testing.T) {
	ctx := context.Background()

	t.Run("parent ownership resolved through company", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		userID := uuid.New()
		companyID := uuid.New()

		deps.users.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(&user.User{ID: userID, Role: user.RoleParent, IsActive: true}, nil)
		deps.companies.EXPECT().
			FindByOwner(gomock.Any(), userID).
			Return(&company.Company{ID: companyID, OwnerID: userID}, nil)

		actor, err := deps.service.ResolveActor(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, authz.RoleParent, actor.Role)
		assert.Nil(t, actor.CompanyID)
		assert.Equal(t, companyID, *actor.OwnedCompanyID)
	})

	t.Run("parent without company resolves with no ownership", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		userID := uuid.New()

		deps.users.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(&user.User{ID: userID, Role: user.RoleParent, IsActive: true}, nil)
		deps.companies.EXPECT().
			FindByOwner(gomock.Any(), userID).
			Return(nil, gorm.ErrRecordNotFound)

		actor, err := deps.service.ResolveActor(ctx, userID)

		assert.NoError(t, err)
		assert.Nil(t, actor.OwnedCompanyID)

		// The engine reports the broken link distinctly from a denial.
		_, rerr := authz.Resolve(actor, authz.ResourceDepartment, authz.ActionCreate)
		assert.ErrorIs(t, rerr, authz.ErrNoCompanyLinked)
	})

	t.Run("admin carries its membership reference", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		userID := uuid.New()
		companyID := uuid.New()

		deps.users.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(&user.User{
				ID:        userID,
				Role:      user.RoleAdmin,
				CompanyID: &companyID,
				IsActive:  true,
			}, nil)

		actor, err := deps.service.ResolveActor(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, authz.RoleAdmin, actor.Role)
		assert.Equal(t, companyID, *actor.CompanyID)
	})

	t.Run("deactivated user cannot act", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		userID := uuid.New()
		deps.users.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(&user.User{ID: userID, Role: user.RoleAdmin, IsActive: false}, nil)

		_, err := deps.service.ResolveActor(ctx, userID)

		assert.ErrorIs(t, err, autherrors.ErrAccountDeactivated)
	})
}
