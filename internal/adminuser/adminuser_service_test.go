package adminuser_test

import (
	"context"
	"database/sql"
	"testing"

	"go-bms/internal/adminuser"
	adminusererrors "go-bms/internal/adminuser/errors"
	"go-bms/internal/authz"
	"go-bms/internal/user"
	usererrors "go-bms/internal/user/errors"

	userMock "go-bms/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service adminuser.Service
	users   *userMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	users := userMock.NewMockRepository(ctrl)
	svc := adminuser.NewService(gormDB, users)

	return &serviceDeps{db: db, sqlMock: sqlMock, service: svc, users: users}
}

func parentActor(companyID uuid.UUID) authz.Actor {
	return authz.Actor{
		UserID:         uuid.New(),
		Role:           authz.RoleParent,
		OwnedCompanyID: &companyID,
	}
}

func TestAdminUserService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	req := adminuser.CreateAdminUserRequest{
		Email:     "admin@acme.test",
		Password:  "secret-pass",
		FirstName: "Ada",
		LastName:  "Admin",
	}

	t.Run("parent provisions an admin inside its own company", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)

		var created *user.User
		deps.users.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				created = u
				return nil
			})

		resp, err := deps.service.Create(ctx, parentActor(companyID), req)

		assert.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, created.Role)
		assert.Equal(t, companyID, *created.CompanyID)
		assert.Equal(t, companyID.String(), resp.CompanyID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("admin cannot mint other admins", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		memberCompany := companyID
		actor := authz.Actor{
			UserID:    uuid.New(),
			Role:      authz.RoleAdmin,
			CompanyID: &memberCompany,
		}

		_, err := deps.service.Create(ctx, actor, req)

		assert.ErrorIs(t, err, authz.ErrDenied)
	})

	t.Run("duplicate email maps to the field conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.users.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_user_email"})

		_, err := deps.service.Create(ctx, parentActor(companyID), req)

		assert.ErrorIs(t, err, usererrors.ErrEmailAlreadyRegistered)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAdminUserService_GetAll(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	companyID := uuid.New()
	memberCompany := companyID

	deps.users.EXPECT().
		FindAdminsByCompany(gomock.Any(), companyID).
		Return([]user.User{
			{ID: uuid.New(), Role: user.RoleAdmin, CompanyID: &memberCompany},
		}, nil)

	resp, err := deps.service.GetAll(context.Background(), parentActor(companyID))

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, companyID.String(), resp[0].CompanyID)
}

func TestAdminUserService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("scoped fetch then delete in one transaction", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		adminID := uuid.New()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.users.EXPECT().
			FindAdminByIDAndCompany(gomock.Any(), companyID, adminID).
			Return(&user.User{ID: adminID, Role: user.RoleAdmin}, nil)
		deps.users.EXPECT().Delete(gomock.Any(), adminID).Return(nil)

		err := deps.service.Delete(ctx, parentActor(companyID), adminID.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("cross tenant admin id reads as not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		adminID := uuid.New()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.users.EXPECT().
			FindAdminByIDAndCompany(gomock.Any(), companyID, adminID).
			Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, parentActor(companyID), adminID.String())

		assert.ErrorIs(t, err, adminusererrors.ErrAdminUserNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
