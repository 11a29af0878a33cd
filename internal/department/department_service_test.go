package department_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-bms/internal/authz"
	"go-bms/internal/department"
	departmenterrors "go-bms/internal/department/errors"

	departmentMock "go-bms/internal/department/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	service   department.Service
	repo      *departmentMock.MockRepository
	redisMock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	rdb, redisMock := redismock.NewClientMock()
	repo := departmentMock.NewMockRepository(ctrl)

	svc := department.NewService(repo, rdb)

	return &serviceDeps{service: svc, repo: repo, redisMock: redisMock}
}

func adminActor(companyID uuid.UUID) authz.Actor {
	member := companyID
	return authz.Actor{
		UserID:    uuid.New(),
		Role:      authz.RoleAdmin,
		CompanyID: &member,
	}
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("department lands in the actor's company", func(t *testing.T) {
		deps := setupServiceTest(t)

		var created *department.Department
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, d *department.Department) error {
				created = d
				return nil
			})
		deps.redisMock.ExpectDel(department.GetDepartmentOptionsKey(companyID)).SetVal(1)

		resp, err := deps.service.Create(ctx, adminActor(companyID), department.CreateDepartmentRequest{Name: "Engineering"})

		assert.NoError(t, err)
		assert.Equal(t, "Engineering", resp.Name)
		assert.Equal(t, companyID, created.CompanyID)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("duplicate name within the company conflicts", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_department_company_name"})

		_, err := deps.service.Create(ctx, adminActor(companyID), department.CreateDepartmentRequest{Name: "Engineering"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentAlreadyExists)
	})

	t.Run("employee role is denied", func(t *testing.T) {
		deps := setupServiceTest(t)

		member := companyID
		actor := authz.Actor{UserID: uuid.New(), Role: authz.RoleEmployee, CompanyID: &member}

		_, err := deps.service.Create(ctx, actor, department.CreateDepartmentRequest{Name: "Engineering"})

		assert.ErrorIs(t, err, authz.ErrDenied)
	})
}

func TestDepartmentService_GetOptions(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	cacheKey := department.GetDepartmentOptionsKey(companyID)

	t.Run("cache hit skips the database", func(t *testing.T) {
		deps := setupServiceTest(t)

		cached := []department.DepartmentResponse{
			{ID: uuid.NewString(), Name: "HR"},
			{ID: uuid.NewString(), Name: "IT"},
		}
		payload, _ := json.Marshal(cached)
		deps.redisMock.ExpectGet(cacheKey).SetVal(string(payload))

		resp, err := deps.service.GetOptions(ctx, adminActor(companyID))

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "HR", resp[0].Name)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss loads from the database and fills the cache", func(t *testing.T) {
		deps := setupServiceTest(t)

		depts := []department.Department{
			{ID: uuid.New(), CompanyID: companyID, Name: "Finance"},
		}
		deps.redisMock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().
			FindAllByCompany(gomock.Any(), companyID).
			Return(depts, nil)

		expected, _ := json.Marshal([]department.DepartmentResponse{
			{
				ID:        depts[0].ID.String(),
				CompanyID: companyID.String(),
				Name:      "Finance",
				CreatedAt: depts[0].CreatedAt.Format(time.RFC3339),
				UpdatedAt: depts[0].UpdatedAt.Format(time.RFC3339),
			},
		})
		deps.redisMock.ExpectSet(cacheKey, expected, 30*time.Minute).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx, adminActor(companyID))

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Finance", resp[0].Name)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("delete invalidates the options cache", func(t *testing.T) {
		deps := setupServiceTest(t)

		deptID := uuid.New()
		deps.repo.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, deptID).
			Return(&department.Department{ID: deptID, CompanyID: companyID}, nil)
		deps.repo.EXPECT().Delete(gomock.Any(), companyID, deptID).Return(nil)
		deps.redisMock.ExpectDel(department.GetDepartmentOptionsKey(companyID)).SetVal(1)

		err := deps.service.Delete(ctx, adminActor(companyID), deptID.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("cross tenant id reads as not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		deptID := uuid.New()
		deps.repo.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, deptID).
			Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, adminActor(companyID), deptID.String())

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}
