package department

import (
	"context"
	"encoding/json"
	"time"

	"go-bms/internal/authz"
	departmenterrors "go-bms/internal/department/errors"
	"go-bms/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DepartmentOptionsKeyPrefix = "departments:options:"

func GetDepartmentOptionsKey(companyID uuid.UUID) string {
	return DepartmentOptionsKeyPrefix + companyID.String()
}

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor authz.Actor, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, actor authz.Actor) ([]DepartmentResponse, error)
	GetOptions(ctx context.Context, actor authz.Actor) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, actor authz.Actor, id string) (DepartmentResponse, error)
	Update(ctx context.Context, actor authz.Actor, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, actor authz.Actor, id string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	actor authz.Actor,
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create department requested",
		zap.String("request_id", rid),
		zap.String("name", req.Name),
	)

	scope, err := authz.Resolve(actor, authz.ResourceDepartment, authz.ActionCreate)
	if err != nil {
		return DepartmentResponse{}, err
	}

	dept := &Department{
		ID:        uuid.New(),
		Name:      req.Name,
		CompanyID: scope.CompanyID,
	}

	if err := s.repo.Create(ctx, dept); err != nil {
		s.logger.Error("create department persist failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, scope.CompanyID)

	s.logger.Info("create department success",
		zap.String("request_id", rid),
		zap.String("department_id", dept.ID.String()),
	)

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(
	ctx context.Context,
	actor authz.Actor,
) ([]DepartmentResponse, error) {
	scope, err := authz.Resolve(actor, authz.ResourceDepartment, authz.ActionRead)
	if err != nil {
		return nil, err
	}

	depts, err := s.repo.FindAllByCompany(ctx, scope.CompanyID)
	if err != nil {
		s.logger.Error("get all departments failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(depts), nil
}

// GetOptions is the dropdown feed: cached in redis, reads collapsed
// with singleflight so a burst of identical lookups hits the database
// once.
func (s *service) GetOptions(ctx context.Context, actor authz.Actor) ([]DepartmentResponse, error) {
	scope, err := authz.Resolve(actor, authz.ResourceDepartment, authz.ActionRead)
	if err != nil {
		return nil, err
	}

	cacheKey := GetDepartmentOptionsKey(scope.CompanyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []DepartmentResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		depts, err := s.repo.FindAllByCompany(ctx, scope.CompanyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(depts)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 30*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]DepartmentResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	actor authz.Actor,
	id string,
) (DepartmentResponse, error) {
	scope, err := authz.Resolve(actor, authz.ResourceDepartment, authz.ActionRead)
	if err != nil {
		return DepartmentResponse{}, err
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	dept, err := s.repo.FindByIDAndCompany(ctx, scope.CompanyID, uid)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(
	ctx context.Context,
	actor authz.Actor,
	id string,
	req UpdateDepartmentRequest,
) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	scope, err := authz.Resolve(actor, authz.ResourceDepartment, authz.ActionUpdate)
	if err != nil {
		return DepartmentResponse{}, err
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	dept, err := s.repo.FindByIDAndCompany(ctx, scope.CompanyID, uid)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	dept.Name = req.Name

	if err := s.repo.Update(ctx, dept); err != nil {
		s.logger.Error("update department persist failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, scope.CompanyID)

	s.logger.Info("update department success",
		zap.String("request_id", rid),
		zap.String("department_id", id),
	)

	return mapToResponse(*dept), nil
}

func (s *service) Delete(
	ctx context.Context,
	actor authz.Actor,
	id string,
) error {
	rid := contextutil.GetRequestID(ctx)

	scope, err := authz.Resolve(actor, authz.ResourceDepartment, authz.ActionDelete)
	if err != nil {
		return err
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}

	// Scoped fetch first so an out-of-tenant id reports NotFound.
	if _, err := s.repo.FindByIDAndCompany(ctx, scope.CompanyID, uid); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, scope.CompanyID, uid); err != nil {
		s.logger.Error("delete department failed", zap.String("request_id", rid), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, scope.CompanyID)

	s.logger.Info("delete department success",
		zap.String("request_id", rid),
		zap.String("department_id", id),
	)
	return nil
}

func (s *service) invalidateOptions(ctx context.Context, companyID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetDepartmentOptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate department options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        dept.ID.String(),
		CompanyID: dept.CompanyID.String(),
		Name:      dept.Name,
		CreatedAt: dept.CreatedAt.Format(time.RFC3339),
		UpdatedAt: dept.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
