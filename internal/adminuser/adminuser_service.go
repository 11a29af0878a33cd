package adminuser

import (
	"context"
	"errors"
	"time"

	adminusererrors "go-bms/internal/adminuser/errors"
	"go-bms/internal/authz"
	"go-bms/internal/shared/contextutil"
	"go-bms/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=adminuser_service.go -destination=mock/adminuser_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor authz.Actor, req CreateAdminUserRequest) (AdminUserResponse, error)
	GetAll(ctx context.Context, actor authz.Actor) ([]AdminUserResponse, error)
	GetByID(ctx context.Context, actor authz.Actor, id string) (AdminUserResponse, error)
	Delete(ctx context.Context, actor authz.Actor, id string) error
}

type service struct {
	db     *gorm.DB
	users  user.Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("adminuser.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("adminuser.service")
	}
	return &service{db: db, users: users, logger: l}
}

// Create provisions an ADMIN user inside the actor's owned company.
// The engine only grants admin_user create to PARENT actors; the
// company reference is fixed here and never changes afterwards.
func (s *service) Create(
	ctx context.Context,
	actor authz.Actor,
	req CreateAdminUserRequest,
) (AdminUserResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create admin user requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	scope, err := authz.Resolve(actor, authz.ResourceAdminUser, authz.ActionCreate)
	if err != nil {
		return AdminUserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AdminUserResponse{}, err
	}

	companyRef := scope.CompanyID
	u := &user.User{
		ID:        uuid.New(),
		CompanyID: &companyRef,
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      user.RoleAdmin,
		IsActive:  true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).Create(ctx, u); err != nil {
			s.logger.Error("create admin user persist failed", zap.String("request_id", rid), zap.Error(err))
			return user.MapRepositoryError(err)
		}
		return nil
	})
	if err != nil {
		return AdminUserResponse{}, err
	}

	s.logger.Info("create admin user success",
		zap.String("request_id", rid),
		zap.String("admin_user_id", u.ID.String()),
	)

	return mapToResponse(*u), nil
}

func (s *service) GetAll(
	ctx context.Context,
	actor authz.Actor,
) ([]AdminUserResponse, error) {
	scope, err := authz.Resolve(actor, authz.ResourceAdminUser, authz.ActionRead)
	if err != nil {
		return nil, err
	}

	admins, err := s.users.FindAdminsByCompany(ctx, scope.CompanyID)
	if err != nil {
		s.logger.Error("get all admin users failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(admins), nil
}

func (s *service) GetByID(
	ctx context.Context,
	actor authz.Actor,
	id string,
) (AdminUserResponse, error) {
	scope, err := authz.Resolve(actor, authz.ResourceAdminUser, authz.ActionRead)
	if err != nil {
		return AdminUserResponse{}, err
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return AdminUserResponse{}, adminusererrors.ErrInvalidAdminUserID
	}

	u, err := s.users.FindAdminByIDAndCompany(ctx, scope.CompanyID, uid)
	if err != nil {
		return AdminUserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*u), nil
}

func (s *service) Delete(
	ctx context.Context,
	actor authz.Actor,
	id string,
) error {
	rid := contextutil.GetRequestID(ctx)

	scope, err := authz.Resolve(actor, authz.ResourceAdminUser, authz.ActionDelete)
	if err != nil {
		return err
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return adminusererrors.ErrInvalidAdminUserID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		usersTx := s.users.WithTx(tx)

		u, err := usersTx.FindAdminByIDAndCompany(ctx, scope.CompanyID, uid)
		if err != nil {
			return mapRepositoryError(err)
		}

		if err := usersTx.Delete(ctx, u.ID); err != nil {
			s.logger.Error("delete admin user failed", zap.String("request_id", rid), zap.Error(err))
			return mapRepositoryError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("delete admin user success",
		zap.String("request_id", rid),
		zap.String("admin_user_id", id),
	)
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return adminusererrors.ErrAdminUserNotFound
	}
	return user.MapRepositoryError(err)
}

func mapToResponse(u user.User) AdminUserResponse {
	resp := AdminUserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.CompanyID != nil {
		resp.CompanyID = u.CompanyID.String()
	}
	return resp
}

func mapToListResponse(users []user.User) []AdminUserResponse {
	res := make([]AdminUserResponse, len(users))
	for i, u := range users {
		res[i] = mapToResponse(u)
	}
	return res
}
