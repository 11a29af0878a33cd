package employee

import (
	"context"
	"fmt"
	"time"

	"go-bms/internal/authz"
	"go-bms/internal/company"
	"go-bms/internal/department"
	employeeerrors "go-bms/internal/employee/errors"
	"go-bms/internal/shared/contextutil"
	"go-bms/internal/shared/counter"
	"go-bms/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const employeeNumberCounter = "employee_number"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor authz.Actor, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, actor authz.Actor) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, actor authz.Actor, id string) (EmployeeResponse, error)
	Update(ctx context.Context, actor authz.Actor, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, actor authz.Actor, id string) error
}

type service struct {
	db          *gorm.DB
	repo        Repository
	users       user.Repository
	companies   company.Repository
	departments department.Repository
	counter     counter.Repository
	logger      *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	users user.Repository,
	companies company.Repository,
	departments department.Repository,
	counterRepo counter.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		users:       users,
		companies:   companies,
		departments: departments,
		counter:     counterRepo,
		logger:      l,
	}
}

// Create provisions the backing EMPLOYEE user and the employee profile
// in one transaction: a failure at either step leaves no orphan rows.
func (s *service) Create(
	ctx context.Context,
	actor authz.Actor,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", req.CompanyID),
		zap.String("email", req.Email),
	)

	scope, err := authz.Resolve(actor, authz.ResourceEmployee, authz.ActionCreate)
	if err != nil {
		return EmployeeResponse{}, err
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil || companyID != scope.CompanyID {
		// A well-formed id from another tenant resolves the same as a
		// missing one.
		return EmployeeResponse{}, employeeerrors.ErrCompanyNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return EmployeeResponse{}, err
	}

	var empl *Employee

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		usersTx := s.users.WithTx(tx)
		companiesTx := s.companies.WithTx(tx)
		departmentsTx := s.departments.WithTx(tx)
		counterTx := s.counter.WithTx(tx)

		if _, err := companiesTx.FindByID(ctx, companyID); err != nil {
			s.logger.Warn("create employee company not found",
				zap.String("request_id", rid),
				zap.String("company_id", req.CompanyID),
			)
			return employeeerrors.ErrCompanyNotFound
		}

		var departmentID *uuid.UUID
		if req.DepartmentID != "" {
			deptID, err := uuid.Parse(req.DepartmentID)
			if err != nil {
				return employeeerrors.ErrDepartmentNotFound
			}
			if _, err := departmentsTx.FindByIDAndCompany(ctx, companyID, deptID); err != nil {
				return employeeerrors.ErrDepartmentNotFound
			}
			departmentID = &deptID
		}

		companyRef := companyID
		u := &user.User{
			ID:        uuid.New(),
			CompanyID: &companyRef,
			Email:     req.Email,
			Password:  string(hashed),
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      user.RoleEmployee,
			IsActive:  true,
		}
		if err := usersTx.Create(ctx, u); err != nil {
			s.logger.Error("create employee user persist failed", zap.String("request_id", rid), zap.Error(err))
			return user.MapRepositoryError(err)
		}

		nextVal, err := counterTx.GetNextValue(ctx, companyID.String(), employeeNumberCounter)
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.String("request_id", rid), zap.Error(err))
			return err
		}

		empl = &Employee{
			ID:             uuid.New(),
			UserID:         u.ID,
			CompanyID:      companyID,
			DepartmentID:   departmentID,
			Role:           req.Role,
			EmployeeNumber: fmt.Sprintf("EMP-%06d", nextVal),
			JoiningDate:    time.Now().UTC(),
			IsActive:       true,
		}
		if err := qtx.Create(ctx, empl); err != nil {
			s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
			return mapRepositoryError(err)
		}

		return nil
	})
	if err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	// Re-read to pick up the preloaded user/department projections.
	created, err := s.repo.FindByIDInScope(ctx, scope, empl.ID)
	if err != nil {
		return mapToResponse(*empl), nil
	}
	return mapToResponse(*created), nil
}

func (s *service) GetAll(
	ctx context.Context,
	actor authz.Actor,
) ([]EmployeeResponse, error) {
	scope, err := authz.Resolve(actor, authz.ResourceEmployee, authz.ActionRead)
	if err != nil {
		return nil, err
	}

	empls, err := s.repo.FindAllInScope(ctx, scope)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetByID(
	ctx context.Context,
	actor authz.Actor,
	id string,
) (EmployeeResponse, error) {
	scope, err := authz.Resolve(actor, authz.ResourceEmployee, authz.ActionRead)
	if err != nil {
		return EmployeeResponse{}, err
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByIDInScope(ctx, scope, uid)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	actor authz.Actor,
	id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	scope, err := authz.Resolve(actor, authz.ResourceEmployee, authz.ActionUpdate)
	if err != nil {
		return EmployeeResponse{}, err
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	var empl *Employee

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		departmentsTx := s.departments.WithTx(tx)

		empl, err = qtx.FindByIDInScope(ctx, scope, uid)
		if err != nil {
			return mapRepositoryError(err)
		}

		if req.Role != "" {
			empl.Role = req.Role
		}
		if req.IsActive != nil {
			empl.IsActive = *req.IsActive
		}
		if req.DepartmentID != nil {
			if *req.DepartmentID == "" {
				empl.DepartmentID = nil
			} else {
				deptID, err := uuid.Parse(*req.DepartmentID)
				if err != nil {
					return employeeerrors.ErrDepartmentNotFound
				}
				if _, err := departmentsTx.FindByIDAndCompany(ctx, scope.CompanyID, deptID); err != nil {
					return employeeerrors.ErrDepartmentNotFound
				}
				empl.DepartmentID = &deptID
			}
		}

		if err := qtx.Update(ctx, empl); err != nil {
			s.logger.Error("update employee persist failed", zap.String("request_id", rid), zap.Error(err))
			return mapRepositoryError(err)
		}
		return nil
	})
	if err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	updated, err := s.repo.FindByIDInScope(ctx, scope, uid)
	if err != nil {
		return mapToResponse(*empl), nil
	}
	return mapToResponse(*updated), nil
}

// Delete removes the employee row and its backing user together. The
// scoped fetch and both deletes share one transaction, so the user
// never outlives the profile and vice versa.
func (s *service) Delete(
	ctx context.Context,
	actor authz.Actor,
	id string,
) error {
	rid := contextutil.GetRequestID(ctx)

	scope, err := authz.Resolve(actor, authz.ResourceEmployee, authz.ActionDelete)
	if err != nil {
		return err
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		usersTx := s.users.WithTx(tx)

		empl, err := qtx.FindByIDInScope(ctx, scope, uid)
		if err != nil {
			return mapRepositoryError(err)
		}

		if err := qtx.Delete(ctx, empl.ID); err != nil {
			s.logger.Error("delete employee failed", zap.String("request_id", rid), zap.Error(err))
			return mapRepositoryError(err)
		}

		if err := usersTx.Delete(ctx, empl.UserID); err != nil {
			s.logger.Error("delete employee user failed", zap.String("request_id", rid), zap.Error(err))
			return user.MapRepositoryError(err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)
	return nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID.String(),
		UserID:         empl.UserID.String(),
		CompanyID:      empl.CompanyID.String(),
		Role:           empl.Role,
		EmployeeNumber: empl.EmployeeNumber,
		JoiningDate:    empl.JoiningDate.Format("2006-01-02"),
		IsActive:       empl.IsActive,
	}
	if empl.DepartmentID != nil {
		resp.DepartmentID = empl.DepartmentID.String()
	}
	if empl.User != nil {
		resp.User = &EmployeeUserResponse{
			ID:        empl.User.ID.String(),
			Email:     empl.User.Email,
			FirstName: empl.User.FirstName,
			LastName:  empl.User.LastName,
			IsActive:  empl.User.IsActive,
		}
	}
	if empl.Department != nil {
		resp.Department = &EmployeeDepartmentResponse{
			ID:   empl.Department.ID.String(),
			Name: empl.Department.Name,
		}
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
