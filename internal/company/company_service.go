package company

import (
	"context"

	"go-bms/internal/authz"
	companyerrors "go-bms/internal/company/errors"
	"go-bms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, actor authz.Actor, id string) (CompanyResponse, error)
	Update(ctx context.Context, actor authz.Actor, id string, req UpdateCompanyRequest) (CompanyResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, logger: l}
}

// resolveTarget applies the scope predicate to the requested id. The
// company table is keyed by id, so the predicate collapses to an
// equality check: any id outside the scope is reported as absent, the
// same as a row that does not exist, so a probe cannot distinguish
// another tenant's company from nothing at all.
func resolveTarget(scope authz.Scope, id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, companyerrors.ErrInvalidCompanyID
	}
	if uid != scope.CompanyID {
		return uuid.Nil, companyerrors.ErrCompanyNotFound
	}
	return uid, nil
}

func (s *service) Get(ctx context.Context, actor authz.Actor, id string) (CompanyResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("get company requested",
		zap.String("request_id", rid),
		zap.String("company_id", id),
	)

	scope, err := authz.Resolve(actor, authz.ResourceCompany, authz.ActionRead)
	if err != nil {
		return CompanyResponse{}, err
	}

	uid, err := resolveTarget(scope, id)
	if err != nil {
		return CompanyResponse{}, err
	}

	comp, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		s.logger.Error("get company failed", zap.String("request_id", rid), zap.Error(err))
		return CompanyResponse{}, MapRepositoryError(err)
	}

	stats, err := s.repo.StatsByCompany(ctx, uid)
	if err != nil {
		s.logger.Error("get company stats failed", zap.String("request_id", rid), zap.Error(err))
		return CompanyResponse{}, MapRepositoryError(err)
	}

	return ToResponse(comp, stats), nil
}

func (s *service) Update(ctx context.Context, actor authz.Actor, id string, req UpdateCompanyRequest) (CompanyResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update company requested",
		zap.String("request_id", rid),
		zap.String("company_id", id),
	)

	scope, err := authz.Resolve(actor, authz.ResourceCompany, authz.ActionUpdate)
	if err != nil {
		return CompanyResponse{}, err
	}

	uid, err := resolveTarget(scope, id)
	if err != nil {
		return CompanyResponse{}, err
	}

	comp, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		s.logger.Error("update company fetch failed", zap.String("request_id", rid), zap.Error(err))
		return CompanyResponse{}, MapRepositoryError(err)
	}

	applyUpdate(comp, req)

	if err := s.repo.Update(ctx, comp); err != nil {
		s.logger.Error("update company persist failed", zap.String("request_id", rid), zap.Error(err))
		return CompanyResponse{}, MapRepositoryError(err)
	}

	stats, err := s.repo.StatsByCompany(ctx, uid)
	if err != nil {
		return CompanyResponse{}, MapRepositoryError(err)
	}

	s.logger.Info("update company success",
		zap.String("request_id", rid),
		zap.String("company_id", id),
	)

	return ToResponse(comp, stats), nil
}

func applyUpdate(comp *Company, req UpdateCompanyRequest) {
	if req.Name != "" {
		comp.Name = req.Name
	}
	if req.RegistrationNumber != "" {
		comp.RegistrationNumber = req.RegistrationNumber
	}
	if req.Industry != "" {
		comp.Industry = req.Industry
	}
	if req.Website != "" {
		comp.Website = req.Website
	}
	if req.Address != "" {
		comp.Address = req.Address
	}
	if req.City != "" {
		comp.City = req.City
	}
	if req.State != "" {
		comp.State = req.State
	}
	if req.PostalCode != "" {
		comp.PostalCode = req.PostalCode
	}
	if req.Country != "" {
		comp.Country = req.Country
	}
	if req.Phone != "" {
		comp.Phone = req.Phone
	}
	if req.IsActive != nil {
		comp.IsActive = *req.IsActive
	}
}

func ToResponse(c *Company, stats Stats) CompanyResponse {
	return CompanyResponse{
		ID:                 c.ID.String(),
		Name:               c.Name,
		RegistrationNumber: c.RegistrationNumber,
		Industry:           c.Industry,
		Website:            c.Website,
		Address:            c.Address,
		City:               c.City,
		State:              c.State,
		PostalCode:         c.PostalCode,
		Country:            c.Country,
		Phone:              c.Phone,
		IsActive:           c.IsActive,
		DepartmentCount:    stats.Departments,
		EmployeeCount:      stats.Employees,
		AdminCount:         stats.Admins,
	}
}
