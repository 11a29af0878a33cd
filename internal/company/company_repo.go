package company

import (
	"context"

	"go-bms/internal/tenant"
	"go-bms/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stats are the per-tenant row counts shown on the company detail.
type Stats struct {
	Departments int64
	Employees   int64
	Admins      int64
}

//go:generate mockgen -destination=mock/company_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, company *Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*Company, error)
	StatsByCompany(ctx context.Context, companyID uuid.UUID) (Stats, error)
	Update(ctx context.Context, company *Company) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	return &company, err
}

func (r *repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).First(&company, "owner_id = ?", ownerID).Error
	return &company, err
}

func (r *repository) StatsByCompany(ctx context.Context, companyID uuid.UUID) (Stats, error) {
	var stats Stats

	err := r.db.WithContext(ctx).
		Table("departments").
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		Count(&stats.Departments).Error
	if err != nil {
		return Stats{}, err
	}

	err = r.db.WithContext(ctx).
		Table("employees").
		Scopes(tenant.Scope(companyID)).
		Count(&stats.Employees).Error
	if err != nil {
		return Stats{}, err
	}

	err = r.db.WithContext(ctx).
		Table("users").
		Scopes(tenant.Scope(companyID)).
		Where("role = ?", user.RoleAdmin).
		Where("deleted_at IS NULL").
		Count(&stats.Admins).Error
	if err != nil {
		return Stats{}, err
	}

	return stats, nil
}

func (r *repository) Update(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}
