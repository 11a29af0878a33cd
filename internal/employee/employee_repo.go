package employee

import (
	"context"

	"go-bms/internal/authz"
	"go-bms/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllInScope(ctx context.Context, scope authz.Scope) ([]Employee, error)
	FindByIDInScope(ctx context.Context, scope authz.Scope, id uuid.UUID) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
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

// scoped applies the authorization predicate. The scope and the lookup
// are one query: an id from another tenant, or a peer row outside an
// employee's self scope, resolves to record-not-found.
func scoped(db *gorm.DB, scope authz.Scope) *gorm.DB {
	db = db.Scopes(tenant.Scope(scope.CompanyID))
	if scope.SelfUserID != nil {
		db = db.Where("user_id = ?", *scope.SelfUserID)
	}
	return db
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAllInScope(ctx context.Context, scope authz.Scope) ([]Employee, error) {
	var empls []Employee
	err := scoped(r.db.WithContext(ctx), scope).
		Preload("User").
		Preload("Department").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDInScope(ctx context.Context, scope authz.Scope, id uuid.UUID) (*Employee, error) {
	var empl Employee
	err := scoped(r.db.WithContext(ctx), scope).
		Preload("User").
		Preload("Department").
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

// Delete is unscoped by id; services only call it after a scoped fetch
// inside the same transaction.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}
