package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee is the profile row backing an EMPLOYEE user. The linked
// user never outlives it: deleting an employee removes both rows in
// one transaction.
type Employee struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID  `gorm:"type:uuid;uniqueIndex:uq_employee_user;not null"`
	CompanyID      uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uq_employee_number"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid"`
	Role           string     `gorm:"type:varchar(100)"`
	EmployeeNumber string     `gorm:"type:varchar(50);uniqueIndex:uq_employee_number"`
	JoiningDate    time.Time  `gorm:"type:date;not null"`
	IsActive       bool       `gorm:"not null;default:true"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`

	User       *EmployeeUser       `gorm:"foreignKey:UserID"`
	Department *EmployeeDepartment `gorm:"foreignKey:DepartmentID"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeUser is the minimal join projection of the backing user.
type EmployeeUser struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	Email     string    `gorm:"column:email"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	IsActive  bool      `gorm:"column:is_active"`
}

func (EmployeeUser) TableName() string {
	return "users"
}

// EmployeeDepartment is the minimal join projection of the department.
type EmployeeDepartment struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	CompanyID uuid.UUID `gorm:"column:company_id"`
	Name      string    `gorm:"column:name"`
}

func (EmployeeDepartment) TableName() string {
	return "departments"
}
