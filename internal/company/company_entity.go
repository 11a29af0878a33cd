package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the tenant root. OwnerID points at the single PARENT user
// that registered it; everything else in the system hangs off ID.
type Company struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID            uuid.UUID      `gorm:"type:uuid;uniqueIndex:uq_company_owner;not null"`
	Name               string         `gorm:"type:varchar(150);not null"`
	RegistrationNumber string         `gorm:"type:varchar(100);uniqueIndex:uq_company_registration_number;not null"`
	Industry           string         `gorm:"type:varchar(100);default:'OTHER'"`
	Website            string         `gorm:"type:varchar(255)"`
	Address            string         `gorm:"type:varchar(255)"`
	City               string         `gorm:"type:varchar(100)"`
	State              string         `gorm:"type:varchar(100)"`
	PostalCode         string         `gorm:"type:varchar(20)"`
	Country            string         `gorm:"type:varchar(100)"`
	Phone              string         `gorm:"type:varchar(50)"`
	IsActive           bool           `gorm:"not null;default:true"`
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}
