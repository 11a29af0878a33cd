package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleParent   = "PARENT"
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
	RoleOther    = "OTHER"
)

// User is the identity record. CompanyID is the membership reference
// carried only by ADMIN and EMPLOYEE users; a PARENT owns its company
// through companies.owner_id instead.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID *uuid.UUID     `gorm:"type:uuid;index"`
	Email     string         `gorm:"type:varchar(255);uniqueIndex:uq_user_email;not null"`
	Password  string         `gorm:"type:varchar(255);not null"`
	FirstName string         `gorm:"type:varchar(150)"`
	LastName  string         `gorm:"type:varchar(150)"`
	Phone     string         `gorm:"type:varchar(50)"`
	Role      string         `gorm:"type:varchar(50);not null;default:'OTHER'"`
	IsActive  bool           `gorm:"not null;default:true"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
