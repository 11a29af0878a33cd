package auth

import (
	"time"

	"github.com/google/uuid"

	"go-bms/internal/company"
	"go-bms/internal/user"
)

type RegisterCompanyRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Phone           string `json:"phone"`

	CompanyName        string `json:"company_name" binding:"required"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
	Industry           string `json:"industry"`
	Website            string `json:"website"`
	CompanyPhone       string `json:"company_phone"`
	Address            string `json:"address"`
	City               string `json:"city"`
	State              string `json:"state"`
	PostalCode         string `json:"postal_code"`
	Country            string `json:"country"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateMeRequest carries the profile fields a user may change on
// their own account. Empty fields keep their stored value.
type UpdateMeRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	FullName  string     `json:"full_name"`
	Phone     string     `json:"phone,omitempty"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token TokenPair    `json:"token"`
}

type RegisterCompanyResponse struct {
	User    UserResponse            `json:"user"`
	Company company.CompanyResponse `json:"company"`
	Token   TokenPair               `json:"token"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CompanyID: u.CompanyID,
		CreatedAt: u.CreatedAt,
	}
}
