package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "go-bms/internal/auth/errors"
	authzpkg "go-bms/internal/authz"
	"go-bms/internal/company"
	"go-bms/internal/shared/contextutil"
	"go-bms/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = time.Minute * 15
	refreshTokenTTL = time.Hour * 24 * 7
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, UserResponse, error)

	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, UserResponse, error)

	GetMe(ctx context.Context, userID string) (UserResponse, error)

	UpdateMe(ctx context.Context, userID string, req UpdateMeRequest) (UserResponse, error)

	// RegisterCompany creates the PARENT user and its company in one
	// transaction and signs the first token pair for the new owner.
	RegisterCompany(ctx context.Context, req RegisterCompanyRequest) (RegisterCompanyResponse, error)

	// ResolveActor satisfies middleware.ActorResolver.
	ResolveActor(ctx context.Context, userID uuid.UUID) (authzpkg.Actor, error)
}

type service struct {
	db        *gorm.DB
	users     user.Repository
	companies company.Repository
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	users user.Repository,
	companies company.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{db: db, users: users, companies: companies, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, UserResponse, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Same error whether the email is unknown or the password is
		// wrong, so login can not be used to probe for accounts.
		return TokenPair{}, UserResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return TokenPair{}, UserResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return TokenPair{}, UserResponse{}, autherrors.ErrAccountDeactivated
	}

	pair, err := s.issueTokenPair(u)
	if err != nil {
		return TokenPair{}, UserResponse{}, err
	}

	s.logger.Info("login succeeded",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)

	return pair, toUserResponse(u), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPair, UserResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return TokenPair{}, UserResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPair{}, UserResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return TokenPair{}, UserResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return TokenPair{}, UserResponse{}, autherrors.ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return TokenPair{}, UserResponse{}, autherrors.ErrUserNotFound
	}

	if !u.IsActive {
		return TokenPair{}, UserResponse{}, autherrors.ErrAccountDeactivated
	}

	pair, err := s.issueTokenPair(u)
	if err != nil {
		return TokenPair{}, UserResponse{}, err
	}

	return pair, toUserResponse(u), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return UserResponse{}, autherrors.ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, autherrors.ErrUserNotFound
	}

	return toUserResponse(u), nil
}

func (s *service) UpdateMe(ctx context.Context, userID string, req UpdateMeRequest) (UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return UserResponse{}, autherrors.ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, autherrors.ErrUserNotFound
	}

	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	if req.Phone != "" {
		u.Phone = req.Phone
	}

	if err := s.users.Update(ctx, u); err != nil {
		s.logger.Error("failed to update profile", zap.String("user_id", userID), zap.Error(err))
		return UserResponse{}, user.MapRepositoryError(err)
	}

	return toUserResponse(u), nil
}

func (s *service) RegisterCompany(ctx context.Context, req RegisterCompanyRequest) (RegisterCompanyResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if req.Password != req.ConfirmPassword {
		return RegisterCompanyResponse{}, autherrors.ErrPasswordMismatch
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterCompanyResponse{}, err
	}

	owner := &user.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      user.RoleParent,
		IsActive:  true,
	}

	comp := &company.Company{
		ID:                 uuid.New(),
		OwnerID:            owner.ID,
		Name:               req.CompanyName,
		RegistrationNumber: req.RegistrationNumber,
		Industry:           req.Industry,
		Website:            req.Website,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		PostalCode:         req.PostalCode,
		Country:            req.Country,
		Phone:              req.CompanyPhone,
		IsActive:           true,
	}
	if comp.Industry == "" {
		comp.Industry = "OTHER"
	}

	// Owner and company land together or not at all: a duplicate
	// registration number must not leave a stray PARENT user behind.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).Create(ctx, owner); err != nil {
			return user.MapRepositoryError(err)
		}
		if err := s.companies.WithTx(tx).Create(ctx, comp); err != nil {
			return company.MapRepositoryError(err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("company registration failed",
			zap.String("request_id", rid),
			zap.String("email", req.Email),
			zap.Error(err),
		)
		return RegisterCompanyResponse{}, err
	}

	pair, err := s.issueTokenPair(owner)
	if err != nil {
		return RegisterCompanyResponse{}, err
	}

	s.logger.Info("company registered",
		zap.String("request_id", rid),
		zap.String("user_id", owner.ID.String()),
		zap.String("company_id", comp.ID.String()),
	)

	return RegisterCompanyResponse{
		User:    toUserResponse(owner),
		Company: company.ToResponse(comp, company.Stats{}),
		Token:   pair,
	}, nil
}

// ResolveActor turns an authenticated user id into the authz.Actor the
// services authorize against. A PARENT carries no membership reference,
// so its company is looked up through companies.owner_id.
func (s *service) ResolveActor(ctx context.Context, userID uuid.UUID) (authzpkg.Actor, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return authzpkg.Actor{}, autherrors.ErrUserNotFound
	}

	if !u.IsActive {
		return authzpkg.Actor{}, autherrors.ErrAccountDeactivated
	}

	actor := authzpkg.Actor{
		UserID:    u.ID,
		Role:      authzpkg.ParseRole(u.Role),
		CompanyID: u.CompanyID,
	}

	if actor.Role == authzpkg.RoleParent {
		comp, err := s.companies.FindByOwner(ctx, u.ID)
		switch {
		case err == nil:
			actor.OwnedCompanyID = &comp.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Owner without a company row; the engine reports
			// NO_COMPANY_LINKED when the actor tries to act.
		default:
			return authzpkg.Actor{}, err
		}
	}

	return actor, nil
}

func (s *service) issueTokenPair(u *user.User) (TokenPair, error) {
	access, err := s.generateToken(u, accessTokenTTL)
	if err != nil {
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.generateToken(u, refreshTokenTTL)
	if err != nil {
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) generateToken(u *user.User, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"role":    u.Role,
		"exp":     time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
