package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-bms/internal/auth"
	autherrors "go-bms/internal/auth/errors"
	"go-bms/internal/authz"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAuthService struct {
	LoginFn           func(ctx context.Context, email, password string) (auth.TokenPair, auth.UserResponse, error)
	RefreshTokenFn    func(ctx context.Context, refreshToken string) (auth.TokenPair, auth.UserResponse, error)
	GetMeFn           func(ctx context.Context, userID string) (auth.UserResponse, error)
	UpdateMeFn        func(ctx context.Context, userID string, req auth.UpdateMeRequest) (auth.UserResponse, error)
	RegisterCompanyFn func(ctx context.Context, req auth.RegisterCompanyRequest) (auth.RegisterCompanyResponse, error)
	ResolveActorFn    func(ctx context.Context, userID uuid.UUID) (authz.Actor, error)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (auth.TokenPair, auth.UserResponse, error) {
	return f.LoginFn(ctx, email, password)
}
func (f *fakeAuthService) RefreshToken(ctx context.Context, refreshToken string) (auth.TokenPair, auth.UserResponse, error) {
	return f.RefreshTokenFn(ctx, refreshToken)
}
func (f *fakeAuthService) GetMe(ctx context.Context, userID string) (auth.UserResponse, error) {
	return f.GetMeFn(ctx, userID)
}
func (f *fakeAuthService) UpdateMe(ctx context.Context, userID string, req auth.UpdateMeRequest) (auth.UserResponse, error) {
	return f.UpdateMeFn(ctx, userID, req)
}
func (f *fakeAuthService) RegisterCompany(ctx context.Context, req auth.RegisterCompanyRequest) (auth.RegisterCompanyResponse, error) {
	return f.RegisterCompanyFn(ctx, req)
}
func (f *fakeAuthService) ResolveActor(ctx context.Context, userID uuid.UUID) (authz.Actor, error) {
	return f.ResolveActorFn(ctx, userID)
}

func newHandlerContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success returns 201 with tokens", func(t *testing.T) {
		svc := &fakeAuthService{
			RegisterCompanyFn: func(_ context.Context, req auth.RegisterCompanyRequest) (auth.RegisterCompanyResponse, error) {
				assert.Equal(t, "Acme", req.CompanyName)
				return auth.RegisterCompanyResponse{
					Token: auth.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
				}, nil
			},
		}
		h := auth.NewHandler(svc)

		body := `{"email":"owner@acme.test","password":"secret-pass","confirm_password":"secret-pass","first_name":"Pat","last_name":"Owner","company_name":"Acme","registration_number":"REG-001"}`
		c, w := newHandlerContext(t, http.MethodPost, "/api/v1/auth/register", body)

		h.Register(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "acc")
		// Web clients also get the pair as cookies.
		cookies := w.Result().Cookies()
		names := make([]string, 0, len(cookies))
		for _, ck := range cookies {
			names = append(names, ck.Name)
		}
		assert.Contains(t, names, "access_token")
		assert.Contains(t, names, "refresh_token")
	})

	t.Run("mismatched passwords map to a field error", func(t *testing.T) {
		svc := &fakeAuthService{
			RegisterCompanyFn: func(context.Context, auth.RegisterCompanyRequest) (auth.RegisterCompanyResponse, error) {
				return auth.RegisterCompanyResponse{}, autherrors.ErrPasswordMismatch
			},
		}
		h := auth.NewHandler(svc)

		body := `{"email":"owner@acme.test","password":"secret-pass","confirm_password":"different","first_name":"Pat","last_name":"Owner","company_name":"Acme","registration_number":"REG-001"}`
		c, w := newHandlerContext(t, http.MethodPost, "/api/v1/auth/register", body)

		h.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "password")
	})

	t.Run("missing company name fails binding", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})

		body := `{"email":"owner@acme.test","password":"secret-pass","confirm_password":"secret-pass","first_name":"Pat","last_name":"Owner","registration_number":"REG-001"}`
		c, w := newHandlerContext(t, http.MethodPost, "/api/v1/auth/register", body)

		h.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_RegisterIdempotency(t *testing.T) {
	t.Run("success caches the response and releases the lock", func(t *testing.T) {
		resp := auth.RegisterCompanyResponse{
			Token: auth.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
		}
		svc := &fakeAuthService{
			RegisterCompanyFn: func(context.Context, auth.RegisterCompanyRequest) (auth.RegisterCompanyResponse, error) {
				return resp, nil
			},
		}
		rdb, redisMock := redismock.NewClientMock()
		h := auth.NewHandlerWithRedis(svc, rdb)

		cacheKey := "idemp:/api/v1/auth/register:10.0.0.1:req-1"
		payload, err := json.Marshal(resp)
		assert.NoError(t, err)
		redisMock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
		redisMock.ExpectDel(cacheKey + ":lock").SetVal(1)

		body := `{"email":"owner@acme.test","password":"secret-pass","confirm_password":"secret-pass","first_name":"Pat","last_name":"Owner","company_name":"Acme","registration_number":"REG-001"}`
		c, w := newHandlerContext(t, http.MethodPost, "/api/v1/auth/register", body)
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", cacheKey+":lock")

		h.Register(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("failed registration only releases the lock", func(t *testing.T) {
		svc := &fakeAuthService{
			RegisterCompanyFn: func(context.Context, auth.RegisterCompanyRequest) (auth.RegisterCompanyResponse, error) {
				return auth.RegisterCompanyResponse{}, autherrors.ErrPasswordMismatch
			},
		}
		rdb, redisMock := redismock.NewClientMock()
		h := auth.NewHandlerWithRedis(svc, rdb)

		cacheKey := "idemp:/api/v1/auth/register:10.0.0.1:req-2"
		redisMock.ExpectDel(cacheKey + ":lock").SetVal(1)

		body := `{"email":"owner@acme.test","password":"secret-pass","confirm_password":"different","first_name":"Pat","last_name":"Owner","company_name":"Acme","registration_number":"REG-001"}`
		c, w := newHandlerContext(t, http.MethodPost, "/api/v1/auth/register", body)
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", cacheKey+":lock")

		h.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("bad credentials stay a 401", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(context.Context, string, string) (auth.TokenPair, auth.UserResponse, error) {
				return auth.TokenPair{}, auth.UserResponse{}, autherrors.ErrInvalidCredentials
			},
		}
		h := auth.NewHandler(svc)

		body := `{"email":"owner@acme.test","password":"wrong"}`
		c, w := newHandlerContext(t, http.MethodPost, "/api/v1/auth/login", body)

		h.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("success carries the user payload", func(t *testing.T) {
		userID := uuid.New()
		svc := &fakeAuthService{
			LoginFn: func(_ context.Context, email, _ string) (auth.TokenPair, auth.UserResponse, error) {
				return auth.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
					auth.UserResponse{ID: userID, Email: email, Role: "PARENT"}, nil
			},
		}
		h := auth.NewHandler(svc)

		body := `{"email":"owner@acme.test","password":"secret-pass"}`
		c, w := newHandlerContext(t, http.MethodPost, "/api/v1/auth/login", body)

		h.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
		assert.Contains(t, w.Body.String(), "PARENT")
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("missing auth context is unauthorized", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})

		c, w := newHandlerContext(t, http.MethodGet, "/api/v1/auth/me", "")

		h.Me(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("returns the resolved profile", func(t *testing.T) {
		userID := uuid.New()
		svc := &fakeAuthService{
			GetMeFn: func(_ context.Context, id string) (auth.UserResponse, error) {
				assert.Equal(t, userID.String(), id)
				return auth.UserResponse{ID: userID, Email: "owner@acme.test"}, nil
			},
		}
		h := auth.NewHandler(svc)

		c, w := newHandlerContext(t, http.MethodGet, "/api/v1/auth/me", "")
		c.Set("user_id", userID.String())

		h.Me(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "owner@acme.test")
	})
}

func TestAuthHandler_UpdateMe(t *testing.T) {
	t.Run("missing auth context is unauthorized", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})

		c, w := newHandlerContext(t, http.MethodPut, "/api/v1/auth/me", `{"first_name":"Pat"}`)

		h.UpdateMe(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("updates the actor's own profile", func(t *testing.T) {
		userID := uuid.New()
		svc := &fakeAuthService{
			UpdateMeFn: func(_ context.Context, id string, req auth.UpdateMeRequest) (auth.UserResponse, error) {
				assert.Equal(t, userID.String(), id)
				assert.Equal(t, "Patricia", req.FirstName)
				assert.Equal(t, "+62-811", req.Phone)
				return auth.UserResponse{ID: userID, FirstName: req.FirstName, Phone: req.Phone}, nil
			},
		}
		h := auth.NewHandler(svc)

		c, w := newHandlerContext(t, http.MethodPut, "/api/v1/auth/me", `{"first_name":"Patricia","phone":"+62-811"}`)
		c.Set("user_id", userID.String())

		h.UpdateMe(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Patricia")
	})
}
