package auth

import (
	"buysell_server/api/middleware"
	"buysell_server/lib"
	"buysell_server/services"
	"buysell_server/structs"
	"buysell_server/structs/tables"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) CreateUser(ctx context.Context, user *tables.User, plainPassword string) (bool, error) {
	args := m.Called(ctx, user, plainPassword)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (*tables.User, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(0).(*tables.User)
	return u, args.Error(1)
}

func (m *mockUserService) GetUserByPrincipal(ctx context.Context, principal string) (*tables.User, error) {
	args := m.Called(ctx, principal)
	u, _ := args.Get(0).(*tables.User)
	return u, args.Error(1)
}

type memoryBlacklist map[uuid.UUID]time.Time

func (m memoryBlacklist) BlacklistToken(_ context.Context, jti uuid.UUID, exp time.Time) error {
	m[jti] = exp
	return nil
}

func (m memoryBlacklist) IsTokenBlacklisted(_ context.Context, jti uuid.UUID) (bool, error) {
	_, ok := m[jti]
	return ok, nil
}

var jane = &tables.User{ID: 4, Email: "jane@example.com", Name: "Jane", Active: true, Roles: []string{tables.RoleUser}}

func newTestRouter(users UserService, blacklist services.TokenBlacklist) chi.Router {
	logger := gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.ParseLogLevel("error"))))
	cfg := &structs.Config{Auth: &structs.AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		BlacklistCacheTTL: time.Hour,
	}}
	tokens := services.NewAuthService(cfg, logger, blacklist)
	mw := middleware.NewMiddleware(cfg, logger, tokens, nil)

	r := chi.NewRouter()
	NewAuthRoutesManager(logger, users, tokens, mw).RegisterRoutes(r)
	return r
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: lib.CSRFCookieName, Value: "csrf"})
	req.Header.Set(lib.CSRFHeaderName, "csrf")
	return req
}

func accessCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == lib.AccessCookieName {
			return c
		}
	}
	return nil
}

func TestHandleCSRF(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(new(mockUserService), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/csrf", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == lib.CSRFCookieName {
			found = true
			assert.NotEmpty(t, c.Value)
			assert.Contains(t, rec.Body.String(), c.Value)
		}
	}
	assert.True(t, found)
}

func TestHandleRegister(t *testing.T) {
	body := `{"email":"jane@example.com","name":"Jane","password":"correct horse"}`

	t.Run("created", func(t *testing.T) {
		users := new(mockUserService)
		users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *tables.User) bool { return u.Email == "jane@example.com" }), "correct horse").
			Return(true, nil)

		rec := httptest.NewRecorder()
		newTestRouter(users, nil).ServeHTTP(rec, jsonRequest(http.MethodPost, "/auth/register", body))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "correct horse")
		users.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		users := new(mockUserService)
		users.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

		rec := httptest.NewRecorder()
		newTestRouter(users, nil).ServeHTTP(rec, jsonRequest(http.MethodPost, "/auth/register", body))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		users := new(mockUserService)

		rec := httptest.NewRecorder()
		newTestRouter(users, nil).ServeHTTP(rec, jsonRequest(http.MethodPost, "/auth/register", `{"email":"nope","password":"x"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLoginMeLogout(t *testing.T) {
	users := new(mockUserService)
	users.On("Authenticate", mock.Anything, "jane@example.com", "secret-pass").Return(jane, nil)
	users.On("Authenticate", mock.Anything, "jane@example.com", "wrong").Return(nil, lib.ErrInvalidCredentials)
	users.On("GetUserByPrincipal", mock.Anything, "jane@example.com").Return(jane, nil)
	r := newTestRouter(users, memoryBlacklist{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(http.MethodPost, "/auth/login", `{"email":"jane@example.com","password":"wrong"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(http.MethodPost, "/auth/login", `{"email":"jane@example.com","password":"secret-pass"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := accessCookie(rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	me := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	me.AddCookie(cookie)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, me)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jane@example.com")

	logout := jsonRequest(http.MethodPost, "/auth/logout", "")
	logout.AddCookie(cookie)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, logout)
	assert.Equal(t, http.StatusOK, rec.Code)

	// the revoked token no longer opens /me
	me = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	me.AddCookie(cookie)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, me)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleLogout_WithoutToken(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(new(mockUserService), nil).ServeHTTP(rec, jsonRequest(http.MethodPost, "/auth/logout", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleMe_Unauthenticated(t *testing.T) {
	users := new(mockUserService)
	users.On("GetUserByPrincipal", mock.Anything, mock.Anything).Return(nil, errors.New("should not be called"))

	rec := httptest.NewRecorder()
	newTestRouter(users, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	users.AssertNotCalled(t, "GetUserByPrincipal", mock.Anything, mock.Anything)
}
