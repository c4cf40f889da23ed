package service

import (
	"context"
	"testing"

	"billtrack/internal/dto"
	"billtrack/internal/middleware"
	"billtrack/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[string]*model.User
}

func newStubUserRepo(users ...*model.User) *stubUserRepo {
	m := make(map[string]*model.User, len(users))
	for _, u := range users {
		m[u.Username] = u
	}
	return &stubUserRepo{users: m}
}

func (s *stubUserRepo) Create(_ context.Context, u *model.User) error {
	s.users[u.Username] = u
	return nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := s.users[username]; ok && u.Active {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) List(context.Context, string, bool) ([]model.User, error) { return nil, nil }
func (s *stubUserRepo) Update(context.Context, *model.User) error                { return nil }
func (s *stubUserRepo) SoftDelete(context.Context, string, uuid.UUID) error      { return nil }
func (s *stubUserRepo) Reactivate(context.Context, string, uuid.UUID) error      { return nil }

const testSecret = "test-secret"

func testUser(t *testing.T, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:           uuid.New(),
		CompanyID:    "acme",
		Username:     "cashier1",
		Name:         "Cashier One",
		PasswordHash: string(hash),
		Role:         "staff",
		Department:   "sales",
		Active:       true,
	}
}

func TestLoginSuccessIssuesScopedToken(t *testing.T) {
	user := testUser(t, "hunter22")
	svc := NewAuthService(newStubUserRepo(user), testSecret, 1, 24)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cashier1", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "cashier1", resp.User.Username)

	claims := &middleware.JWTClaims{}
	token, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, "acme", claims.CompanyID, "token must carry the tenant scope")
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(testUser(t, "hunter22")), testSecret, 1, 24)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cashier1", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, 1, 24)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRoundTrip(t *testing.T) {
	user := testUser(t, "hunter22")
	svc := NewAuthService(newStubUserRepo(user), testSecret, 1, 24)

	first, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cashier1", Password: "hunter22"})
	require.NoError(t, err)

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "cashier1", second.User.Username)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	user := testUser(t, "hunter22")
	svc := NewAuthService(newStubUserRepo(user), testSecret, 1, 24)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cashier1", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken, "an access token must not work as a refresh token")
}
