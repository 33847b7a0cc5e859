package auth

import (
	"context"
	"testing"
	"time"

	"meetingroom/internal/domain"
	jwtsvc "meetingroom/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("member123"), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           42,
		Email:        "kim@meetingroom.local",
		PasswordHash: string(hash),
		Name:         "Kim",
		Role:         domain.RoleMember,
	}
}

func TestLogin(t *testing.T) {
	user := testUser(t)
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	jwt := jwtsvc.New("test-secret", time.Hour)
	svc := NewService(users, jwt)

	token, got, err := svc.Login(context.Background(), user.Email, "member123")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	claims, err := jwt.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "member", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := testUser(t)
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	svc := NewService(users, jwtsvc.New("test-secret", time.Hour))
	_, _, err := svc.Login(context.Background(), user.Email, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// Unknown emails report the same error as bad passwords, so the login
// endpoint does not leak which addresses exist.
func TestLogin_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "ghost@meetingroom.local").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(users, jwtsvc.New("test-secret", time.Hour))
	_, _, err := svc.Login(context.Background(), "ghost@meetingroom.local", "member123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := jwtsvc.New("secret-a", time.Hour).GenerateToken(1, "member")
	require.NoError(t, err)

	_, err = jwtsvc.New("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := jwtsvc.New("test-secret", -time.Minute).GenerateToken(1, "member")
	require.NoError(t, err)

	_, err = jwtsvc.New("test-secret", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}
