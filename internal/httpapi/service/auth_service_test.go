package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockConfirmationService mocks the ConfirmationService interface
type MockConfirmationService struct {
	mock.Mock
}

func (m *MockConfirmationService) Issue(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockConfirmationService) Verify(ctx context.Context, userID, code string) (bool, error) {
	args := m.Called(ctx, userID, code)
	return args.Bool(0), args.Error(1)
}

// MockMailSender mocks the MailSender interface
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret-key-with-enough-length",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestRequestConfirmation_CreatesUserOnFirstContact(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokenRepo := new(MockRefreshTokenRepository)
	mockConfirmations := new(MockConfirmationService)
	mockMailer := new(MockMailSender)
	svc := NewAuthService(mockUserRepo, mockTokenRepo, mockConfirmations, mockMailer, authTestConfig())

	mockUserRepo.On("FindByEmail", mock.Anything, "new@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "new@example.com"
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = "user-1"
	})
	mockConfirmations.On("Issue", mock.Anything, "user-1").Return("code-123", nil)
	mockMailer.On("Send", "new@example.com", mock.Anything, "code-123").Return(nil)

	err := svc.RequestConfirmation(context.Background(), "new@example.com")

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
	mockConfirmations.AssertExpectations(t)
	mockMailer.AssertExpectations(t)
}

func TestRequestConfirmation_ExistingUserReused(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokenRepo := new(MockRefreshTokenRepository)
	mockConfirmations := new(MockConfirmationService)
	mockMailer := new(MockMailSender)
	svc := NewAuthService(mockUserRepo, mockTokenRepo, mockConfirmations, mockMailer, authTestConfig())

	mockUserRepo.On("FindByEmail", mock.Anything, "old@example.com").
		Return(&models.User{ID: "user-2", Email: "old@example.com"}, nil)
	mockConfirmations.On("Issue", mock.Anything, "user-2").Return("code-456", nil)
	mockMailer.On("Send", "old@example.com", mock.Anything, "code-456").Return(nil)

	err := svc.RequestConfirmation(context.Background(), "old@example.com")

	assert.NoError(t, err)
	mockUserRepo.AssertNotCalled(t, "Create")
}

func TestRequestConfirmation_MailFailureKeepsUser(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokenRepo := new(MockRefreshTokenRepository)
	mockConfirmations := new(MockConfirmationService)
	mockMailer := new(MockMailSender)
	svc := NewAuthService(mockUserRepo, mockTokenRepo, mockConfirmations, mockMailer, authTestConfig())

	mockUserRepo.On("FindByEmail", mock.Anything, "new@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockConfirmations.On("Issue", mock.Anything, mock.Anything).Return("code-123", nil)
	mockMailer.On("Send", "new@example.com", mock.Anything, "code-123").
		Return(errors.New("smtp down"))

	err := svc.RequestConfirmation(context.Background(), "new@example.com")

	assert.ErrorIs(t, err, ErrMailDelivery)
	// the created user survives so the client can retry the same step
	mockUserRepo.AssertNotCalled(t, "Delete")
}

func TestExchangeToken_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokenRepo := new(MockRefreshTokenRepository)
	mockConfirmations := new(MockConfirmationService)
	mockMailer := new(MockMailSender)
	svc := NewAuthService(mockUserRepo, mockTokenRepo, mockConfirmations, mockMailer, authTestConfig())

	user := &models.User{ID: "user-1", Email: "reader@example.com", Role: "user"}
	mockUserRepo.On("FindByEmail", mock.Anything, "reader@example.com").Return(user, nil)
	mockConfirmations.On("Verify", mock.Anything, "user-1", "code-123").Return(true, nil)
	mockTokenRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	access, refresh, err := svc.ExchangeToken(context.Background(), "reader@example.com", "code-123")

	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	claims, err := svc.ValidateToken(access)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestExchangeToken_WrongCode(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokenRepo := new(MockRefreshTokenRepository)
	mockConfirmations := new(MockConfirmationService)
	mockMailer := new(MockMailSender)
	svc := NewAuthService(mockUserRepo, mockTokenRepo, mockConfirmations, mockMailer, authTestConfig())

	user := &models.User{ID: "user-1", Email: "reader@example.com"}
	mockUserRepo.On("FindByEmail", mock.Anything, "reader@example.com").Return(user, nil)
	mockConfirmations.On("Verify", mock.Anything, "user-1", "wrong").Return(false, nil)

	access, refresh, err := svc.ExchangeToken(context.Background(), "reader@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	mockTokenRepo.AssertNotCalled(t, "Create")
}

func TestExchangeToken_UnknownEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokenRepo := new(MockRefreshTokenRepository)
	mockConfirmations := new(MockConfirmationService)
	mockMailer := new(MockMailSender)
	svc := NewAuthService(mockUserRepo, mockTokenRepo, mockConfirmations, mockMailer, authTestConfig())

	mockUserRepo.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.ExchangeToken(context.Background(), "ghost@example.com", "code-123")

	assert.ErrorIs(t, err, ErrUserNotFound)
	mockConfirmations.AssertNotCalled(t, "Verify")
}

func TestRefreshAccessToken_RotatesPair(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokenRepo := new(MockRefreshTokenRepository)
	mockConfirmations := new(MockConfirmationService)
	mockMailer := new(MockMailSender)
	svc := NewAuthService(mockUserRepo, mockTokenRepo, mockConfirmations, mockMailer, authTestConfig())

	stored := &models.RefreshToken{
		ID:        "token-id",
		UserID:    "user-1",
		Token:     "old-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	mockTokenRepo.On("FindByToken", mock.Anything, "old-token").Return(stored, nil)
	mockUserRepo.On("FindByID", mock.Anything, "user-1").
		Return(&models.User{ID: "user-1", Email: "reader@example.com"}, nil)
	mockTokenRepo.On("Revoke", mock.Anything, "token-id").Return(nil)
	mockTokenRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	access, refresh, err := svc.RefreshAccessToken(context.Background(), "old-token")

	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, "old-token", refresh)
	mockTokenRepo.AssertExpectations(t)
}

func TestRefreshAccessToken_Expired(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokenRepo := new(MockRefreshTokenRepository)
	mockConfirmations := new(MockConfirmationService)
	mockMailer := new(MockMailSender)
	svc := NewAuthService(mockUserRepo, mockTokenRepo, mockConfirmations, mockMailer, authTestConfig())

	stored := &models.RefreshToken{
		ID:        "token-id",
		UserID:    "user-1",
		Token:     "old-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	mockTokenRepo.On("FindByToken", mock.Anything, "old-token").Return(stored, nil)
	mockTokenRepo.On("Delete", mock.Anything, "token-id").Return(nil)

	_, _, err := svc.RefreshAccessToken(context.Background(), "old-token")

	assert.ErrorIs(t, err, ErrExpiredToken)
	mockTokenRepo.AssertNotCalled(t, "Revoke")
}

func TestValidateToken_Garbage(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokenRepo := new(MockRefreshTokenRepository)
	mockConfirmations := new(MockConfirmationService)
	mockMailer := new(MockMailSender)
	svc := NewAuthService(mockUserRepo, mockTokenRepo, mockConfirmations, mockMailer, authTestConfig())

	_, err := svc.ValidateToken("not-a-jwt")

	assert.Error(t, err)
}
