package user

import (
	"context"
	"errors"
	"testing"

	"github.com/myos14/gymAdmin/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, username, email, fullName, passwordHash, role string) (*User, error) {
	args := m.Called(ctx, username, email, fullName, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name          string
		req           RegisterRequest
		setupMock     func(*MockRepository)
		expectError   bool
		expectedError error
	}{
		{
			name: "successful registration defaults to staff role",
			req: RegisterRequest{
				Username: "recepcion",
				Email:    "recepcion@example.com",
				FullName: "Ana Torres",
				Password: "password123",
			},
			setupMock: func(m *MockRepository) {
				m.On("UsernameExists", mock.Anything, "recepcion").Return(false, nil)
				m.On("EmailExists", mock.Anything, "recepcion@example.com").Return(false, nil)
				m.On("Create", mock.Anything, "recepcion", "recepcion@example.com", "Ana Torres", mock.Anything, "staff").Return(&User{
					ID:       1,
					Username: "recepcion",
					Email:    "recepcion@example.com",
					Role:     "staff",
					IsActive: true,
				}, nil)
			},
			expectError: false,
		},
		{
			name: "username already exists",
			req: RegisterRequest{
				Username: "recepcion",
				Email:    "new@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockRepository) {
				m.On("UsernameExists", mock.Anything, "recepcion").Return(true, nil)
			},
			expectError:   true,
			expectedError: ErrUsernameExists,
		},
		{
			name: "email already exists",
			req: RegisterRequest{
				Username: "nuevo",
				Email:    "existing@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockRepository) {
				m.On("UsernameExists", mock.Anything, "nuevo").Return(false, nil)
				m.On("EmailExists", mock.Anything, "existing@example.com").Return(true, nil)
			},
			expectError:   true,
			expectedError: ErrEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			tt.setupMock(mockRepo)

			service := NewService(mockRepo, "test-secret")
			user, accessToken, refreshToken, err := service.Register(context.Background(), tt.req)

			if tt.expectError {
				assert.Error(t, err)
				if tt.expectedError != nil {
					assert.Equal(t, tt.expectedError, err)
				}
				assert.Nil(t, user)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_Login(t *testing.T) {
	passwordHash, _ := auth.HashPassword("password123")

	tests := []struct {
		name          string
		req           LoginRequest
		setupMock     func(*MockRepository)
		expectError   bool
		expectedError error
	}{
		{
			name: "successful login",
			req: LoginRequest{
				Username: "recepcion",
				Password: "password123",
			},
			setupMock: func(m *MockRepository) {
				m.On("FindByUsername", mock.Anything, "recepcion").Return(&User{
					ID:           1,
					Username:     "recepcion",
					PasswordHash: passwordHash,
					Role:         "staff",
					IsActive:     true,
				}, nil)
			},
			expectError: false,
		},
		{
			name: "user not found",
			req: LoginRequest{
				Username: "nadie",
				Password: "password123",
			},
			setupMock: func(m *MockRepository) {
				m.On("FindByUsername", mock.Anything, "nadie").Return(nil, errors.New("not found"))
			},
			expectError:   true,
			expectedError: ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			req: LoginRequest{
				Username: "recepcion",
				Password: "wrong-password",
			},
			setupMock: func(m *MockRepository) {
				m.On("FindByUsername", mock.Anything, "recepcion").Return(&User{
					ID:           1,
					Username:     "recepcion",
					PasswordHash: passwordHash,
					IsActive:     true,
				}, nil)
			},
			expectError:   true,
			expectedError: ErrInvalidCredentials,
		},
		{
			name: "inactive account",
			req: LoginRequest{
				Username: "recepcion",
				Password: "password123",
			},
			setupMock: func(m *MockRepository) {
				m.On("FindByUsername", mock.Anything, "recepcion").Return(&User{
					ID:           1,
					Username:     "recepcion",
					PasswordHash: passwordHash,
					IsActive:     false,
				}, nil)
			},
			expectError:   true,
			expectedError: ErrUserInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			tt.setupMock(mockRepo)

			service := NewService(mockRepo, "test-secret")
			user, accessToken, refreshToken, err := service.Login(context.Background(), tt.req)

			if tt.expectError {
				assert.Error(t, err)
				if tt.expectedError != nil {
					assert.Equal(t, tt.expectedError, err)
				}
				assert.Nil(t, user)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_GetByID(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("FindByID", mock.Anything, 1).Return(&User{
		ID:       1,
		Username: "recepcion",
		Email:    "recepcion@example.com",
		Role:     "staff",
	}, nil)

	service := NewService(mockRepo, "test-secret")
	user, err := service.GetByID(context.Background(), 1)

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, 1, user.ID)
	mockRepo.AssertExpectations(t)
}

func TestService_RefreshToken(t *testing.T) {
	t.Run("issues a new access token", func(t *testing.T) {
		_, refreshToken, err := auth.GenerateTokens(1, "recepcion", "staff", "test-secret")
		assert.NoError(t, err)

		mockRepo := new(MockRepository)
		mockRepo.On("FindByID", mock.Anything, 1).Return(&User{
			ID:       1,
			Username: "recepcion",
			Role:     "staff",
			IsActive: true,
		}, nil)

		service := NewService(mockRepo, "test-secret")
		accessToken, user, err := service.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.Equal(t, 1, user.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		service := NewService(new(MockRepository), "test-secret")

		_, _, err := service.RefreshToken(context.Background(), "not-a-token")

		assert.Error(t, err)
	})
}
