package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/continental-academy/academy-api/internal/lib/jwt"
	"github.com/continental-academy/academy-api/internal/lib/password"
	"github.com/continental-academy/academy-api/internal/models"
	"github.com/continental-academy/academy-api/internal/services/auth"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userID, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.Claims), args.Error(1)
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name       string
		req        models.RegisterRequest
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
	}{
		{
			name: "successful registration",
			req: models.RegisterRequest{
				Name:     "Test User",
				Email:    "  Test@Example.COM ",
				Password: "password123",
			},
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(user *models.User) bool {
					return user.Email == "test@example.com" &&
						user.Name == "Test User" &&
						user.PasswordHash != "" &&
						user.Role == models.RoleUser &&
						user.Subscriptions != nil && len(user.Subscriptions) == 0 &&
						user.Courses != nil && len(user.Courses) == 0
				})).Return(nil).Once()
				j.On("GenerateToken", mock.Anything, models.RoleUser).Return("jwt-token-123", nil).Once()
			},
		},
		{
			name: "duplicate email",
			req: models.RegisterRequest{
				Name:     "Test User",
				Email:    "test@example.com",
				Password: "password123",
			},
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).Return(models.ErrConflict).Once()
			},
			wantErr: models.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := auth.New(repo, jwtMock)

			tt.setupMocks(repo, jwtMock)

			got, err := svc.Register(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "jwt-token-123", got.AccessToken)
				assert.Equal(t, "bearer", got.TokenType)
				assert.Equal(t, "test@example.com", got.User.Email)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestService_Login(t *testing.T) {
	rawPassword := "correctpassword"
	hashedPassword, err := password.Hash(rawPassword)
	require.NoError(t, err)

	testUser := &models.User{
		ID:           "user-1",
		Email:        "test@example.com",
		PasswordHash: hashedPassword,
		Role:         models.RoleUser,
	}

	tests := []struct {
		name       string
		req        models.LoginRequest
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
	}{
		{
			name: "successful login",
			req:  models.LoginRequest{Email: "test@example.com", Password: rawPassword},
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				j.On("GenerateToken", "user-1", models.RoleUser).Return("jwt-token-123", nil).Once()
			},
			wantToken: "jwt-token-123",
		},
		{
			name: "unknown email",
			req:  models.LoginRequest{Email: "nobody@example.com", Password: rawPassword},
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, models.ErrNotFound).Once()
			},
			wantErr: models.ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			req:  models.LoginRequest{Email: "test@example.com", Password: "wrongpassword"},
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
			},
			wantErr: models.ErrInvalidCredentials,
		},
		{
			name: "repository error",
			req:  models.LoginRequest{Email: "test@example.com", Password: rawPassword},
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").
					Return(nil, errors.New("db error")).Once()
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := auth.New(repo, jwtMock)

			tt.setupMocks(repo, jwtMock)

			got, err := svc.Login(context.Background(), tt.req)
			switch {
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantToken != "":
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, got.AccessToken)
			default:
				require.Error(t, err)
				assert.NotErrorIs(t, err, models.ErrInvalidCredentials)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	testUser := &models.User{ID: "user-1", Email: "test@example.com", Role: models.RoleAdmin}

	tests := []struct {
		name       string
		token      string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
	}{
		{
			name:  "valid token",
			token: "valid-token",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "valid-token").
					Return(&customjwt.Claims{UserID: "user-1", Role: models.RoleAdmin}, nil).Once()
				r.On("GetUser", mock.Anything, "user-1").Return(testUser, nil).Once()
			},
		},
		{
			name:  "invalid token",
			token: "invalid-token",
			setupMocks: func(_ *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "invalid-token").Return(nil, errors.New("invalid token")).Once()
			},
			wantErr: models.ErrInvalidCredentials,
		},
		{
			name:  "user deleted after token issued",
			token: "valid-token",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "valid-token").
					Return(&customjwt.Claims{UserID: "user-1", Role: models.RoleAdmin}, nil).Once()
				r.On("GetUser", mock.Anything, "user-1").Return(nil, models.ErrNotFound).Once()
			},
			wantErr: models.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := auth.New(repo, jwtMock)

			tt.setupMocks(repo, jwtMock)

			user, err := svc.Authenticate(context.Background(), tt.token)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testUser, user)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}
