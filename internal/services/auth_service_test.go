package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hushryd/authsvc/domain"
	"github.com/hushryd/authsvc/internal/mocks"
)

func setupAuthService(t *testing.T) (domain.AuthService, *mocks.MockUserRepository, *mocks.MockSessionRepository, *mocks.MockOTPService, *mocks.MockTokenService) {
	t.Helper()

	userRepo := mocks.NewMockUserRepository()
	sessionRepo := mocks.NewMockSessionRepository()
	passwordSvc := mocks.NewMockPasswordService()
	tokenSvc := mocks.NewMockTokenService()
	otpSvc := mocks.NewMockOTPService()

	authSvc := NewAuthService(userRepo, sessionRepo, passwordSvc, tokenSvc, otpSvc, 24*time.Hour)
	return authSvc, userRepo, sessionRepo, otpSvc, tokenSvc
}

func testUser() *domain.User {
	return &domain.User{
		ID:         7,
		Email:      "rider@example.com",
		FirstName:  "Asha",
		LastName:   "Rao",
		Phone:      "9876543210",
		Role:       "rider",
		IsVerified: false,
	}
}

func TestAuthServiceImpl_LoginWithOTP(t *testing.T) {
	authSvc, userRepo, sessionRepo, otpSvc, tokenSvc := setupAuthService(t)
	ctx := context.Background()

	user := testUser()
	verifiedID := uint(0)
	var createdSession *domain.Session

	otpSvc.VerifyFunc = func(ctx context.Context, phone, code string) error {
		if phone == user.Phone && code == "123456" {
			return nil
		}
		return domain.ErrOTPInvalid
	}
	userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		if phone == user.Phone {
			return user, nil
		}
		return nil, domain.ErrUserNotFound
	}
	userRepo.MarkVerifiedFunc = func(ctx context.Context, userID uint) error {
		verifiedID = userID
		return nil
	}
	sessionRepo.CreateFunc = func(ctx context.Context, session *domain.Session) error {
		createdSession = session
		return nil
	}
	tokenSvc.GenerateAccessTokenFunc = func(userID uint, email, role, sessionID string) (string, error) {
		assert.Equal(t, user.ID, userID)
		assert.Equal(t, user.Email, email)
		assert.Equal(t, user.Role, role)
		assert.NotEmpty(t, sessionID)
		return "signed-token", nil
	}

	result, err := authSvc.LoginWithOTP(ctx, user.Phone, "123456")
	require.NoError(t, err)

	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, int64(24*60*60), result.ExpiresIn)
	assert.True(t, result.User.IsVerified, "OTP login proves phone ownership")
	assert.Equal(t, user.ID, verifiedID)

	require.NotNil(t, createdSession)
	assert.Equal(t, user.ID, createdSession.UserID)
	assert.Equal(t, result.SessionID, createdSession.ID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), createdSession.ExpiresAt, time.Minute)
}

func TestAuthServiceImpl_LoginWithOTP_Failures(t *testing.T) {
	tests := []struct {
		name        string
		verifyErr   error
		findErr     error
		expectedErr error
	}{
		{
			name:        "expired code",
			verifyErr:   domain.ErrOTPExpired,
			expectedErr: domain.ErrOTPExpired,
		},
		{
			name:        "wrong code",
			verifyErr:   domain.ErrOTPInvalid,
			expectedErr: domain.ErrOTPInvalid,
		},
		{
			name:        "no user for phone",
			findErr:     domain.ErrUserNotFound,
			expectedErr: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc, userRepo, _, otpSvc, _ := setupAuthService(t)

			otpSvc.VerifyFunc = func(ctx context.Context, phone, code string) error {
				return tt.verifyErr
			}
			userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
				if tt.findErr != nil {
					return nil, tt.findErr
				}
				return testUser(), nil
			}

			result, err := authSvc.LoginWithOTP(context.Background(), "9876543210", "123456")
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestAuthServiceImpl_LoginWithOTP_AlreadyVerified(t *testing.T) {
	authSvc, userRepo, _, _, _ := setupAuthService(t)

	user := testUser()
	user.IsVerified = true

	userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		return user, nil
	}
	userRepo.MarkVerifiedFunc = func(ctx context.Context, userID uint) error {
		t.Error("MarkVerified should not be called for an already verified user")
		return nil
	}

	_, err := authSvc.LoginWithOTP(context.Background(), user.Phone, "123456")
	require.NoError(t, err)
}

func TestAuthServiceImpl_LoginWithPassword(t *testing.T) {
	authSvc, userRepo, _, _, _ := setupAuthService(t)
	ctx := context.Background()

	staff := testUser()
	staff.Role = "admin"
	staff.PasswordHash = "hashed:s3cret"

	userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		if email == staff.Email {
			return staff, nil
		}
		return nil, domain.ErrUserNotFound
	}

	result, err := authSvc.LoginWithPassword(ctx, staff.Email, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, staff.ID, result.User.ID)

	_, err = authSvc.LoginWithPassword(ctx, staff.Email, "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = authSvc.LoginWithPassword(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthServiceImpl_LoginWithPassword_NoPasswordSet(t *testing.T) {
	authSvc, userRepo, _, _, _ := setupAuthService(t)

	rider := testUser() // OTP-only account, no password hash
	userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return rider, nil
	}

	_, err := authSvc.LoginWithPassword(context.Background(), rider.Email, "anything")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthServiceImpl_Logout(t *testing.T) {
	authSvc, _, sessionRepo, _, _ := setupAuthService(t)

	deleted := ""
	sessionRepo.DeleteFunc = func(ctx context.Context, sessionID string) error {
		deleted = sessionID
		return nil
	}

	require.NoError(t, authSvc.Logout(context.Background(), "sess-1"))
	assert.Equal(t, "sess-1", deleted)
}
