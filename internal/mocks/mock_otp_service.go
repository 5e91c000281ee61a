package mocks

import (
	"context"

	"github.com/hushryd/authsvc/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc     func(ctx context.Context, phone string) (*domain.OTPIssue, error)
	VerifyFunc    func(ctx context.Context, phone, code string) error
	CanResendFunc func(ctx context.Context, phone string) (bool, int64, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Issue issues an OTP for the phone
func (m *MockOTPService) Issue(ctx context.Context, phone string) (*domain.OTPIssue, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, phone)
	}
	return &domain.OTPIssue{Phone: phone, Code: "123456", ExpiresIn: 300}, nil
}

// Verify verifies and consumes an OTP
func (m *MockOTPService) Verify(ctx context.Context, phone, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, phone, code)
	}
	return nil
}

// CanResend reports whether a new OTP may be issued
func (m *MockOTPService) CanResend(ctx context.Context, phone string) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, phone)
	}
	return true, 0, nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
