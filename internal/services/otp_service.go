package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hushryd/authsvc/domain"
)

// consumeScript atomically compares the pending code and deletes it on a
// match, so two concurrent verifications can never both succeed.
// Returns 1 on match, 0 on mismatch, -1 when no code is pending.
var consumeScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then
	return -1
end
if v == ARGV[1] then
	redis.call('DEL', KEYS[1])
	return 1
end
return 0
`)

// OTPServiceImpl implements domain.OTPService using Redis persistence.
// Codes live under otp:<phone> with a native TTL; a resend throttle and a
// fixed-window issuance counter bound how often codes can be requested.
type OTPServiceImpl struct {
	notificationSvc domain.NotificationService
	redisClient     *redis.Client
	config          OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	ResendWindow time.Duration
	MaxPerWindow int
	LimitWindow  time.Duration
}

// NewOTPService creates a new Redis-based OTP service
func NewOTPService(notificationSvc domain.NotificationService, redisClient *redis.Client, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		config:          config,
	}
}

// Issue implements domain.OTPService. A plain SET overwrites any pending
// code for the phone, which is what invalidates superseded codes.
func (s *OTPServiceImpl) Issue(ctx context.Context, phone string) (*domain.OTPIssue, error) {
	otpKey := fmt.Sprintf("otp:%s", phone)
	resendKey := fmt.Sprintf("otp:res:%s", phone)
	windowKey := fmt.Sprintf("otp:rl:%s", phone)

	if canResend, waitTime, err := s.CanResend(ctx, phone); err != nil {
		return nil, err
	} else if !canResend {
		return nil, fmt.Errorf("%w: retry in %d seconds", domain.ErrOTPThrottled, waitTime)
	}

	// Fixed-window issuance cap per phone number.
	issued, err := s.redisClient.Incr(ctx, windowKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to increment issuance counter: %w", err)
	}
	if issued == 1 {
		if err := s.redisClient.Expire(ctx, windowKey, s.config.LimitWindow).Err(); err != nil {
			return nil, fmt.Errorf("failed to set issuance window: %w", err)
		}
	}
	if issued > int64(s.config.MaxPerWindow) {
		return nil, domain.ErrOTPRateLimited
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	expiresAt := time.Now().Add(s.config.TTL)
	if err := s.redisClient.Set(ctx, otpKey, code, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store OTP in Redis: %w", err)
	}

	if err := s.redisClient.Set(ctx, resendKey, 1, s.config.ResendWindow).Err(); err != nil {
		return nil, fmt.Errorf("failed to set resend throttle: %w", err)
	}

	message := fmt.Sprintf("Your HushRyd verification code is: %s. Valid for %d minutes.", code, int(s.config.TTL.Minutes()))
	if err := s.notificationSvc.SendSMS("+91"+phone, message); err != nil {
		// No code was delivered, so leave nothing pending.
		s.redisClient.Del(ctx, otpKey, resendKey)
		return nil, fmt.Errorf("failed to send OTP SMS: %w", err)
	}

	return &domain.OTPIssue{
		Phone:     phone,
		Code:      code,
		ExpiresAt: expiresAt,
		ExpiresIn: int64(s.config.TTL.Seconds()),
	}, nil
}

// Verify implements domain.OTPService. A mismatch leaves the pending code
// untouched so the caller can retry until the TTL elapses.
func (s *OTPServiceImpl) Verify(ctx context.Context, phone, code string) error {
	otpKey := fmt.Sprintf("otp:%s", phone)

	result, err := consumeScript.Run(ctx, s.redisClient, []string{otpKey}, code).Int()
	if err != nil {
		return fmt.Errorf("failed to consume OTP: %w", err)
	}

	switch result {
	case 1:
		return nil
	case 0:
		return domain.ErrOTPInvalid
	default:
		return domain.ErrOTPExpired
	}
}

// CanResend implements domain.OTPService with Redis-based throttling
func (s *OTPServiceImpl) CanResend(ctx context.Context, phone string) (bool, int64, error) {
	resendKey := fmt.Sprintf("otp:res:%s", phone)

	ttl, err := s.redisClient.TTL(ctx, resendKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	// If TTL <= 0, key doesn't exist or has expired - can resend
	if ttl <= 0 {
		return true, 0, nil
	}

	return false, int64(ttl.Seconds()), nil
}

// generateSecureCode generates a cryptographically secure OTP code
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
