package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hushryd/authsvc/domain"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc  domain.AuthService
	otpSvc   domain.OTPService
	userRepo domain.UserRepository
	logger   *logrus.Logger
	devMode  bool
}

// NewAuthHandlers creates new auth handlers. devMode controls whether the
// raw OTP is echoed in the issuance response; it must stay off in
// production.
func NewAuthHandlers(authSvc domain.AuthService, otpSvc domain.OTPService, userRepo domain.UserRepository, logger *logrus.Logger, devMode bool) *AuthHandlers {
	return &AuthHandlers{
		authSvc:  authSvc,
		otpSvc:   otpSvc,
		userRepo: userRepo,
		logger:   logger,
		devMode:  devMode,
	}
}

// SendOTPRequest represents an OTP issuance request
type SendOTPRequest struct {
	MobileNumber string `json:"mobileNumber" binding:"required,mobile"`
}

// VerifyOTPRequest represents an OTP login request
type VerifyOTPRequest struct {
	MobileNumber string `json:"mobileNumber" binding:"required,mobile"`
	OTP          string `json:"otp" binding:"required,len=6,numeric"`
}

// LoginRequest represents a staff password login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SendOTP handles POST /auth/send-otp
func (h *AuthHandlers) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please enter a valid 10-digit mobile number")
		return
	}

	user, err := h.userRepo.FindByPhone(c.Request.Context(), req.MobileNumber)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "Mobile number not registered. Please sign up first.")
			return
		}
		h.logger.WithError(err).Error("user lookup failed")
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	issue, err := h.otpSvc.Issue(c.Request.Context(), req.MobileNumber)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPThrottled):
			respondError(c, http.StatusTooManyRequests, "OTP already sent. Please wait before requesting another.")
		case errors.Is(err, domain.ErrOTPRateLimited):
			respondError(c, http.StatusTooManyRequests, "Too many OTP requests. Please try again later.")
		default:
			h.logger.WithError(err).WithField("user_id", user.ID).Error("otp issuance failed")
			respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	data := gin.H{
		"mobileNumber": issue.Phone,
		"expiresIn":    issue.ExpiresIn,
	}
	if h.devMode {
		data["otp"] = issue.Code
	}

	respondOK(c, http.StatusOK, "OTP sent successfully", data)
}

// VerifyOTP handles POST /auth/verify-otp
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Mobile number and a 6-digit OTP are required")
		return
	}

	result, err := h.authSvc.LoginWithOTP(c.Request.Context(), req.MobileNumber, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPExpired):
			respondError(c, http.StatusBadRequest, "OTP expired or invalid. Please request a new OTP.")
		case errors.Is(err, domain.ErrOTPInvalid):
			respondError(c, http.StatusUnauthorized, "Invalid OTP. Please try again.")
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "Mobile number not registered. Please sign up first.")
		default:
			h.logger.WithError(err).Error("otp login failed")
			respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.logger.WithFields(logrus.Fields{
		"user_id": result.User.ID,
		"role":    result.User.Role,
	}).Info("otp login succeeded")

	respondOK(c, http.StatusOK, "Login successful", gin.H{
		"token": result.Token,
		"user":  userPayload(result.User),
	})
}

// Login handles POST /auth/login for staff accounts
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.authSvc.LoginWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.logger.WithError(err).Error("password login failed")
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, http.StatusOK, "Login successful", gin.H{
		"token": result.Token,
		"user":  userPayload(result.User),
	})
}

// Me handles GET /auth/me (requires authentication)
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.authSvc.GetUserProfile(c.Request.Context(), userID.(uint))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		h.logger.WithError(err).Error("profile lookup failed")
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, http.StatusOK, "Profile fetched", gin.H{"user": userPayload(user)})
}

// Logout handles POST /auth/logout (requires authentication)
func (h *AuthHandlers) Logout(c *gin.Context) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		respondError(c, http.StatusBadRequest, "No active session")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), sessionID.(string)); err != nil {
		h.logger.WithError(err).Error("logout failed")
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, http.StatusOK, "Logged out successfully", nil)
}

func userPayload(user *domain.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"firstName":  user.FirstName,
		"lastName":   user.LastName,
		"phone":      user.Phone,
		"role":       user.Role,
		"isVerified": user.IsVerified,
	}
}
