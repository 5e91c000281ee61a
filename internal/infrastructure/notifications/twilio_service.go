package notifications

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"golang.org/x/time/rate"

	"github.com/hushryd/authsvc/domain"
)

// TwilioServiceImpl implements domain.NotificationService. Outbound sends
// are capped process-wide so a burst of OTP requests cannot exhaust the
// Twilio account quota.
type TwilioServiceImpl struct {
	client     *twilio.RestClient
	fromNumber string
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewTwilioService creates a new Twilio notification service
func NewTwilioService(accountSID, authToken, fromNumber string, sendRate float64, sendBurst int, logger *logrus.Logger) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	if sendRate <= 0 {
		sendRate = 10
	}
	if sendBurst <= 0 {
		sendBurst = 5
	}

	return &TwilioServiceImpl{
		client:     client,
		fromNumber: fromNumber,
		limiter:    rate.NewLimiter(rate.Limit(sendRate), sendBurst),
		logger:     logger,
	}
}

// SendSMS implements domain.NotificationService
func (t *TwilioServiceImpl) SendSMS(to, message string) error {
	if err := t.limiter.Wait(context.Background()); err != nil {
		return fmt.Errorf("sms rate limiter: %w", err)
	}

	// If credentials are not configured, log instead of sending.
	if t.fromNumber == "" {
		t.logger.WithFields(logrus.Fields{
			"to":      to,
			"message": message,
		}).Info("sms delivery not configured, logging instead")
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	_, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return nil
}
