package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/utils"
)

// SMSSender delivers a reminder text. Implementations are best-effort: the
// scheduler logs failures but never retries.
type SMSSender interface {
	Send(ctx context.Context, toNumber, body string) error
}

type twilioSender struct {
	log        *logger.Logger
	client     *http.Client
	accountSID string
	authToken  string
	fromNumber string
}

// NewTwilioSender reads credentials from the environment. When they are
// missing the sender stays constructed but every Send is a logged no-op, so
// reminders still work in development without a Twilio account.
func NewTwilioSender(log *logger.Logger) SMSSender {
	serviceLog := log.With("service", "TwilioSender")
	sender := &twilioSender{
		log:        serviceLog,
		client:     &http.Client{Timeout: 15 * time.Second},
		accountSID: utils.GetEnv("TWILIO_ACCOUNT_SID", "", serviceLog),
		authToken:  utils.GetEnv("TWILIO_AUTH_TOKEN", "", serviceLog),
		fromNumber: utils.GetEnv("TWILIO_FROM_NUMBER", "", serviceLog),
	}
	if !sender.configured() {
		serviceLog.Warn("Twilio credentials not set, SMS delivery disabled")
	}
	return sender
}

func (ts *twilioSender) configured() bool {
	return ts.accountSID != "" && ts.authToken != "" && ts.fromNumber != ""
}

func (ts *twilioSender) Send(ctx context.Context, toNumber, body string) error {
	if !ts.configured() {
		ts.log.Warn("Skipping SMS, sender not configured", "to", toNumber)
		return nil
	}
	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", ts.accountSID)
	form := url.Values{}
	form.Set("To", toNumber)
	form.Set("From", ts.fromNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("Failed to build SMS request: %w", err)
	}
	req.SetBasicAuth(ts.accountSID, ts.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.client.Do(req)
	if err != nil {
		return fmt.Errorf("Failed to send SMS: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("SMS provider returned status %d", resp.StatusCode)
	}
	ts.log.Info("SMS sent", "to", toNumber)
	return nil
}
