package cmd

import "time"

type Config struct {
	HTTPPort             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	PaymentWebhookSecret string
	SMSGatewayURL        string
	SMSGatewayAPIKey     string
	SMSSenderName        string
	AdminEmails          []string
	StreamHeartbeat      time.Duration
	StreamRetry          time.Duration
	AckReminderThreshold time.Duration
	InboxMaxAttempts     int
}
