package sms_client

const (
	// Base URL
	BaseURL = "https://api.twilio.com"

	// API Endpoints
	MessagesEndpointFmt = "/2010-04-01/Accounts/%s/Messages.json"
)
