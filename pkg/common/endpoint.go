package common

const (
	CallbackEndpoint     = "/callback"
	SuppressionsEndpoint = "/suppressions"
	HealthEndpoint       = "/health"

	// CorrelationHeader is stamped into every outgoing email and echoed
	// back by SES inside the notification's mail headers
	CorrelationHeader = "X-EMAIL-ID"
)
