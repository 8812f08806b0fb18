package model

// WebhookEvent is the inbound notification body as sent by the gateway.
// Only Data participates in signature verification.
type WebhookEvent struct {
	EventType      int               `json:"EventType"`
	Event          string            `json:"Event"`
	DateTime       string            `json:"DateTime"`
	CountryIsoCode string            `json:"CountryIsoCode"`
	Data           map[string]string `json:"Data"`
}
