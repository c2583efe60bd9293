package types

import (
	"strings"
	"time"
)

type Hub string
type EventType string

type Alert struct {
	ID        uint      `json:"id"`
	Hub       Hub       `json:"hub"`
	EventType EventType `json:"event_type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type Event struct {
	ID          uint      `json:"id"`
	EventType   EventType `json:"event_type"`
	Hub         Hub       `json:"hub"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// HubHealth is the color reported for a hub. A hub without a stored
// status is healthy.
type HubHealth string

const (
	HubHealthy   HubHealth = "green"
	HubUnhealthy HubHealth = "red"
)

// ParseHubHealth maps a stored status value to a HubHealth. Values that
// are not recognized are reported as healthy.
func ParseHubHealth(value string) HubHealth {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "red", "unhealthy":
		return HubUnhealthy
	default:
		return HubHealthy
	}
}
