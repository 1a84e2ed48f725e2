// Package queue defines the domain events published to RabbitMQ.
// Events are informational; consumers live outside this service.
package queue

import "time"

// Queue names used for publishing.
const (
	ImageEventsQueue  = "swapper.image.events"
	CinemaEventsQueue = "cinema.events"
)

// ImageEvent announces an upload or delete of a swapper image.
type ImageEvent struct {
	Action   string    `json:"action"` // "uploaded" or "deleted"
	ImageID  uint64    `json:"image_id"`
	ImageURL string    `json:"image_url,omitempty"`
	At       time.Time `json:"at"`
}

// CinemaEvent announces a change to a cinema record.
type CinemaEvent struct {
	Action   string    `json:"action"` // "created", "updated" or "deleted"
	CinemaID uint64    `json:"cinema_id"`
	At       time.Time `json:"at"`
}
