package models

import "time"

// Registration records that a relying origin registered a payment handler.
// URL is normalized (origin + path) and always shares Origin.
type Registration struct {
	URL          string    `json:"url"`
	Origin       string    `json:"origin"`
	RegisteredAt time.Time `json:"registeredAt"`
}
