package models

import "time"

type EventType string

const (
	EventVenueCreated    EventType = "venue.created"
	EventVenueUpdated    EventType = "venue.updated"
	EventVenueDeleted    EventType = "venue.deleted"
	EventVenuesReordered EventType = "venues.reordered"
	EventSportCreated    EventType = "sport.created"
	EventSportUpdated    EventType = "sport.updated"
	EventSportDeleted    EventType = "sport.deleted"
)

// VenueEvent is emitted after a write to venues or sports has been committed.
type VenueEvent struct {
	Type    EventType `json:"type"`
	VenueID *int      `json:"venue_id,omitempty"`
	SportID *int      `json:"sport_id,omitempty"`
	IDs     []int     `json:"ids,omitempty"`
	At      time.Time `json:"at"`
}
