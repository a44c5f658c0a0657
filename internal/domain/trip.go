// Package domain contains the core data types for the Schengen compliance
// engine. This package has zero external dependencies beyond uuid and is
// imported by every other internal package (engine, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxTripLength is the longest continuous stay a single trip may declare.
// The 90/180 rule caps any short-stay visit at 90 days, so a longer range is
// a data-entry error, not a compliance question.
const MaxTripLength = 90

// TripCategory classifies why the traveller was in the zone.
type TripCategory string

const (
	CategoryTourism  TripCategory = "tourism"
	CategoryBusiness TripCategory = "business"
	CategoryFamily   TripCategory = "family"
	CategoryTransit  TripCategory = "transit"
	CategoryOther    TripCategory = "other"
)

// IsValid reports whether c is one of the known categories.
func (c TripCategory) IsValid() bool {
	switch c {
	case CategoryTourism, CategoryBusiness, CategoryFamily, CategoryTransit, CategoryOther:
		return true
	}
	return false
}

// Trip is a continuous presence inside the Schengen zone, declared for one
// country. StartDate and EndDate are inclusive calendar dates (UTC midnight,
// no time-of-day); a one-day visit has StartDate == EndDate.
type Trip struct {
	ID        uuid.UUID    `json:"id"`
	OwnerID   string       `json:"owner_id"`
	Country   string       `json:"country"` // ISO 3166-1 alpha-2, Schengen member
	Category  TripCategory `json:"category"`
	StartDate time.Time    `json:"start_date"`
	EndDate   time.Time    `json:"end_date"`
	Notes     string       `json:"notes,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Length returns the trip's inclusive length in calendar days.
// A trip with StartDate == EndDate has length 1.
func (t Trip) Length() int {
	return DaysBetween(Day(t.StartDate), Day(t.EndDate)) + 1
}
