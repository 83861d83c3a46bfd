package domain

import "fmt"

// Event describes a planned activity whose suitability depends on the weather.
type Event struct {
	Name           string `json:"name"`
	Outdoors       bool   `json:"outdoors"`
	CoverAvailable bool   `json:"cover_available"`
	Hour           int    `json:"hour"` // closest hour to the start time, 0-23
}

// Validate rejects hours outside the day. Input collaborators call it before
// handing the event to the scorer.
func (e Event) Validate() error {
	if e.Hour < 0 || e.Hour > 23 {
		return fmt.Errorf("%w: got %d", ErrInvalidHour, e.Hour)
	}
	return nil
}

func (e Event) String() string {
	return fmt.Sprintf("Event(%s @ %d, %t, %t)", e.Name, e.Hour, e.Outdoors, e.CoverAvailable)
}
