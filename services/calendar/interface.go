package calendar

import (
	"context"
	"time"
)

// Event is a calendar entry in the window the engine cares about.
type Event struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// Port is the external calendar capability consumed by availability checks
// and cleaner assignment. Implementations are treated as unreliable; callers
// decide the fallback policy.
type Port interface {
	// ListEvents returns events overlapping [from, to) on the referenced calendar.
	ListEvents(ctx context.Context, calendarRef string, from, to time.Time) ([]Event, error)
	// CreateEvent writes an event and returns the provider's event id.
	CreateEvent(ctx context.Context, calendarRef string, event Event) (string, error)
}
