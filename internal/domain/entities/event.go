package entities

import "time"

// Event is a capacity-limited event users register for.
// Events are created closed; an admin opens and later closes registration,
// which triggers seat allocation. SeatLimit is fixed at creation.
type Event struct {
	ID        int64
	Name      string
	IsOpen    bool
	SeatLimit int
	CreatedAt time.Time
}
