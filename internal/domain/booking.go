package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingAccepted   BookingStatus = "accepted"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingAccepted, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Terminal statuses accept no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// bookingEdges is the authoritative transition table. Anything not listed
// here is rejected, never coerced.
var bookingEdges = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingAccepted, BookingCancelled},
	BookingAccepted:   {BookingInProgress},
	BookingInProgress: {BookingCompleted},
}

// CanTransition reports whether from -> to is a legal booking edge.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ChatEnabled reports whether the booking status permits messaging.
func (s BookingStatus) ChatEnabled() bool {
	return s == BookingAccepted || s == BookingInProgress
}

type Booking struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	ProviderID    int64         `json:"provider_id"`
	ServiceID     int64         `json:"service_id"`
	ScheduledDate string        `json:"scheduled_date"` // YYYY-MM-DD
	ScheduledTime string        `json:"scheduled_time"` // HH:MM
	Status        BookingStatus `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	TotalAmount   *float64      `json:"total_amount,omitempty"`
	IsEmergency   bool          `json:"is_emergency"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// BookingDetail is a booking enriched with the display fields both
// dashboards render next to it.
type BookingDetail struct {
	Booking
	BusinessName string `json:"business_name,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
}

// Earning is recorded once per completed booking.
type Earning struct {
	ID         int64     `json:"id"`
	BookingID  int64     `json:"booking_id"`
	ProviderID int64     `json:"provider_id"`
	Amount     float64   `json:"amount"`
	EarnedAt   time.Time `json:"earned_at"`
}
