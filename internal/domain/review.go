package domain

import "time"

type Review struct {
	ID         int64     `json:"id"`
	BookingID  int64     `json:"booking_id"`
	UserID     int64     `json:"user_id"`
	ProviderID int64     `json:"provider_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
