package domain

import "time"

type NotificationType string

const (
	NotifyBookingRequest   NotificationType = "booking_request"
	NotifyBookingAccepted  NotificationType = "booking_accepted"
	NotifyBookingRejected  NotificationType = "booking_rejected"
	NotifyNewMessage       NotificationType = "new_message"
	NotifyJobCompleted     NotificationType = "job_completed"
	NotifyProviderVerified NotificationType = "provider_verified"
	NotifyProviderRejected NotificationType = "provider_rejected"
)

type Notification struct {
	ID          int64            `json:"id"`
	UserID      int64            `json:"user_id"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	ReferenceID *int64           `json:"reference_id,omitempty"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}
