package domain

import (
	"strings"
	"time"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type Provider struct {
	ID                 int64              `json:"id"`
	UserID             int64              `json:"user_id"`
	BusinessName       string             `json:"business_name"`
	Description        string             `json:"description,omitempty"`
	Location           string             `json:"location,omitempty"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	IsOnline           bool               `json:"is_online"`
	AvailableDays      []string           `json:"available_days"`       // lowercase weekday names
	AvailableStartTime string             `json:"available_start_time"` // HH:MM
	AvailableEndTime   string             `json:"available_end_time"`   // HH:MM
	AverageRating      float64            `json:"average_rating"`
	TotalReviews       int                `json:"total_reviews"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	Services []ProviderService `json:"services,omitempty"`
}

// AvailableOn reports whether the provider advertises availability
// on the weekday of the given date.
func (p *Provider) AvailableOn(date time.Time) bool {
	day := strings.ToLower(date.Weekday().String())
	for _, d := range p.AvailableDays {
		if strings.ToLower(d) == day {
			return true
		}
	}
	return false
}

// WindowContains reports whether the HH:MM time falls inside the
// provider's advertised window. The end bound is exclusive.
func (p *Provider) WindowContains(hhmm string) bool {
	if p.AvailableStartTime == "" || p.AvailableEndTime == "" {
		return true
	}
	return hhmm >= p.AvailableStartTime && hhmm < p.AvailableEndTime
}

type ServiceCategory struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProviderService struct {
	ID              int64     `json:"id"`
	ProviderID      int64     `json:"provider_id"`
	CategoryID      int64     `json:"category_id"`
	Price           *float64  `json:"price,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`

	Category *ServiceCategory `json:"category,omitempty"`
}
