package booking

type CreateBookingRequest struct {
	ProviderID    int64  `json:"provider_id" binding:"required"`
	ServiceID     int64  `json:"service_id" binding:"required"`
	ScheduledDate string `json:"scheduled_date" binding:"required"` // YYYY-MM-DD
	ScheduledTime string `json:"scheduled_time" binding:"required"` // HH:MM
	Notes         string `json:"notes"`
	IsEmergency   bool   `json:"is_emergency"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type EarningsSummary struct {
	Total    float64 `json:"total"`
	Earnings any     `json:"earnings"`
}
