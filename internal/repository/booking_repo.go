package repository

import (
	"context"
	"time"

	"servicehub/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	UserID        int64     `gorm:"column:user_id;index"`
	ProviderID    int64     `gorm:"column:provider_id;index"`
	ServiceID     int64     `gorm:"column:service_id"`
	ScheduledDate string    `gorm:"column:scheduled_date"`
	ScheduledTime string    `gorm:"column:scheduled_time"`
	Status        string    `gorm:"column:status;index"`
	Notes         *string   `gorm:"column:notes"`
	TotalAmount   *float64  `gorm:"column:total_amount"`
	IsEmergency   bool      `gorm:"column:is_emergency"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

type earningModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	BookingID  int64     `gorm:"column:booking_id;uniqueIndex"`
	ProviderID int64     `gorm:"column:provider_id;index"`
	Amount     float64   `gorm:"column:amount"`
	EarnedAt   time.Time `gorm:"column:earned_at"`
}

func (earningModel) TableName() string { return "earnings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:            m.ID,
		UserID:        m.UserID,
		ProviderID:    m.ProviderID,
		ServiceID:     m.ServiceID,
		ScheduledDate: m.ScheduledDate,
		ScheduledTime: m.ScheduledTime,
		Status:        domain.BookingStatus(m.Status),
		TotalAmount:   m.TotalAmount,
		IsEmergency:   m.IsEmergency,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Notes != nil {
		b.Notes = *m.Notes
	}
	return b
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := bookingModel{
		UserID:        b.UserID,
		ProviderID:    b.ProviderID,
		ServiceID:     b.ServiceID,
		ScheduledDate: b.ScheduledDate,
		ScheduledTime: b.ScheduledTime,
		Status:        string(b.Status),
		Notes:         optional(b.Notes),
		TotalAmount:   b.TotalAmount,
		IsEmergency:   b.IsEmergency,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// UpdateStatus flips the booking status only if it still holds the
// expected current status. A zero RowsAffected means a concurrent
// transition won the race; callers must re-read and re-validate.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// ListByUser returns the customer's bookings, newest first, enriched
// with provider and category display names.
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	return r.listDetailed(ctx, "bookings.user_id = ?", userID)
}

// ListByProvider returns the provider's incoming bookings, newest first,
// enriched with the customer's display name.
func (r *BookingRepository) ListByProvider(ctx context.Context, providerID int64) ([]domain.BookingDetail, error) {
	return r.listDetailed(ctx, "bookings.provider_id = ?", providerID)
}

func (r *BookingRepository) listDetailed(ctx context.Context, cond string, arg any) ([]domain.BookingDetail, error) {
	type row struct {
		bookingModel
		BusinessName *string `gorm:"column:business_name"`
		CategoryName *string `gorm:"column:category_name"`
		CustomerName *string `gorm:"column:customer_name"`
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.*,
			providers.business_name AS business_name,
			service_categories.name AS category_name,
			profiles.full_name AS customer_name`).
		Joins("LEFT JOIN providers ON providers.id = bookings.provider_id").
		Joins("LEFT JOIN provider_services ON provider_services.id = bookings.service_id").
		Joins("LEFT JOIN service_categories ON service_categories.id = provider_services.category_id").
		Joins("LEFT JOIN profiles ON profiles.user_id = bookings.user_id").
		Where(cond, arg).
		Order("bookings.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.BookingDetail, 0, len(rows))
	for _, m := range rows {
		d := domain.BookingDetail{Booking: *toDomainBooking(m.bookingModel)}
		if m.BusinessName != nil {
			d.BusinessName = *m.BusinessName
		}
		if m.CategoryName != nil {
			d.CategoryName = *m.CategoryName
		}
		if m.CustomerName != nil {
			d.CustomerName = *m.CustomerName
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).Count(&n).Error
	return n, err
}

func (r *BookingRepository) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("status = ?", string(status)).
		Count(&n).Error
	return n, err
}

// ---- earnings ----

func (r *BookingRepository) CreateEarning(ctx context.Context, e *domain.Earning) error {
	m := earningModel{
		BookingID:  e.BookingID,
		ProviderID: e.ProviderID,
		Amount:     e.Amount,
		EarnedAt:   time.Now().UTC(),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	e.ID = m.ID
	e.EarnedAt = m.EarnedAt
	return nil
}

func (r *BookingRepository) ListEarnings(ctx context.Context, providerID int64) ([]domain.Earning, error) {
	var rows []earningModel
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("earned_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Earning, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Earning{
			ID:         m.ID,
			BookingID:  m.BookingID,
			ProviderID: m.ProviderID,
			Amount:     m.Amount,
			EarnedAt:   m.EarnedAt,
		})
	}
	return out, nil
}

func (r *BookingRepository) TotalEarnings(ctx context.Context, providerID int64) (float64, error) {
	var total *float64
	err := r.db.WithContext(ctx).
		Model(&earningModel{}).
		Select("SUM(amount)").
		Where("provider_id = ?", providerID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
