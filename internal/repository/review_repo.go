package repository

import (
	"context"
	"time"

	"servicehub/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	BookingID  int64     `gorm:"column:booking_id;uniqueIndex"`
	UserID     int64     `gorm:"column:user_id;index"`
	ProviderID int64     `gorm:"column:provider_id;index"`
	Rating     int       `gorm:"column:rating"`
	Comment    *string   `gorm:"column:comment"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) domain.Review {
	r := domain.Review{
		ID:         m.ID,
		BookingID:  m.BookingID,
		UserID:     m.UserID,
		ProviderID: m.ProviderID,
		Rating:     m.Rating,
		CreatedAt:  m.CreatedAt,
	}
	if m.Comment != nil {
		r.Comment = *m.Comment
	}
	return r
}

// Create inserts the review. The unique index on booking_id enforces
// one review per booking; callers translate the violation with
// IsUniqueViolation.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := reviewModel{
		BookingID:  rv.BookingID,
		UserID:     rv.UserID,
		ProviderID: rv.ProviderID,
		Rating:     rv.Rating,
		Comment:    optional(rv.Comment),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*rv = toDomainReview(m)
	return nil
}

func (r *ReviewRepository) GetByBooking(ctx context.Context, bookingID int64) (*domain.Review, error) {
	var m reviewModel
	tx := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	rv := toDomainReview(m)
	return &rv, nil
}

func (r *ReviewRepository) ListByProvider(ctx context.Context, providerID int64) ([]domain.Review, error) {
	var rows []reviewModel
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainReview(m))
	}
	return out, nil
}

// Aggregates recomputes the provider's average rating and review count
// from the stored rows.
func (r *ReviewRepository) Aggregates(ctx context.Context, providerID int64) (average float64, total int, err error) {
	var res struct {
		Avg   *float64
		Count int
	}
	err = r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where("provider_id = ?", providerID).
		Scan(&res).Error
	if err != nil {
		return 0, 0, err
	}
	if res.Avg != nil {
		average = *res.Avg
	}
	return average, res.Count, nil
}
