package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"servicehub/internal/domain"

	"gorm.io/gorm"
)

type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

type providerModel struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	UserID             int64     `gorm:"column:user_id;uniqueIndex"`
	BusinessName       string    `gorm:"column:business_name"`
	Description        *string   `gorm:"column:description"`
	Location           *string   `gorm:"column:location"`
	VerificationStatus string    `gorm:"column:verification_status;index"`
	IsOnline           bool      `gorm:"column:is_online"`
	AvailableDays      []string  `gorm:"column:available_days;serializer:json"`
	AvailableStartTime string    `gorm:"column:available_start_time"`
	AvailableEndTime   string    `gorm:"column:available_end_time"`
	AverageRating      float64   `gorm:"column:average_rating"`
	TotalReviews       int       `gorm:"column:total_reviews"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (providerModel) TableName() string { return "providers" }

type categoryModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	Description *string   `gorm:"column:description"`
	Icon        *string   `gorm:"column:icon"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (categoryModel) TableName() string { return "service_categories" }

type providerServiceModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	ProviderID      int64     `gorm:"column:provider_id;index"`
	CategoryID      int64     `gorm:"column:category_id;index"`
	Price           *float64  `gorm:"column:price"`
	DurationMinutes int       `gorm:"column:duration_minutes"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (providerServiceModel) TableName() string { return "provider_services" }

func toDomainProvider(m providerModel) *domain.Provider {
	p := &domain.Provider{
		ID:                 m.ID,
		UserID:             m.UserID,
		BusinessName:       m.BusinessName,
		VerificationStatus: domain.VerificationStatus(m.VerificationStatus),
		IsOnline:           m.IsOnline,
		AvailableDays:      m.AvailableDays,
		AvailableStartTime: m.AvailableStartTime,
		AvailableEndTime:   m.AvailableEndTime,
		AverageRating:      m.AverageRating,
		TotalReviews:       m.TotalReviews,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if m.Description != nil {
		p.Description = *m.Description
	}
	if m.Location != nil {
		p.Location = *m.Location
	}
	return p
}

func toDomainCategory(m categoryModel) domain.ServiceCategory {
	c := domain.ServiceCategory{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
	if m.Description != nil {
		c.Description = *m.Description
	}
	if m.Icon != nil {
		c.Icon = *m.Icon
	}
	return c
}

func (r *ProviderRepository) Create(ctx context.Context, p *domain.Provider) error {
	m := providerModel{
		UserID:             p.UserID,
		BusinessName:       p.BusinessName,
		Description:        optional(p.Description),
		Location:           optional(p.Location),
		VerificationStatus: string(p.VerificationStatus),
		IsOnline:           p.IsOnline,
		AvailableDays:      p.AvailableDays,
		AvailableStartTime: p.AvailableStartTime,
		AvailableEndTime:   p.AvailableEndTime,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProvider(m)
	return nil
}

func (r *ProviderRepository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	var m providerModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	p := toDomainProvider(m)
	services, err := r.servicesFor(ctx, []int64{p.ID})
	if err != nil {
		return nil, err
	}
	p.Services = services[p.ID]
	return p, nil
}

func (r *ProviderRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error) {
	var m providerModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProvider(m), nil
}

// ListFilter narrows the verified-provider listing.
type ListFilter struct {
	CategoryID int64
	Location   string
	MinRating  float64
	OnlineOnly bool
}

// Key builds a stable cache key for the filter combination.
func (f ListFilter) Key() string {
	var sb strings.Builder
	sb.WriteString("v")
	if f.CategoryID > 0 {
		sb.WriteString(":cat=")
		sb.WriteString(strconv.FormatInt(f.CategoryID, 10))
	}
	if f.Location != "" {
		sb.WriteString(":loc=")
		sb.WriteString(strings.ToLower(strings.TrimSpace(f.Location)))
	}
	if f.MinRating > 0 {
		sb.WriteString(":minr=")
		sb.WriteString(strconv.FormatFloat(f.MinRating, 'f', 1, 64))
	}
	if f.OnlineOnly {
		sb.WriteString(":online")
	}
	return sb.String()
}

// ListVerified returns verified providers matching the filter,
// highest-rated first, with their services and categories attached.
func (r *ProviderRepository) ListVerified(ctx context.Context, f ListFilter) ([]domain.Provider, error) {
	q := r.db.WithContext(ctx).
		Model(&providerModel{}).
		Where("verification_status = ?", string(domain.VerificationVerified))

	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.MinRating > 0 {
		q = q.Where("average_rating >= ?", f.MinRating)
	}
	if f.OnlineOnly {
		q = q.Where("is_online = ?", true)
	}
	if f.CategoryID > 0 {
		q = q.Where("id IN (?)", r.db.
			Model(&providerServiceModel{}).
			Select("provider_id").
			Where("category_id = ?", f.CategoryID))
	}

	var rows []providerModel
	if err := q.Order("average_rating DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.ID)
	}
	services, err := r.servicesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Provider, 0, len(rows))
	for _, m := range rows {
		p := toDomainProvider(m)
		p.Services = services[p.ID]
		out = append(out, *p)
	}
	return out, nil
}

// ListPending returns providers still awaiting verification, oldest first.
func (r *ProviderRepository) ListPending(ctx context.Context, limit, offset int) ([]domain.Provider, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	base := r.db.WithContext(ctx).
		Model(&providerModel{}).
		Where("verification_status = ?", string(domain.VerificationPending))
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []providerModel
	if err := base.Order("created_at ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Provider, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProvider(m))
	}
	return out, total, nil
}

func (r *ProviderRepository) UpdateVerification(ctx context.Context, providerID int64, status domain.VerificationStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&providerModel{}).
		Where("id = ?", providerID).
		Updates(map[string]any{
			"verification_status": string(status),
			"updated_at":          time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProviderRepository) SetOnline(ctx context.Context, providerID int64, online bool) error {
	return r.db.WithContext(ctx).
		Model(&providerModel{}).
		Where("id = ?", providerID).
		Updates(map[string]any{"is_online": online, "updated_at": time.Now().UTC()}).Error
}

// UpdateRatingAggregates stores the derived average and count. Readers
// never recompute these.
func (r *ProviderRepository) UpdateRatingAggregates(ctx context.Context, providerID int64, average float64, total int) error {
	return r.db.WithContext(ctx).
		Model(&providerModel{}).
		Where("id = ?", providerID).
		Updates(map[string]any{
			"average_rating": average,
			"total_reviews":  total,
			"updated_at":     time.Now().UTC(),
		}).Error
}

func (r *ProviderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&providerModel{}).Count(&n).Error
	return n, err
}

// ---- categories and services ----

func (r *ProviderRepository) ListCategories(ctx context.Context) ([]domain.ServiceCategory, error) {
	var rows []categoryModel
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ServiceCategory, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainCategory(m))
	}
	return out, nil
}

func (r *ProviderRepository) CreateCategory(ctx context.Context, c *domain.ServiceCategory) error {
	m := categoryModel{
		Name:        c.Name,
		Description: optional(c.Description),
		Icon:        optional(c.Icon),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = toDomainCategory(m)
	return nil
}

func (r *ProviderRepository) CreateService(ctx context.Context, s *domain.ProviderService) error {
	m := providerServiceModel{
		ProviderID:      s.ProviderID,
		CategoryID:      s.CategoryID,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	s.ID = m.ID
	s.CreatedAt = m.CreatedAt
	return nil
}

func (r *ProviderRepository) GetService(ctx context.Context, serviceID int64) (*domain.ProviderService, error) {
	var m providerServiceModel
	tx := r.db.WithContext(ctx).First(&m, serviceID)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &domain.ProviderService{
		ID:              m.ID,
		ProviderID:      m.ProviderID,
		CategoryID:      m.CategoryID,
		Price:           m.Price,
		DurationMinutes: m.DurationMinutes,
		CreatedAt:       m.CreatedAt,
	}, nil
}

func (r *ProviderRepository) servicesFor(ctx context.Context, providerIDs []int64) (map[int64][]domain.ProviderService, error) {
	out := make(map[int64][]domain.ProviderService)
	if len(providerIDs) == 0 {
		return out, nil
	}

	var rows []providerServiceModel
	if err := r.db.WithContext(ctx).Where("provider_id IN ?", providerIDs).Find(&rows).Error; err != nil {
		return nil, err
	}

	catIDs := make([]int64, 0, len(rows))
	for _, m := range rows {
		catIDs = append(catIDs, m.CategoryID)
	}
	cats := make(map[int64]domain.ServiceCategory)
	if len(catIDs) > 0 {
		var catRows []categoryModel
		if err := r.db.WithContext(ctx).Where("id IN ?", catIDs).Find(&catRows).Error; err != nil {
			return nil, err
		}
		for _, cm := range catRows {
			cats[cm.ID] = toDomainCategory(cm)
		}
	}

	for _, m := range rows {
		svc := domain.ProviderService{
			ID:              m.ID,
			ProviderID:      m.ProviderID,
			CategoryID:      m.CategoryID,
			Price:           m.Price,
			DurationMinutes: m.DurationMinutes,
			CreatedAt:       m.CreatedAt,
		}
		if cat, ok := cats[m.CategoryID]; ok {
			c := cat
			svc.Category = &c
		}
		out[m.ProviderID] = append(out[m.ProviderID], svc)
	}
	return out, nil
}

func (r *ProviderRepository) DB() *gorm.DB { return r.db }
