package repository

import (
	"context"
	"time"

	"servicehub/internal/domain"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileModel struct {
	UserID    int64     `gorm:"column:user_id;primaryKey"`
	Email     string    `gorm:"column:email"`
	FullName  *string   `gorm:"column:full_name"`
	Phone     *string   `gorm:"column:phone"`
	Address   *string   `gorm:"column:address"`
	AvatarURL *string   `gorm:"column:avatar_url"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (profileModel) TableName() string { return "profiles" }

func toDomainProfile(m profileModel) *domain.Profile {
	p := &domain.Profile{
		UserID:    m.UserID,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.FullName != nil {
		p.FullName = *m.FullName
	}
	if m.Phone != nil {
		p.Phone = *m.Phone
	}
	if m.Address != nil {
		p.Address = *m.Address
	}
	if m.AvatarURL != nil {
		p.AvatarURL = *m.AvatarURL
	}
	return p
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	m := profileModel{
		UserID:    p.UserID,
		Email:     p.Email,
		FullName:  optional(p.FullName),
		Phone:     optional(p.Phone),
		Address:   optional(p.Address),
		AvatarURL: optional(p.AvatarURL),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProfile(m)
	return nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var m profileModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProfile(m), nil
}

// Update writes the mutable profile fields. Email is immutable
// post-creation and is deliberately absent from the update set.
func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	tx := r.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("user_id = ?", p.UserID).
		Updates(map[string]any{
			"full_name":  optional(p.FullName),
			"phone":      optional(p.Phone),
			"address":    optional(p.Address),
			"avatar_url": optional(p.AvatarURL),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
