package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"servicehub/internal/domain"

	"gorm.io/gorm"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

type refreshTokenModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	TokenHash string    `gorm:"column:token_hash;uniqueIndex"`
	Family    string    `gorm:"column:family;index"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
	Revoked   bool      `gorm:"column:revoked"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (refreshTokenModel) TableName() string { return "refresh_tokens" }

func toDomainRefreshToken(m refreshTokenModel) *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:        m.ID,
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		Family:    m.Family,
		ExpiresAt: m.ExpiresAt,
		Revoked:   m.Revoked,
		CreatedAt: m.CreatedAt,
	}
}

// HashToken derives the at-rest form of an opaque refresh token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	m := refreshTokenModel{
		ID:        t.ID,
		UserID:    t.UserID,
		TokenHash: t.TokenHash,
		Family:    t.Family,
		ExpiresAt: t.ExpiresAt,
		Revoked:   t.Revoked,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	t.CreatedAt = m.CreatedAt
	return nil
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	var m refreshTokenModel
	tx := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRefreshToken(m), nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&refreshTokenModel{}).
		Where("id = ?", id).
		Update("revoked", true).Error
}

// RevokeFamily kills every token in a rotation chain.
func (r *RefreshTokenRepository) RevokeFamily(ctx context.Context, family string) error {
	return r.db.WithContext(ctx).
		Model(&refreshTokenModel{}).
		Where("family = ?", family).
		Update("revoked", true).Error
}

func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&refreshTokenModel{}).
		Where("user_id = ?", userID).
		Update("revoked", true).Error
}

// DeleteExpired prunes rows past their expiry. Meant for a periodic
// cleanup task, not the request path.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&refreshTokenModel{})
	return tx.RowsAffected, tx.Error
}
