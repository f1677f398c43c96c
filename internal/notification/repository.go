package notification

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreateInApp(ctx context.Context, n *InAppNotification) error
	ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error)
	MarkInAppRead(ctx context.Context, id uint, userID uint) error

	UpsertDeviceToken(ctx context.Context, t *FCMDeviceToken) error
	DeleteDeviceToken(ctx context.Context, userID uint, token string) error
	GetDeviceTokens(ctx context.Context, userID uint) ([]string, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) CreateInApp(ctx context.Context, n *InAppNotification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error) {
	if limit <= 0 {
		limit = 50
	}
	var notifications []InAppNotification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *repository) MarkInAppRead(ctx context.Context, id uint, userID uint) error {
	res := r.db.WithContext(ctx).
		Model(&InAppNotification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) UpsertDeviceToken(ctx context.Context, t *FCMDeviceToken) error {
	var existing FCMDeviceToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND device_token = ?", t.UserID, t.DeviceToken).
		First(&existing).Error
	if err == nil {
		existing.DeviceType = t.DeviceType
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) DeleteDeviceToken(ctx context.Context, userID uint, token string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND device_token = ?", userID, token).
		Delete(&FCMDeviceToken{}).Error
}

func (r *repository) GetDeviceTokens(ctx context.Context, userID uint) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).
		Model(&FCMDeviceToken{}).
		Where("user_id = ?", userID).
		Pluck("device_token", &tokens).Error
	return tokens, err
}
