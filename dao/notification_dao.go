// dao/notification_dao.go
package dao

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	aegis_errors "github.com/campusforge/aegis/errors"
	logger "github.com/campusforge/aegis/logging"
	"github.com/campusforge/aegis/model"
)

// NotificationDAO serves the read side of notification rows and the
// retention sweep. Writes happen through the finance store so they join
// the transaction that produced them.
type NotificationDAO struct {
	db *gorm.DB
}

func NewNotificationDAO(db *gorm.DB) *NotificationDAO {
	return &NotificationDAO{db: db}
}

func (dao *NotificationDAO) ListForRecipient(ctx context.Context, recipientID string, limit, offset int) ([]*model.Notification, error) {
	var notifications []*model.Notification
	err := dao.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, aegis_errors.ErrDatabaseOperation
	}
	return notifications, nil
}

func (dao *NotificationDAO) MarkRead(ctx context.Context, notificationID string) error {
	result := dao.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", notificationID).
		Update("read", true)
	if result.Error != nil {
		return aegis_errors.ErrDatabaseOperation
	}
	return nil
}

// DeleteOlderThan removes notification rows past the retention window.
// Purely age-based, so the sweep is idempotent and safe to run
// concurrently with everything else.
func (dao *NotificationDAO) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := dao.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.Notification{})
	if result.Error != nil {
		logger.Error("Failed to sweep aged notifications", zap.Error(result.Error))
		return 0, aegis_errors.ErrDatabaseOperation
	}
	return result.RowsAffected, nil
}
