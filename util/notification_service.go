// util/notification_service.go

package util

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	logger "github.com/campusforge/aegis/logging"
	"github.com/campusforge/aegis/model"
)

// NotificationStore is the slice of the notification table the service
// needs for its retention sweep.
type NotificationStore interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NotificationService owns delivery-side concerns for notification rows.
// The rows themselves are written transactionally by the component that
// produced them; this service announces policy changes and prunes rows
// past the retention window.
type NotificationService struct {
	store     NotificationStore
	retention time.Duration
	interval  time.Duration
}

func NewNotificationService(store NotificationStore, retention, interval time.Duration) *NotificationService {
	return &NotificationService{
		store:     store,
		retention: retention,
		interval:  interval,
	}
}

// StartRetentionSweep launches the periodic deletion of aged notification
// rows. The sweep only deletes rows older than the retention window, so
// it is idempotent and safe to run concurrently with everything else.
func (n *NotificationService) StartRetentionSweep(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(n.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				n.sweep(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (n *NotificationService) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-n.retention)
	deleted, err := n.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logger.Error("Notification retention sweep failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		logger.Info("Notification retention sweep completed",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff))
	}
}

func (n *NotificationService) NotifyPolicyChange(ctx context.Context, changeType string, policy model.Policy) error {
	switch changeType {
	case "created":
		logger.Info("NOTIFICATION: New policy created",
			zap.String("policyID", policy.ID),
			zap.String("subject", policy.Subject),
			zap.String("action", policy.Action))
	case "updated":
		logger.Info("NOTIFICATION: Policy updated",
			zap.String("policyID", policy.ID))
	case "deleted":
		logger.Info("NOTIFICATION: Policy deleted",
			zap.String("policyID", policy.ID))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}

	return nil
}
