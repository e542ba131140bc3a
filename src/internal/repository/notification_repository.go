package repository

import (
	"context"

	"trip-service/src/internal/entity"
	"trip-service/src/pkg/databases/mysql"
)

type NotificationRepository struct {
	DB mysql.DBInterface
}

func NewNotificationRepository(db mysql.DBInterface) *NotificationRepository {
	return &NotificationRepository{
		DB: db,
	}
}

// Create persists the notification and its recipient rows in one transaction.
// Read state on recipients is owned by the delivery mechanism; rows start
// unread.
func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification, recipientUserIDs []uint64) (uint64, error) {
	var notificationID uint64

	err := r.DB.WithTransaction(ctx, func(tx mysql.Executor) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO notifications (organization_id, type, target_id, meta, created_by_id, created_at)
			VALUES (?, ?, ?, ?, ?, NOW())
		`,
			notification.OrganizationID,
			string(notification.Type),
			notification.TargetID,
			notification.Meta,
			notification.CreatedByID,
		)
		if err != nil {
			return err
		}

		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		notificationID = uint64(id)

		for _, userID := range recipientUserIDs {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO notification_recipients (notification_id, user_id, is_read, created_at)
				VALUES (?, ?, 0, NOW())
			`, notificationID, userID)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return notificationID, nil
}
