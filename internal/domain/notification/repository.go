package notification

import (
	"context"

	"FinControl/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	ListByUser(ctx context.Context, userID ulid.ULID, onlyUnread bool, pagination *pkg.PaginationParams) ([]*Notification, int64, error)
	CountUnread(ctx context.Context, userID ulid.ULID) (int64, error)
	// MarkAsRead devolve gorm.ErrRecordNotFound quando a notificação não pertence ao usuário.
	MarkAsRead(ctx context.Context, notificationID, userID ulid.ULID) error
	MarkAllAsRead(ctx context.Context, userID ulid.ULID) (int64, error)
	Delete(ctx context.Context, notificationID, userID ulid.ULID) error
	DeleteAllRead(ctx context.Context, userID ulid.ULID) (int64, error)
}
