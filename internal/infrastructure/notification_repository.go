package infrastructure

import (
	"context"
	"time"

	"FinControl/internal/domain/notification"
	"FinControl/internal/pkg"
	"FinControl/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

const notificationsTable = "notifications"

type NotificationRepository struct {
	DB *gorm.DB
}

var _ notification.Repository = (*NotificationRepository)(nil)

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

type notificationDB struct {
	Id          string    `gorm:"type:varchar(26);primaryKey;column:id"`
	UserId      string    `gorm:"type:varchar(26);index:idx_notifications_user_read,priority:1;not null;column:user_id"`
	Title       string    `gorm:"size:255;not null;column:title"`
	Message     string    `gorm:"type:text;not null;column:message"`
	Type        string    `gorm:"type:varchar(10);not null;default:info;column:type"`
	Category    string    `gorm:"type:varchar(15);column:category"`
	IsRead      bool      `gorm:"not null;default:false;index:idx_notifications_user_read,priority:2;column:is_read"`
	RelatedId   *string   `gorm:"type:varchar(26);column:related_id"`
	RelatedType string    `gorm:"type:varchar(30);column:related_type"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`
	UpdatedAt   time.Time `gorm:"not null;column:updated_at"`
}

func (notificationDB) TableName() string {
	return notificationsTable
}

func toDomainNotification(ndb *notificationDB) (*notification.Notification, error) {
	id, err := pkg.ParseULID(ndb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(ndb.UserId)
	if err != nil {
		return nil, err
	}
	relatedID, err := pkg.ParseULIDPtr(ndb.RelatedId)
	if err != nil {
		return nil, err
	}

	return &notification.Notification{
		Id:          id,
		UserId:      uid,
		Title:       ndb.Title,
		Message:     ndb.Message,
		Type:        notification.Types(ndb.Type),
		Category:    notification.Category(ndb.Category),
		IsRead:      ndb.IsRead,
		RelatedId:   relatedID,
		RelatedType: ndb.RelatedType,
		CreatedAt:   ndb.CreatedAt,
		UpdatedAt:   ndb.UpdatedAt,
	}, nil
}

func toDBNotification(n *notification.Notification) *notificationDB {
	return &notificationDB{
		Id:          n.Id.String(),
		UserId:      n.UserId.String(),
		Title:       n.Title,
		Message:     n.Message,
		Type:        string(n.Type),
		Category:    string(n.Category),
		IsRead:      n.IsRead,
		RelatedId:   pkg.ULIDPtrToString(n.RelatedId),
		RelatedType: n.RelatedType,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return r.DB.WithContext(ctx).Table(notificationsTable).Create(toDBNotification(n)).Error
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID ulid.ULID, onlyUnread bool, pagination *pkg.PaginationParams) ([]*notification.Notification, int64, error) {
	q := query.New[notificationDB](ctx, r.DB, notificationsTable).
		Where("user_id = ?", userID.String()).
		WhereIf(onlyUnread, "is_read = ?", false).
		Order("created_at DESC, id DESC")

	result, err := query.Paginate(q, pagination.AsPage(), toDomainNotification)
	if err != nil {
		return nil, 0, err
	}
	return result.Data, result.Total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID ulid.ULID) (int64, error) {
	return query.New[notificationDB](ctx, r.DB, notificationsTable).
		Where("user_id = ? AND is_read = ?", userID.String(), false).
		Count()
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, notificationID, userID ulid.ULID) error {
	if _, err := query.New[notificationDB](ctx, r.DB, notificationsTable).
		Where("id = ? AND user_id = ?", notificationID.String(), userID.String()).
		First(); err != nil {
		return err
	}

	return r.DB.WithContext(ctx).Table(notificationsTable).
		Where("id = ? AND user_id = ?", notificationID.String(), userID.String()).
		Updates(map[string]interface{}{"is_read": true, "updated_at": time.Now()}).Error
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID ulid.ULID) (int64, error) {
	result := r.DB.WithContext(ctx).Table(notificationsTable).
		Where("user_id = ? AND is_read = ?", userID.String(), false).
		Updates(map[string]interface{}{"is_read": true, "updated_at": time.Now()})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepository) Delete(ctx context.Context, notificationID, userID ulid.ULID) error {
	result := r.DB.WithContext(ctx).Table(notificationsTable).
		Where("id = ? AND user_id = ?", notificationID.String(), userID.String()).
		Delete(&notificationDB{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) DeleteAllRead(ctx context.Context, userID ulid.ULID) (int64, error) {
	result := r.DB.WithContext(ctx).Table(notificationsTable).
		Where("user_id = ? AND is_read = ?", userID.String(), true).
		Delete(&notificationDB{})
	return result.RowsAffected, result.Error
}
