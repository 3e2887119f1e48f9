package notification

import (
	"context"
	"errors"

	appErrors "FinControl/internal/errors"
	"FinControl/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) List(ctx context.Context, userID ulid.ULID, onlyUnread bool, pagination *pkg.PaginationParams) ([]*Notification, int64, error) {
	notifications, total, err := s.Repository.ListByUser(ctx, userID, onlyUnread, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return notifications, total, nil
}

func (s *Service) CountUnread(ctx context.Context, userID ulid.ULID) (int64, error) {
	count, err := s.Repository.CountUnread(ctx, userID)
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}
	return count, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID ulid.ULID) error {
	if err := s.Repository.MarkAsRead(ctx, notificationID, userID); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID ulid.ULID) (int64, error) {
	updated, err := s.Repository.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, notificationID, userID ulid.ULID) error {
	if err := s.Repository.Delete(ctx, notificationID, userID); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func (s *Service) DeleteAllRead(ctx context.Context, userID ulid.ULID) (int64, error) {
	deleted, err := s.Repository.DeleteAllRead(ctx, userID)
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}
	return deleted, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appErrors.ErrNotificationNotFound
	}
	return appErrors.NewDatabaseError(err)
}
