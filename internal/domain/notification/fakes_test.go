package notification_test

import (
	"context"

	"FinControl/internal/domain/notification"
	"FinControl/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type fakeRepository struct {
	createFn        func(ctx context.Context, n *notification.Notification) error
	listByUserFn    func(ctx context.Context, userID ulid.ULID, onlyUnread bool, pagination *pkg.PaginationParams) ([]*notification.Notification, int64, error)
	countUnreadFn   func(ctx context.Context, userID ulid.ULID) (int64, error)
	markAsReadFn    func(ctx context.Context, id, userID ulid.ULID) error
	markAllAsReadFn func(ctx context.Context, userID ulid.ULID) (int64, error)
	deleteFn        func(ctx context.Context, id, userID ulid.ULID) error
	deleteAllReadFn func(ctx context.Context, userID ulid.ULID) (int64, error)
}

func (f *fakeRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	return nil
}

func (f *fakeRepository) ListByUser(ctx context.Context, userID ulid.ULID, onlyUnread bool, pagination *pkg.PaginationParams) ([]*notification.Notification, int64, error) {
	if f.listByUserFn != nil {
		return f.listByUserFn(ctx, userID, onlyUnread, pagination)
	}
	return nil, 0, nil
}

func (f *fakeRepository) CountUnread(ctx context.Context, userID ulid.ULID) (int64, error) {
	if f.countUnreadFn != nil {
		return f.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

func (f *fakeRepository) MarkAsRead(ctx context.Context, id, userID ulid.ULID) error {
	if f.markAsReadFn != nil {
		return f.markAsReadFn(ctx, id, userID)
	}
	return nil
}

func (f *fakeRepository) MarkAllAsRead(ctx context.Context, userID ulid.ULID) (int64, error) {
	if f.markAllAsReadFn != nil {
		return f.markAllAsReadFn(ctx, userID)
	}
	return 0, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id, userID ulid.ULID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id, userID)
	}
	return nil
}

func (f *fakeRepository) DeleteAllRead(ctx context.Context, userID ulid.ULID) (int64, error) {
	if f.deleteAllReadFn != nil {
		return f.deleteAllReadFn(ctx, userID)
	}
	return 0, nil
}
