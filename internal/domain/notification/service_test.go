package notification_test

import (
	"context"
	"errors"
	"testing"

	"FinControl/internal/domain/notification"
	appErrors "FinControl/internal/errors"
	"FinControl/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestListPassesUnreadFilter(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	var gotUnread bool
	repo := &fakeRepository{listByUserFn: func(ctx context.Context, uid ulid.ULID, onlyUnread bool, pagination *pkg.PaginationParams) ([]*notification.Notification, int64, error) {
		gotUnread = onlyUnread
		return []*notification.Notification{{UserId: uid}}, 1, nil
	}}

	items, total, err := notification.NewService(repo).List(context.Background(), userID, true, nil)
	require.NoError(t, err)
	assert.True(t, gotUnread)
	assert.Len(t, items, 1)
	assert.EqualValues(t, 1, total)
}

func TestMarkAsRead(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode string
	}{
		{name: "ok"},
		{name: "not found", repoErr: gorm.ErrRecordNotFound, wantCode: "NOTIFICATION_NOT_FOUND"},
		{name: "database", repoErr: errors.New("boom"), wantCode: "DATABASE_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{markAsReadFn: func(ctx context.Context, id, userID ulid.ULID) error {
				return tt.repoErr
			}}

			err := notification.NewService(repo).MarkAsRead(context.Background(), pkg.GenerateULIDObject(), pkg.GenerateULIDObject())
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			appErr, ok := appErrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestCountUnreadWrapsDatabaseError(t *testing.T) {
	repo := &fakeRepository{countUnreadFn: func(ctx context.Context, userID ulid.ULID) (int64, error) {
		return 0, errors.New("boom")
	}}

	_, err := notification.NewService(repo).CountUnread(context.Background(), pkg.GenerateULIDObject())
	appErr, ok := appErrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "DATABASE_ERROR", appErr.Code)
}

func TestDeleteNotFound(t *testing.T) {
	repo := &fakeRepository{deleteFn: func(ctx context.Context, id, userID ulid.ULID) error {
		return gorm.ErrRecordNotFound
	}}

	err := notification.NewService(repo).Delete(context.Background(), pkg.GenerateULIDObject(), pkg.GenerateULIDObject())
	assert.True(t, errors.Is(err, appErrors.ErrNotificationNotFound))
}
