package infrastructure

import (
	"context"

	"FinControl/internal/domain/recurring"
	"FinControl/internal/logger"

	"gorm.io/gorm"
)

// AdvisoryLocker serializa o lote de recorrências entre instâncias com um advisory lock
// de sessão do PostgreSQL. O lock vive na conexão reservada até fn retornar.
type AdvisoryLocker struct {
	DB  *gorm.DB
	Key int64
}

var _ recurring.Locker = (*AdvisoryLocker)(nil)

func NewAdvisoryLocker(db *gorm.DB, key int64) *AdvisoryLocker {
	return &AdvisoryLocker{DB: db, Key: key}
}

func (l *AdvisoryLocker) WithLock(ctx context.Context, fn func(ctx context.Context) error) error {
	return l.DB.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		var acquired bool
		if err := conn.Raw("SELECT pg_try_advisory_lock(?)", l.Key).Row().Scan(&acquired); err != nil {
			return err
		}
		if !acquired {
			return recurring.ErrLockNotAcquired
		}

		defer func() {
			if err := conn.WithContext(context.Background()).Exec("SELECT pg_advisory_unlock(?)", l.Key).Error; err != nil {
				logger.Error().Err(err).Int64("lock_key", l.Key).Msg("Erro ao liberar advisory lock")
			}
		}()

		return fn(ctx)
	})
}
