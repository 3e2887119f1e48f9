package infrastructure

import (
	"context"
	"time"

	"FinControl/internal/domain/transaction"
	appErrors "FinControl/internal/errors"
	"FinControl/internal/pkg"
	"FinControl/internal/pkg/query"

	"cloud.google.com/go/civil"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const transactionsTable = "transactions"

type TransactionRepository struct {
	DB *gorm.DB
}

var _ transaction.Repository = (*TransactionRepository)(nil)

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

type transactionDB struct {
	Id                  string          `gorm:"type:varchar(26);primaryKey;column:id"`
	UserId              string          `gorm:"type:varchar(26);index;not null;column:user_id"`
	CategoryId          string          `gorm:"type:varchar(26);index;not null;column:category_id"`
	Type                string          `gorm:"type:varchar(10);not null;column:type"`
	Amount              decimal.Decimal `gorm:"type:decimal(12,2);not null;column:amount"`
	Description         string          `gorm:"size:500;column:description"`
	Date                time.Time       `gorm:"type:date;not null;column:date"`
	IsRecurring         bool            `gorm:"not null;default:false;index:idx_transactions_due,priority:1;column:is_recurring"`
	RecurrenceType      *string         `gorm:"type:varchar(10);column:recurrence_type"`
	RecurrenceEndDate   *time.Time      `gorm:"type:date;column:recurrence_end_date"`
	NextOccurrence      *time.Time      `gorm:"type:date;index:idx_transactions_due,priority:2;column:next_occurrence"`
	ParentTransactionId *string         `gorm:"type:varchar(26);index;column:parent_transaction_id"`
	CreatedAt           time.Time       `gorm:"not null;column:created_at"`
	UpdatedAt           time.Time       `gorm:"not null;column:updated_at"`
}

func (transactionDB) TableName() string {
	return transactionsTable
}

func toDomainTransaction(tdb *transactionDB) (*transaction.Transaction, error) {
	id, err := pkg.ParseULID(tdb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(tdb.UserId)
	if err != nil {
		return nil, err
	}
	cid, err := pkg.ParseULID(tdb.CategoryId)
	if err != nil {
		return nil, err
	}
	parentID, err := pkg.ParseULIDPtr(tdb.ParentTransactionId)
	if err != nil {
		return nil, err
	}

	var recurrenceType *transaction.RecurrenceType
	if tdb.RecurrenceType != nil && *tdb.RecurrenceType != "" {
		recurrenceType = transaction.RecurrenceType(*tdb.RecurrenceType).Ptr()
	}

	return &transaction.Transaction{
		Id:                  id,
		UserId:              uid,
		CategoryId:          cid,
		Type:                transaction.Types(tdb.Type),
		Amount:              tdb.Amount,
		Description:         tdb.Description,
		Date:                pkg.TimeToDate(tdb.Date),
		IsRecurring:         tdb.IsRecurring,
		RecurrenceType:      recurrenceType,
		RecurrenceEndDate:   pkg.TimePtrToDate(tdb.RecurrenceEndDate),
		NextOccurrence:      pkg.TimePtrToDate(tdb.NextOccurrence),
		ParentTransactionId: parentID,
		CreatedAt:           tdb.CreatedAt,
		UpdatedAt:           tdb.UpdatedAt,
	}, nil
}

func toDBTransaction(t *transaction.Transaction) *transactionDB {
	var recurrenceType *string
	if t.RecurrenceType != nil {
		s := string(*t.RecurrenceType)
		recurrenceType = &s
	}

	return &transactionDB{
		Id:                  t.Id.String(),
		UserId:              t.UserId.String(),
		CategoryId:          t.CategoryId.String(),
		Type:                string(t.Type),
		Amount:              t.Amount,
		Description:         t.Description,
		Date:                pkg.DateToTime(t.Date),
		IsRecurring:         t.IsRecurring,
		RecurrenceType:      recurrenceType,
		RecurrenceEndDate:   pkg.DatePtrToTime(t.RecurrenceEndDate),
		NextOccurrence:      pkg.DatePtrToTime(t.NextOccurrence),
		ParentTransactionId: pkg.ULIDPtrToString(t.ParentTransactionId),
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	return r.DB.WithContext(ctx).Table(transactionsTable).Create(toDBTransaction(t)).Error
}

func (r *TransactionRepository) Delete(ctx context.Context, transactionID, userID ulid.ULID) error {
	result := r.DB.WithContext(ctx).Table(transactionsTable).
		Where("id = ? AND user_id = ?", transactionID.String(), userID.String()).
		Delete(&transactionDB{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, transactionID, userID ulid.ULID) (*transaction.Transaction, error) {
	row, err := query.New[transactionDB](ctx, r.DB, transactionsTable).
		Where("id = ? AND user_id = ?", transactionID.String(), userID.String()).
		First()
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(row)
}

func (r *TransactionRepository) GetAll(ctx context.Context, userID ulid.ULID, filters *transaction.Filters, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	if filters == nil {
		filters = &transaction.Filters{}
	}

	q := query.New[transactionDB](ctx, r.DB, transactionsTable).
		Where("user_id = ?", userID.String()).
		WhereIf(filters.Type != nil, "type = ?", typeValue(filters.Type)).
		WhereIf(filters.CategoryID != nil, "category_id = ?", ulidValue(filters.CategoryID)).
		WhereIf(filters.ParentID != nil, "parent_transaction_id = ?", ulidValue(filters.ParentID)).
		WhereIf(filters.DateFrom != nil, "date >= ?", pkg.DatePtrToTime(filters.DateFrom)).
		WhereIf(filters.DateTo != nil, "date <= ?", pkg.DatePtrToTime(filters.DateTo)).
		Order("date DESC, id DESC")

	result, err := query.Paginate(q, pagination.AsPage(), toDomainTransaction)
	if err != nil {
		return nil, 0, err
	}
	return result.Data, result.Total, nil
}

func (r *TransactionRepository) GetTemplates(ctx context.Context, userID ulid.ULID, activeOnly bool, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	q := query.New[transactionDB](ctx, r.DB, transactionsTable).
		Where("user_id = ?", userID.String()).
		Where("recurrence_type IS NOT NULL AND parent_transaction_id IS NULL").
		WhereIf(activeOnly, "is_recurring = ?", true).
		Order("created_at DESC, id DESC")

	result, err := query.Paginate(q, pagination.AsPage(), toDomainTransaction)
	if err != nil {
		return nil, 0, err
	}
	return result.Data, result.Total, nil
}

func (r *TransactionRepository) FindByParent(ctx context.Context, parentID, userID ulid.ULID) ([]*transaction.Transaction, error) {
	q := query.New[transactionDB](ctx, r.DB, transactionsTable).
		Where("parent_transaction_id = ? AND user_id = ?", parentID.String(), userID.String()).
		Order("date DESC, id DESC")

	return query.ExecuteAll(q, toDomainTransaction)
}

func (r *TransactionRepository) FindDue(ctx context.Context, today civil.Date) ([]*transaction.Transaction, error) {
	q := query.New[transactionDB](ctx, r.DB, transactionsTable).
		Where("is_recurring = ?", true).
		Where("next_occurrence IS NOT NULL AND next_occurrence <= ?", pkg.DateToTime(today)).
		Order("next_occurrence ASC, id ASC")

	return query.ExecuteAll(q, toDomainTransaction)
}

func (r *TransactionRepository) AdvanceNextOccurrence(ctx context.Context, transactionID ulid.ULID, current, next civil.Date) error {
	result := r.DB.WithContext(ctx).Table(transactionsTable).
		Where("id = ? AND is_recurring = ? AND next_occurrence = ?", transactionID.String(), true, pkg.DateToTime(current)).
		Updates(map[string]interface{}{
			"next_occurrence": pkg.DateToTime(next),
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrStaleTemplate
	}
	return nil
}

func (r *TransactionRepository) Deactivate(ctx context.Context, transactionID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table(transactionsTable).
		Where("id = ?", transactionID.String()).
		Updates(map[string]interface{}{
			"is_recurring":    false,
			"next_occurrence": nil,
			"updated_at":      time.Now(),
		}).Error
}

func (r *TransactionRepository) UpdateRecurrenceRule(ctx context.Context, transactionID ulid.ULID, recurrenceType transaction.RecurrenceType, endDate *civil.Date, next civil.Date) error {
	var end interface{}
	if endDate != nil {
		end = pkg.DateToTime(*endDate)
	}

	result := r.DB.WithContext(ctx).Table(transactionsTable).
		Where("id = ? AND is_recurring = ?", transactionID.String(), true).
		Updates(map[string]interface{}{
			"recurrence_type":     string(recurrenceType),
			"recurrence_end_date": end,
			"next_occurrence":     pkg.DateToTime(next),
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TransactionRepository) WithinTransaction(ctx context.Context, fn func(repo transaction.Repository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&TransactionRepository{DB: tx})
	})
}

func typeValue(t *transaction.Types) string {
	if t == nil {
		return ""
	}
	return string(*t)
}

func ulidValue(id *ulid.ULID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
