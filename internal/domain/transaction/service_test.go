package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"FinControl/internal/domain/transaction"
	appErrors "FinControl/internal/errors"
	"FinControl/internal/pkg"

	"cloud.google.com/go/civil"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepository struct {
	transaction.Repository

	createFn  func(ctx context.Context, tx *transaction.Transaction) error
	deleteFn  func(ctx context.Context, id, userID ulid.ULID) error
	getByIDFn func(ctx context.Context, id, userID ulid.ULID) (*transaction.Transaction, error)
	getAllFn  func(ctx context.Context, userID ulid.ULID, filters *transaction.Filters, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error)
}

func (f *fakeRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	if f.createFn != nil {
		return f.createFn(ctx, tx)
	}
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id, userID ulid.ULID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id, userID)
	}
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id, userID ulid.ULID) (*transaction.Transaction, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) GetAll(ctx context.Context, userID ulid.ULID, filters *transaction.Filters, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx, userID, filters, pagination)
	}
	return nil, 0, nil
}

func validDraft() transaction.Draft {
	return transaction.Draft{
		UserId:      pkg.GenerateULIDObject(),
		CategoryId:  pkg.GenerateULIDObject(),
		Type:        transaction.Income,
		Amount:      decimal.RequireFromString("3500.00"),
		Description: " Salário ",
		Date:        civil.Date{Year: 2025, Month: time.March, Day: 5},
	}
}

func TestCreateTransaction(t *testing.T) {
	now := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	var stored *transaction.Transaction
	repo := &fakeRepository{
		createFn: func(ctx context.Context, tx *transaction.Transaction) error {
			stored = tx
			return nil
		},
	}
	svc := transaction.NewService(repo)
	svc.Now = func() time.Time { return now }

	tx, err := svc.CreateTransaction(context.Background(), validDraft())
	require.NoError(t, err)
	require.Same(t, stored, tx)

	assert.False(t, pkg.IsEmptyULID(tx.Id))
	assert.Equal(t, "Salário", tx.Description)
	assert.False(t, tx.IsRecurring)
	assert.Nil(t, tx.NextOccurrence)
	assert.Equal(t, now, tx.CreatedAt)
}

func TestCreateTransactionValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(d *transaction.Draft)
		wantField string
	}{
		{name: "invalid type", mutate: func(d *transaction.Draft) { d.Type = "transfer" }, wantField: "type"},
		{name: "zero amount", mutate: func(d *transaction.Draft) { d.Amount = decimal.Zero }, wantField: "amount"},
		{name: "missing category", mutate: func(d *transaction.Draft) { d.CategoryId = ulid.ULID{} }, wantField: "category_id"},
		{name: "missing user", mutate: func(d *transaction.Draft) { d.UserId = ulid.ULID{} }, wantField: "user_id"},
		{name: "invalid date", mutate: func(d *transaction.Draft) { d.Date = civil.Date{Year: 2025, Month: time.February, Day: 30} }, wantField: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			repo := &fakeRepository{createFn: func(ctx context.Context, tx *transaction.Transaction) error {
				called = true
				return nil
			}}

			draft := validDraft()
			tt.mutate(&draft)

			_, err := transaction.NewService(repo).CreateTransaction(context.Background(), draft)
			appErr, ok := appErrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			assert.Equal(t, tt.wantField, appErr.Details["field"])
			assert.False(t, called)
		})
	}
}

func TestGetTransactionByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		_, err := transaction.NewService(&fakeRepository{}).GetTransactionByID(context.Background(), pkg.GenerateULIDObject(), pkg.GenerateULIDObject())
		assert.True(t, errors.Is(err, appErrors.ErrTransactionNotFound))
	})

	t.Run("database error", func(t *testing.T) {
		repo := &fakeRepository{getByIDFn: func(ctx context.Context, id, userID ulid.ULID) (*transaction.Transaction, error) {
			return nil, errors.New("timeout")
		}}
		_, err := transaction.NewService(repo).GetTransactionByID(context.Background(), pkg.GenerateULIDObject(), pkg.GenerateULIDObject())
		appErr, ok := appErrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "DATABASE_ERROR", appErr.Code)
	})
}

func TestGetAllTransactionsRejectsInvertedRange(t *testing.T) {
	from := civil.Date{Year: 2025, Month: time.March, Day: 10}
	to := civil.Date{Year: 2025, Month: time.March, Day: 1}

	_, _, err := transaction.NewService(&fakeRepository{}).GetAllTransactions(context.Background(), pkg.GenerateULIDObject(), &transaction.Filters{DateFrom: &from, DateTo: &to}, nil)
	appErr, ok := appErrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "date_to", appErr.Details["field"])
}

func TestDeleteTransaction(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	existing := &transaction.Transaction{Id: pkg.GenerateULIDObject(), UserId: userID}

	t.Run("deletes owned transaction", func(t *testing.T) {
		deleted := false
		repo := &fakeRepository{
			getByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*transaction.Transaction, error) {
				return existing, nil
			},
			deleteFn: func(ctx context.Context, id, uid ulid.ULID) error {
				deleted = id == existing.Id && uid == userID
				return nil
			},
		}
		require.NoError(t, transaction.NewService(repo).DeleteTransaction(context.Background(), existing.Id, userID))
		assert.True(t, deleted)
	})

	t.Run("missing transaction", func(t *testing.T) {
		repo := &fakeRepository{deleteFn: func(ctx context.Context, id, uid ulid.ULID) error {
			t.Fatal("delete must not be called")
			return nil
		}}
		err := transaction.NewService(repo).DeleteTransaction(context.Background(), existing.Id, userID)
		assert.True(t, errors.Is(err, appErrors.ErrTransactionNotFound))
	})
}
