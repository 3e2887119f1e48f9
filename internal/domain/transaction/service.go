package transaction

import (
	"context"
	"errors"
	"strings"
	"time"

	appErrors "FinControl/internal/errors"
	"FinControl/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

const maxDescriptionLength = 500

type Service struct {
	Repository Repository
	Now        func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo, Now: time.Now}
}

func (s *Service) CreateTransaction(ctx context.Context, draft Draft) (*Transaction, error) {
	if err := ValidateDraft(&draft); err != nil {
		return nil, err
	}

	tx := NewFromDraft(draft, s.now())
	if err := s.Repository.Create(ctx, tx); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return tx, nil
}

func (s *Service) GetTransactionByID(ctx context.Context, transactionID, userID ulid.ULID) (*Transaction, error) {
	tx, err := s.Repository.GetByID(ctx, transactionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrTransactionNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return tx, nil
}

func (s *Service) GetAllTransactions(ctx context.Context, userID ulid.ULID, filters *Filters, pagination *pkg.PaginationParams) ([]*Transaction, int64, error) {
	if filters != nil && filters.DateFrom != nil && filters.DateTo != nil && filters.DateTo.Before(*filters.DateFrom) {
		return nil, 0, appErrors.NewValidationError("date_to", "data final anterior à data inicial")
	}

	transactions, total, err := s.Repository.GetAll(ctx, userID, filters, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return transactions, total, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, transactionID, userID ulid.ULID) error {
	if _, err := s.GetTransactionByID(ctx, transactionID, userID); err != nil {
		return err
	}

	if err := s.Repository.Delete(ctx, transactionID, userID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// ValidateDraft normaliza a descrição e rejeita rascunhos que não podem ser persistidos.
func ValidateDraft(draft *Draft) error {
	if !draft.Type.IsValid() {
		return appErrors.NewValidationError("type", "tipo invalido")
	}

	if !draft.Amount.IsPositive() {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	if pkg.IsEmptyULID(draft.UserId) {
		return appErrors.NewValidationError("user_id", "é obrigatório")
	}

	if pkg.IsEmptyULID(draft.CategoryId) {
		return appErrors.NewValidationError("category_id", "é obrigatório")
	}

	draft.Description = strings.TrimSpace(draft.Description)
	if len([]rune(draft.Description)) > maxDescriptionLength {
		return appErrors.NewValidationError("description", "deve ter no máximo 500 caracteres")
	}

	if !draft.Date.IsValid() {
		return appErrors.NewValidationError("date", "data invalida")
	}

	return nil
}

func NewFromDraft(draft Draft, now time.Time) *Transaction {
	return &Transaction{
		Id:          pkg.GenerateULIDObject(),
		UserId:      draft.UserId,
		CategoryId:  draft.CategoryId,
		Type:        draft.Type,
		Amount:      draft.Amount,
		Description: draft.Description,
		Date:        draft.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
