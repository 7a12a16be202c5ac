package order

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tripdesk/internal/core/actor"
	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/id"
	"tripdesk/internal/core/sequence"
	"tripdesk/internal/core/tx"
	"tripdesk/internal/domain"
	"tripdesk/pkg/logger"
)

// PriceGuard is consulted inside the order's transaction whenever the order
// total is about to change. Implementations keep dependent documents
// consistent with the new price, or veto the change by returning an error.
type PriceGuard interface {
	OnOrderPriceChange(ctx context.Context, orderID id.ID, newPrice decimal.Decimal) error
}

// Service provides business logic for orders.
type Service struct {
	repo      Repository
	txManager tx.Manager
	issuer    sequence.Issuer
	guard     PriceGuard
}

// NewService creates a new Order service.
func NewService(repo Repository, txm tx.Manager, issuer sequence.Issuer, guard PriceGuard) *Service {
	return &Service{
		repo:      repo,
		txManager: txm,
		issuer:    issuer,
		guard:     guard,
	}
}

// Create creates a draft order. The document number is issued in its own
// short transaction before the insert, so a failed insert spends a number but
// never leaves a numbered row behind.
func (s *Service) Create(ctx context.Context, o *Order) error {
	o.RecalculateTotal()
	if err := o.Validate(ctx); err != nil {
		return err
	}

	if o.Number == "" {
		number, err := s.issuer.IssueNumber(ctx, sequence.DocumentTypeOrder, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("generate order number: %w", err)
		}
		o.Number = number
	}
	o.StampActor(actor.UserID(ctx))

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, o); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return s.repo.SaveLines(ctx, o.ID, o.Lines)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "order created", "orderId", o.ID, "number", o.Number, "total", o.TotalAmount)
	return nil
}

// GetByID retrieves an order with its lines.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.Lines, err = s.repo.GetLines(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	return o, nil
}

// GetByNumber retrieves an order by document number, with its lines.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Order, error) {
	o, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	o.Lines, err = s.repo.GetLines(ctx, o.ID)
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	return o, nil
}

// List retrieves orders with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Order], error) {
	return s.repo.List(ctx, filter)
}

// Update replaces the order's lines and header fields. When the recalculated
// total differs from the stored one, the price guard runs inside the same
// transaction: a veto rolls back the whole update.
func (s *Service) Update(ctx context.Context, o *Order) error {
	o.RecalculateTotal()
	if err := o.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, o.ID)
		if err != nil {
			return err
		}
		if current.Status == StatusCancelled {
			return apperror.NewBusinessRule("ORDER_CANCELLED", "cancelled order cannot be modified").
				WithDetail("orderId", o.ID.String())
		}
		if o.Number != current.Number {
			return apperror.NewValidation("order number is immutable").
				WithDetail("field", "number")
		}

		if !o.TotalAmount.Equal(current.TotalAmount) {
			if err := s.guard.OnOrderPriceChange(ctx, o.ID, o.TotalAmount); err != nil {
				return err
			}
		}

		o.Touch()
		o.StampActor(actor.UserID(ctx))
		if err := s.repo.Update(ctx, o); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		return s.repo.SaveLines(ctx, o.ID, o.Lines)
	})
}

// ChangePrice overrides the order total directly, bypassing line math. The
// guard runs inside the transaction; if it vetoes, the price stays as it was.
func (s *Service) ChangePrice(ctx context.Context, orderID id.ID, newTotal decimal.Decimal) (*Order, error) {
	if newTotal.IsNegative() {
		return nil, apperror.NewValidation("total amount must not be negative").
			WithDetail("field", "totalAmount")
	}

	var updated *Order
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		o, err := s.repo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status == StatusCancelled {
			return apperror.NewBusinessRule("ORDER_CANCELLED", "cancelled order cannot be modified").
				WithDetail("orderId", orderID.String())
		}

		if o.TotalAmount.Equal(newTotal) {
			updated = o
			return nil
		}

		if err := s.guard.OnOrderPriceChange(ctx, orderID, newTotal); err != nil {
			return err
		}

		o.TotalAmount = newTotal
		o.Touch()
		o.StampActor(actor.UserID(ctx))
		if err := s.repo.Update(ctx, o); err != nil {
			return fmt.Errorf("change order price: %w", err)
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "order price changed", "orderId", orderID, "total", newTotal)
	return updated, nil
}

// SetStatus moves the order through its lifecycle.
// Allowed: DRAFT -> CONFIRMED, DRAFT/CONFIRMED -> CANCELLED.
func (s *Service) SetStatus(ctx context.Context, orderID id.ID, newStatus Status) (*Order, error) {
	if !newStatus.Valid() {
		return nil, apperror.NewValidation("invalid order status").
			WithDetail("value", string(newStatus))
	}

	var updated *Order
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		o, err := s.repo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		if !canTransition(o.Status, newStatus) {
			return apperror.NewInvalidTransition(string(o.Status), string(newStatus))
		}

		o.Status = newStatus
		o.Touch()
		o.StampActor(actor.UserID(ctx))
		if err := s.repo.Update(ctx, o); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func canTransition(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled
	}
	return false
}

// Delete soft-deletes a draft order.
func (s *Service) Delete(ctx context.Context, orderID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		o, err := s.repo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status != StatusDraft {
			return apperror.NewBusinessRule("ORDER_NOT_DRAFT", "only draft orders can be deleted").
				WithDetail("orderId", orderID.String()).
				WithDetail("status", string(o.Status))
		}
		return s.repo.SetDeletionMark(ctx, orderID, true)
	})
}
