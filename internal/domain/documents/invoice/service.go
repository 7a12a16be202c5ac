package invoice

import (
	"context"
	"fmt"
	"time"

	"tripdesk/internal/core/actor"
	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/id"
	"tripdesk/internal/core/sequence"
	"tripdesk/internal/core/tx"
	"tripdesk/internal/domain"
	"tripdesk/internal/domain/documents/order"
	"tripdesk/pkg/logger"
)

// OrderSource supplies order rows under a lock. Satisfied by the order
// repository.
type OrderSource interface {
	GetForUpdate(ctx context.Context, orderID id.ID) (*order.Order, error)
}

// Service provides business logic for invoices.
type Service struct {
	repo      Repository
	orders    OrderSource
	txManager tx.Manager
	issuer    sequence.Issuer
}

// NewService creates a new Invoice service.
func NewService(repo Repository, orders OrderSource, txm tx.Manager, issuer sequence.Issuer) *Service {
	return &Service{
		repo:      repo,
		orders:    orders,
		txManager: txm,
		issuer:    issuer,
	}
}

// CreateForOrder issues a pending invoice billing the order at its current
// total. The document number comes from its own short transaction; the
// insert then locks the order row so the mirrored amounts cannot race a
// concurrent price change.
func (s *Service) CreateForOrder(ctx context.Context, orderID id.ID) (*Invoice, error) {
	number, err := s.issuer.IssueNumber(ctx, sequence.DocumentTypeInvoice, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("generate invoice number: %w", err)
	}

	var inv *Invoice
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status == order.StatusCancelled {
			return apperror.NewBusinessRule("ORDER_CANCELLED", "cancelled order cannot be invoiced").
				WithDetail("orderId", orderID.String())
		}

		if existing, err := s.repo.GetByOrderID(ctx, orderID); err == nil {
			return apperror.NewDuplicate("invoice", "orderId", orderID.String()).
				WithDetail("invoiceId", existing.ID.String())
		} else if !apperror.IsNotFound(err) {
			return err
		}

		inv = New(orderID, o.TotalAmount, o.Currency)
		inv.Number = number
		inv.StampActor(actor.UserID(ctx))

		if err := s.repo.Create(ctx, inv); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice created",
		"invoiceId", inv.ID, "number", inv.Number, "orderId", orderID, "amount", inv.AmountInclTax)
	return inv, nil
}

// GetByID retrieves an invoice by ID.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	return s.repo.GetByID(ctx, invoiceID)
}

// GetByOrderID retrieves the invoice billing an order.
func (s *Service) GetByOrderID(ctx context.Context, orderID id.ID) (*Invoice, error) {
	return s.repo.GetByOrderID(ctx, orderID)
}

// List retrieves invoices with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Invoice], error) {
	return s.repo.List(ctx, filter)
}

// SetStatus moves the invoice through its lifecycle. Terminal states reject
// every transition; reaching one freezes the amounts and, through the guard,
// the order price.
func (s *Service) SetStatus(ctx context.Context, invoiceID id.ID, newStatus Status) (*Invoice, error) {
	if !newStatus.Valid() {
		return nil, apperror.NewValidation("invalid invoice status").
			WithDetail("value", string(newStatus))
	}

	var updated *Invoice
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.repo.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}

		if !inv.Status.CanTransition(newStatus) {
			if inv.Status.Terminal() {
				return apperror.NewImmutableInvoice(inv.ID.String(), string(inv.Status))
			}
			return apperror.NewInvalidTransition(string(inv.Status), string(newStatus))
		}

		inv.Status = newStatus
		inv.Touch()
		inv.StampActor(actor.UserID(ctx))
		if err := s.repo.Update(ctx, inv); err != nil {
			return fmt.Errorf("update invoice status: %w", err)
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice status changed", "invoiceId", invoiceID, "status", newStatus)
	return updated, nil
}
