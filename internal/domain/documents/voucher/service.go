package voucher

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
	"tripdesk/internal/domain/documents/invoice"
)

// Service provides business logic for payment vouchers.
type Service struct {
	repo      Repository
	invoices  invoice.Repository
	txManager tx.Manager
	issuer    sequence.Issuer
}

// NewService creates a new PaymentVoucher service.
func NewService(repo Repository, invoices invoice.Repository, txm tx.Manager, issuer sequence.Issuer) *Service {
	return &Service{
		repo:      repo,
		invoices:  invoices,
		txManager: txm,
		issuer:    issuer,
	}
}

// CreateInput describes a payment to record.
type CreateInput struct {
	InvoiceID id.ID
	Amount    decimal.Decimal
	Method    Method
	Reference string
	Comment   string
}

// Create records a payment against an open invoice. When the recorded
// payments cover the invoice total, the invoice moves to PAID in the same
// transaction. Terminal invoices reject new payments.
func (s *Service) Create(ctx context.Context, in CreateInput) (*PaymentVoucher, error) {
	v := New(in.InvoiceID, in.Amount, in.Method)
	v.Reference = in.Reference
	v.Comment = in.Comment
	if err := v.Validate(ctx); err != nil {
		return nil, err
	}

	number, err := s.issuer.IssueNumber(ctx, sequence.DocumentTypePaymentVoucher, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("generate voucher number: %w", err)
	}
	v.Number = number
	v.StampActor(actor.UserID(ctx))

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.invoices.GetForUpdate(ctx, in.InvoiceID)
		if err != nil {
			return err
		}
		if inv.Status.Terminal() {
			return apperror.NewImmutableInvoice(inv.ID.String(), string(inv.Status))
		}

		if err := s.repo.Create(ctx, v); err != nil {
			return fmt.Errorf("create voucher: %w", err)
		}

		paid, err := s.totalPaid(ctx, in.InvoiceID)
		if err != nil {
			return err
		}
		if paid.GreaterThanOrEqual(inv.AmountInclTax) {
			inv.Status = invoice.StatusPaid
			inv.Touch()
			inv.StampActor(actor.UserID(ctx))
			if err := s.invoices.Update(ctx, inv); err != nil {
				return fmt.Errorf("settle invoice: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return v, nil
}

func (s *Service) totalPaid(ctx context.Context, invoiceID id.ID) (decimal.Decimal, error) {
	vouchers, err := s.repo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum invoice payments: %w", err)
	}
	total := decimal.Zero
	for _, v := range vouchers {
		total = total.Add(v.Amount)
	}
	return total, nil
}

// GetByID retrieves a voucher by ID.
func (s *Service) GetByID(ctx context.Context, voucherID id.ID) (*PaymentVoucher, error) {
	return s.repo.GetByID(ctx, voucherID)
}

// ListByInvoice retrieves all vouchers paying one invoice.
func (s *Service) ListByInvoice(ctx context.Context, invoiceID id.ID) ([]*PaymentVoucher, error) {
	return s.repo.ListByInvoice(ctx, invoiceID)
}

// List retrieves vouchers with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*PaymentVoucher], error) {
	return s.repo.List(ctx, filter)
}
