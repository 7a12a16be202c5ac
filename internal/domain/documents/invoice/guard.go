package invoice

import (
	"context"

	"github.com/shopspring/decimal"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/id"
	"tripdesk/pkg/logger"
)

// Guard keeps the invoice consistent with its order's price. It runs inside
// the order's transaction, so a veto rolls the price change back and an
// accepted change commits atomically with the mirrored amounts.
type Guard struct {
	repo Repository
}

// NewGuard creates a new consistency guard.
func NewGuard(repo Repository) *Guard {
	return &Guard{repo: repo}
}

// OnOrderPriceChange reacts to a pending order price change.
//
// No invoice: the order is free to change, nothing to do. Open invoice
// (PENDING or UNPAID): the invoice amounts are rewritten to mirror the new
// price. Terminal invoice (PAID or CANCELLED): the change is vetoed.
func (g *Guard) OnOrderPriceChange(ctx context.Context, orderID id.ID, newPrice decimal.Decimal) error {
	inv, err := g.repo.GetByOrderIDForUpdate(ctx, orderID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}

	if inv.Status.Terminal() {
		return apperror.NewImmutableInvoice(inv.ID.String(), string(inv.Status)).
			WithDetail("orderId", orderID.String())
	}

	// Mirror the full price into the invoice; tax stays out of the mirrored
	// value, so excl. and incl. amounts both equal the new price.
	if err := g.repo.UpdateAmounts(ctx, inv.ID, newPrice, decimal.Zero, newPrice); err != nil {
		return err
	}

	logger.Debug(ctx, "invoice amounts mirrored from order",
		"invoiceId", inv.ID, "orderId", orderID, "amount", newPrice)
	return nil
}
