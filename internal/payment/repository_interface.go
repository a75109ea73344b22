package payment

import "context"

type Repository interface {
	// Create inserts the payment and, in the same transaction, refreshes the
	// subscription's amount_paid and payment_status from the payment total.
	Create(ctx context.Context, p *Payment) (*Payment, error)

	GetByID(ctx context.Context, id int) (*PaymentWithDetails, error)
	List(ctx context.Context, filter ListFilter) ([]PaymentWithDetails, error)
}
