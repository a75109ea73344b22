package subscription

import "context"

type Repository interface {
	// Create inserts a subscription after verifying, inside one transaction,
	// that the member has no active subscription. Returns
	// ErrActiveSubscriptionExists otherwise.
	Create(ctx context.Context, sub *Subscription) (*Subscription, error)

	// Renew inserts the replacement subscription and marks the current one
	// expired in one transaction.
	Renew(ctx context.Context, currentID int, replacement *Subscription) (*Subscription, error)

	GetByID(ctx context.Context, id int) (*Subscription, error)
	GetActiveByMember(ctx context.Context, memberID int) (*Subscription, error)
	List(ctx context.Context, filter ListFilter) ([]SubscriptionWithDetails, error)

	// Cancel flips an active subscription to cancelled. Returns
	// ErrNotActive when the row exists but is not active, or
	// ErrSubscriptionNotFound when it does not exist.
	Cancel(ctx context.Context, id int) (*Subscription, error)

	Update(ctx context.Context, id int, req UpdateSubscriptionRequest) (*Subscription, error)
	Delete(ctx context.Context, id int) error

	// ExpireOverdue lazily flips active subscriptions whose end date has
	// passed. Called on read paths so status is never stale.
	ExpireOverdue(ctx context.Context) (int64, error)
}
