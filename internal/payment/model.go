package payment

import "time"

type Payment struct {
	ID             int       `db:"id" json:"id"`
	MemberID       int       `db:"member_id" json:"member_id"`
	SubscriptionID int       `db:"subscription_id" json:"subscription_id"`
	Amount         float64   `db:"amount" json:"amount"`
	PaymentMethod  string    `db:"payment_method" json:"payment_method"`
	PaymentDate    time.Time `db:"payment_date" json:"payment_date"`
	Notes          *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// PaymentWithDetails joins the names clients need for receipts and listings.
type PaymentWithDetails struct {
	Payment
	MemberFirstName    string `db:"member_first_name" json:"member_first_name"`
	MemberLastPaternal string `db:"member_last_paternal" json:"member_last_paternal"`
	PlanName           string `db:"plan_name" json:"plan_name"`
}

type CreatePaymentRequest struct {
	MemberID       int     `json:"member_id" binding:"required,gt=0"`
	SubscriptionID int     `json:"subscription_id" binding:"required,gt=0"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod  string  `json:"payment_method" binding:"omitempty,oneof=cash card transfer"`
	PaymentDate    string  `json:"payment_date" binding:"omitempty"`
	Notes          string  `json:"notes"`
}

type ListFilter struct {
	MemberID       int
	SubscriptionID int
	PaymentMethod  string
	StartDate      *time.Time
	EndDate        *time.Time
	Skip           int
	Limit          int
}
