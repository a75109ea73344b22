package subscription

import "time"

type Status string

type PaymentStatus string

type PaymentMethod string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"

	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"

	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
)

type Subscription struct {
	ID            int           `db:"id" json:"id"`
	MemberID      int           `db:"member_id" json:"member_id"`
	PlanID        int           `db:"plan_id" json:"plan_id"`
	PlanPrice     float64       `db:"plan_price" json:"plan_price"`
	StartDate     time.Time     `db:"start_date" json:"start_date"`
	EndDate       *time.Time    `db:"end_date" json:"end_date,omitempty"` // nil for permanent plans
	Status        Status        `db:"status" json:"status"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"payment_method"`
	AmountPaid    float64       `db:"amount_paid" json:"amount_paid"`
	Notes         *string       `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`

	// DaysRemaining is computed on read, never stored. Omitted for permanent
	// subscriptions.
	DaysRemaining *int `db:"-" json:"days_remaining,omitempty"`
}

// SubscriptionWithDetails carries the joined member/plan columns the
// subscriptions page lists.
type SubscriptionWithDetails struct {
	Subscription
	MemberFirstName    string `db:"member_first_name" json:"member_first_name"`
	MemberLastPaternal string `db:"member_last_paternal" json:"member_last_paternal"`
	PlanName           string `db:"plan_name" json:"plan_name"`
	PlanDurationDays   int    `db:"plan_duration_days" json:"plan_duration_days"`
}

type CreateSubscriptionRequest struct {
	MemberID      int     `json:"member_id" binding:"required,gt=0"`
	PlanID        int     `json:"plan_id" binding:"required,gt=0"`
	StartDate     string  `json:"start_date" binding:"required"`
	PaymentStatus string  `json:"payment_status" binding:"omitempty,oneof=pending partial paid"`
	PaymentMethod string  `json:"payment_method" binding:"omitempty,oneof=cash card transfer"`
	AmountPaid    float64 `json:"amount_paid" binding:"gte=0"`
	Notes         string  `json:"notes"`
}

type RenewSubscriptionRequest struct {
	PlanID        int     `json:"plan_id" binding:"required,gt=0"`
	PaymentStatus string  `json:"payment_status" binding:"omitempty,oneof=pending partial paid"`
	PaymentMethod string  `json:"payment_method" binding:"omitempty,oneof=cash card transfer"`
	AmountPaid    float64 `json:"amount_paid" binding:"gte=0"`
	Notes         string  `json:"notes"`
}

type UpdateSubscriptionRequest struct {
	Status        *string  `json:"status" binding:"omitempty,oneof=active expired cancelled"`
	PaymentStatus *string  `json:"payment_status" binding:"omitempty,oneof=pending partial paid"`
	AmountPaid    *float64 `json:"amount_paid" binding:"omitempty,gte=0"`
	Notes         *string  `json:"notes"`
}

// ListFilter mirrors the query parameters of GET /subscriptions.
type ListFilter struct {
	Status   string
	MemberID int
	Search   string
	Skip     int
	Limit    int
}
