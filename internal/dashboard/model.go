package dashboard

import "time"

// Summary is the single payload behind the admin dashboard. Everything in it
// is a point-in-time snapshot computed on request.
type Summary struct {
	Metrics        Metrics                 `json:"metrics"`
	PaymentMetrics PaymentMetrics          `json:"payment_metrics"`
	Expiring       []ExpiringSubscription  `json:"expiring_subscriptions"`
	RecentCheckIns []RecentCheckIn         `json:"recent_checkins"`
	RecentPayments []RecentPayment         `json:"recent_payments"`
	WeeklyStats    []DailyActivity         `json:"weekly_stats"`
	PlanMetrics    []PlanSubscriptionCount `json:"plan_metrics"`
}

type Metrics struct {
	CurrentInGym        int `db:"current_in_gym" json:"current_in_gym"`
	TodayVisits         int `db:"today_visits" json:"today_visits"`
	TodayUniqueMembers  int `db:"today_unique_members" json:"today_unique_members"`
	TotalMembers        int `db:"total_members" json:"total_members"`
	ActiveMembers       int `db:"active_members" json:"active_members"`
	ActiveSubscriptions int `db:"active_subscriptions" json:"active_subscriptions"`
}

type PaymentMetrics struct {
	TodayIncome  float64 `db:"today_income" json:"today_income"`
	MonthIncome  float64 `db:"month_income" json:"month_income"`
	PendingTotal float64 `db:"pending_total" json:"pending_total"`
}

type ExpiringSubscription struct {
	SubscriptionID     int       `db:"subscription_id" json:"subscription_id"`
	MemberID           int       `db:"member_id" json:"member_id"`
	MemberFirstName    string    `db:"member_first_name" json:"member_first_name"`
	MemberLastPaternal string    `db:"member_last_paternal" json:"member_last_paternal"`
	MemberPhone        *string   `db:"member_phone" json:"member_phone,omitempty"`
	MemberEmail        *string   `db:"member_email" json:"member_email,omitempty"`
	PlanName           string    `db:"plan_name" json:"plan_name"`
	EndDate            time.Time `db:"end_date" json:"end_date"`
	DaysRemaining      int       `db:"days_remaining" json:"days_remaining"`
}

type RecentCheckIn struct {
	AttendanceID       int       `db:"attendance_id" json:"attendance_id"`
	MemberID           int       `db:"member_id" json:"member_id"`
	MemberFirstName    string    `db:"member_first_name" json:"member_first_name"`
	MemberLastPaternal string    `db:"member_last_paternal" json:"member_last_paternal"`
	CheckInTime        time.Time `db:"check_in_time" json:"check_in_time"`
	SubscriptionStatus string    `db:"subscription_status" json:"subscription_status"`
}

type RecentPayment struct {
	PaymentID          int       `db:"payment_id" json:"payment_id"`
	MemberID           int       `db:"member_id" json:"member_id"`
	MemberFirstName    string    `db:"member_first_name" json:"member_first_name"`
	MemberLastPaternal string    `db:"member_last_paternal" json:"member_last_paternal"`
	PlanName           string    `db:"plan_name" json:"plan_name"`
	Amount             float64   `db:"amount" json:"amount"`
	PaymentMethod      string    `db:"payment_method" json:"payment_method"`
	PaymentDate        time.Time `db:"payment_date" json:"payment_date"`
}

type DailyActivity struct {
	Date   time.Time `db:"date" json:"date"`
	Visits int       `db:"visits" json:"visits"`
	Income float64   `db:"income" json:"income"`
}

type PlanSubscriptionCount struct {
	PlanID      int    `db:"plan_id" json:"plan_id"`
	PlanName    string `db:"plan_name" json:"plan_name"`
	ActiveCount int    `db:"active_count" json:"active_count"`
}
