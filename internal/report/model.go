package report

import "time"

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// Summary is the periodic business report: income, growth, attendance and
// retention over a single window ending today.
type Summary struct {
	Period     Period           `json:"period"`
	StartDate  time.Time        `json:"start_date"`
	EndDate    time.Time        `json:"end_date"`
	Income     IncomeReport     `json:"income"`
	Members    MemberReport     `json:"members"`
	Attendance AttendanceReport `json:"attendance"`
	Retention  RetentionReport  `json:"retention"`
}

type IncomeReport struct {
	Total    float64          `json:"total"`
	ByPlan   []IncomeByPlan   `json:"by_plan"`
	ByMethod []IncomeByMethod `json:"by_payment_method"`
}

type IncomeByPlan struct {
	PlanName string  `db:"plan_name" json:"plan_name"`
	Total    float64 `db:"total" json:"total"`
	Count    int     `db:"count" json:"count"`
}

type IncomeByMethod struct {
	PaymentMethod string  `db:"payment_method" json:"payment_method"`
	Total         float64 `db:"total" json:"total"`
	Count         int     `db:"count" json:"count"`
}

type MemberReport struct {
	NewCount int `json:"new_count"`
}

type AttendanceReport struct {
	TotalVisits  int         `json:"total_visits"`
	DailyAverage float64     `json:"daily_average"`
	TopMembers   []TopMember `json:"top_members"`
}

type TopMember struct {
	MemberID           int    `db:"member_id" json:"member_id"`
	MemberFirstName    string `db:"member_first_name" json:"member_first_name"`
	MemberLastPaternal string `db:"member_last_paternal" json:"member_last_paternal"`
	VisitCount         int    `db:"visit_count" json:"visit_count"`
}

type RetentionReport struct {
	ActiveMembers  int     `json:"active_members"`
	TotalMembers   int     `json:"total_members"`
	RetentionRate  float64 `json:"retention_rate"`
	ExpiredInRange int     `json:"expired_in_period"`
	RenewedInRange int     `json:"renewed_in_period"`
	RenewalRate    float64 `json:"renewal_rate"`
}

// MonthlyComparison lists per-month totals for trend charts, oldest first.
type MonthlyComparison struct {
	Months []MonthSummary `json:"months"`
}

type MonthSummary struct {
	Month      time.Time `db:"month" json:"month"`
	Income     float64   `db:"income" json:"income"`
	NewMembers int       `db:"new_members" json:"new_members"`
	Visits     int       `db:"visits" json:"visits"`
}
