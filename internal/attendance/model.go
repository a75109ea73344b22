package attendance

import "time"

type Attendance struct {
	ID              int        `db:"id" json:"id"`
	MemberID        int        `db:"member_id" json:"member_id"`
	SubscriptionID  *int       `db:"subscription_id" json:"subscription_id,omitempty"`
	CheckInTime     time.Time  `db:"check_in_time" json:"check_in_time"`
	CheckOutTime    *time.Time `db:"check_out_time" json:"check_out_time,omitempty"`
	Date            time.Time  `db:"date" json:"date"`
	DurationMinutes *int       `db:"duration_minutes" json:"duration_minutes,omitempty"`
	Notes           *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// AttendanceWithMember backs the currently-in-gym and history listings.
type AttendanceWithMember struct {
	Attendance
	MemberFirstName    string  `db:"member_first_name" json:"member_first_name"`
	MemberLastPaternal string  `db:"member_last_paternal" json:"member_last_paternal"`
	MemberEmail        *string `db:"member_email" json:"member_email,omitempty"`
	MemberPhone        *string `db:"member_phone" json:"member_phone,omitempty"`
}

type CheckInRequest struct {
	MemberID int    `json:"member_id" binding:"required,gt=0"`
	Notes    string `json:"notes"`
}

type CheckOutRequest struct {
	Notes string `json:"notes"`
}

type DailyStats struct {
	TotalVisits            int      `json:"total_visits"`
	UniqueMembers          int      `json:"unique_members"`
	AverageDurationMinutes *float64 `json:"average_duration_minutes,omitempty"`
	CurrentMembersInGym    int      `json:"current_members_in_gym"`
}

// ListFilter mirrors the query parameters of GET /attendance.
type ListFilter struct {
	MemberID   int
	StartDate  *time.Time
	EndDate    *time.Time
	OnlyActive bool // open sessions only
	Skip       int
	Limit      int
}
