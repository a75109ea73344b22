package attendance

import (
	"context"
	"time"
)

type Repository interface {
	// CheckIn inserts an open record after verifying, inside one transaction,
	// that the member has no other open record. Returns ErrAlreadyCheckedIn
	// otherwise.
	CheckIn(ctx context.Context, memberID int, subscriptionID *int, notes *string) (*Attendance, error)

	// CheckOut closes an open record and computes its duration. Returns
	// ErrAlreadyCheckedOut when the record is already closed.
	CheckOut(ctx context.Context, id int, notes *string) (*Attendance, error)

	GetByID(ctx context.Context, id int) (*Attendance, error)
	List(ctx context.Context, filter ListFilter) ([]Attendance, error)
	ListCurrentInGym(ctx context.Context) ([]AttendanceWithMember, error)
	MemberHistory(ctx context.Context, memberID int, since time.Time) ([]Attendance, error)
	DailyStats(ctx context.Context, targetDate time.Time, includeOpen bool) (*DailyStats, error)
	Delete(ctx context.Context, id int) error
}
