package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/myos14/gymAdmin/internal/dates"
	"github.com/myos14/gymAdmin/internal/logger"
	"github.com/myos14/gymAdmin/internal/member"
	"github.com/myos14/gymAdmin/internal/metrics"
	"github.com/myos14/gymAdmin/internal/subscription"
)

var (
	ErrMemberNotFound       = errors.New("member not found")
	ErrMemberInactive       = errors.New("member is not active")
	ErrNoActiveSubscription = errors.New("member has no active subscription")
)

const defaultHistoryDays = 30

type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest) (*Attendance, error)
	CheckOut(ctx context.Context, id int, req CheckOutRequest) (*Attendance, error)
	GetByID(ctx context.Context, id int) (*Attendance, error)
	List(ctx context.Context, filter ListFilter) ([]Attendance, error)
	CurrentInGym(ctx context.Context) ([]AttendanceWithMember, error)
	MemberHistory(ctx context.Context, memberID, days int) ([]Attendance, error)
	DailyStats(ctx context.Context, targetDate *time.Time) (*DailyStats, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo             Repository
	memberRepo       member.Repository
	subscriptionRepo subscription.Repository
}

func NewService(repo Repository, memberRepo member.Repository, subscriptionRepo subscription.Repository) Service {
	return &service{
		repo:             repo,
		memberRepo:       memberRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// CheckIn admits a member only while an active subscription covers today.
// The subscription is recorded on the visit so history survives later
// renewals and cancellations.
func (s *service) CheckIn(ctx context.Context, req CheckInRequest) (*Attendance, error) {
	m, err := s.memberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if !m.IsActive {
		return nil, ErrMemberInactive
	}

	sub, err := s.subscriptionRepo.GetActiveByMember(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return nil, ErrNoActiveSubscription
		}
		return nil, err
	}

	rec, err := s.repo.CheckIn(ctx, req.MemberID, &sub.ID, optionalNotes(req.Notes))
	if err != nil {
		return nil, err
	}

	logger.Infof("Member %d checked in (attendance=%d)", rec.MemberID, rec.ID)
	metrics.RecordCheckIn()

	return rec, nil
}

func (s *service) CheckOut(ctx context.Context, id int, req CheckOutRequest) (*Attendance, error) {
	rec, err := s.repo.CheckOut(ctx, id, optionalNotes(req.Notes))
	if err != nil {
		return nil, err
	}

	logger.Infof("Member %d checked out (attendance=%d)", rec.MemberID, rec.ID)
	metrics.RecordCheckOut()

	return rec, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Attendance, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Attendance, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	recs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []Attendance{}
	}

	return recs, nil
}

func (s *service) CurrentInGym(ctx context.Context) ([]AttendanceWithMember, error) {
	recs, err := s.repo.ListCurrentInGym(ctx)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []AttendanceWithMember{}
	}

	return recs, nil
}

func (s *service) MemberHistory(ctx context.Context, memberID, days int) ([]Attendance, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if days <= 0 {
		days = defaultHistoryDays
	}
	since := dates.Today().AddDate(0, 0, -days)

	recs, err := s.repo.MemberHistory(ctx, memberID, since)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []Attendance{}
	}

	return recs, nil
}

// DailyStats defaults to today. The currently-in-gym count is only
// meaningful for today and stays zero for past dates.
func (s *service) DailyStats(ctx context.Context, targetDate *time.Time) (*DailyStats, error) {
	today := dates.Today()
	day := today
	if targetDate != nil {
		day = dates.Normalize(*targetDate)
	}

	return s.repo.DailyStats(ctx, day, day.Equal(today))
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func optionalNotes(notes string) *string {
	if notes == "" {
		return nil
	}
	return &notes
}
