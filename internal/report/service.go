package report

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/myos14/gymAdmin/internal/dates"
	"github.com/myos14/gymAdmin/internal/subscription"
)

var ErrInvalidPeriod = errors.New("period must be week, month or year")

const (
	topMembersLimit  = 10
	comparisonMonths = 6
)

type Service interface {
	Summary(ctx context.Context, period Period) (*Summary, error)
	MonthlyComparison(ctx context.Context) (*MonthlyComparison, error)
}

type service struct {
	repo             Repository
	subscriptionRepo subscription.Repository
}

func NewService(repo Repository, subscriptionRepo subscription.Repository) Service {
	return &service{repo: repo, subscriptionRepo: subscriptionRepo}
}

func (s *service) Summary(ctx context.Context, period Period) (*Summary, error) {
	if !period.Valid() {
		return nil, ErrInvalidPeriod
	}

	end := dates.Today()
	start := periodStart(period, end)

	if _, err := s.subscriptionRepo.ExpireOverdue(ctx); err != nil {
		return nil, err
	}

	total, err := s.repo.IncomeTotal(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byPlan, err := s.repo.IncomeByPlan(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if byPlan == nil {
		byPlan = []IncomeByPlan{}
	}

	byMethod, err := s.repo.IncomeByMethod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if byMethod == nil {
		byMethod = []IncomeByMethod{}
	}

	newMembers, err := s.repo.NewMembers(ctx, start, end)
	if err != nil {
		return nil, err
	}

	visits, err := s.repo.TotalVisits(ctx, start, end)
	if err != nil {
		return nil, err
	}

	topMembers, err := s.repo.TopMembers(ctx, start, end, topMembersLimit)
	if err != nil {
		return nil, err
	}
	if topMembers == nil {
		topMembers = []TopMember{}
	}

	active, totalMembers, err := s.repo.MemberCounts(ctx)
	if err != nil {
		return nil, err
	}

	expired, err := s.repo.ExpiredInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	renewed, err := s.repo.RenewedInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	days := int(end.Sub(start).Hours()/24) + 1

	return &Summary{
		Period:    period,
		StartDate: start,
		EndDate:   end,
		Income: IncomeReport{
			Total:    total,
			ByPlan:   byPlan,
			ByMethod: byMethod,
		},
		Members: MemberReport{NewCount: newMembers},
		Attendance: AttendanceReport{
			TotalVisits:  visits,
			DailyAverage: round1(float64(visits) / float64(days)),
			TopMembers:   topMembers,
		},
		Retention: RetentionReport{
			ActiveMembers:  active,
			TotalMembers:   totalMembers,
			RetentionRate:  rate(active, totalMembers),
			ExpiredInRange: expired,
			RenewedInRange: renewed,
			RenewalRate:    rate(renewed, expired),
		},
	}, nil
}

func (s *service) MonthlyComparison(ctx context.Context) (*MonthlyComparison, error) {
	months, err := s.repo.MonthlySummaries(ctx, comparisonMonths)
	if err != nil {
		return nil, err
	}
	if months == nil {
		months = []MonthSummary{}
	}

	return &MonthlyComparison{Months: months}, nil
}

// periodStart returns the inclusive lower bound: the window covers the last
// 7 days, the current calendar month, or the current calendar year.
func periodStart(period Period, today time.Time) time.Time {
	switch period {
	case PeriodWeek:
		return today.AddDate(0, 0, -6)
	case PeriodMonth:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

func rate(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round1(float64(part) / float64(whole) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
