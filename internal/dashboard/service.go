package dashboard

import (
	"context"

	"github.com/myos14/gymAdmin/internal/dates"
	"github.com/myos14/gymAdmin/internal/metrics"
	"github.com/myos14/gymAdmin/internal/subscription"
)

const (
	defaultExpiringDays = 7
	defaultRecentLimit  = 5
	defaultStatsDays    = 7
	maxRecentLimit      = 50
	maxStatsDays        = 90
	topPlansLimit       = 5
)

type Service interface {
	Summary(ctx context.Context, expiringDays, recentLimit, statsDays int) (*Summary, error)
}

type service struct {
	repo             Repository
	subscriptionRepo subscription.Repository
}

func NewService(repo Repository, subscriptionRepo subscription.Repository) Service {
	return &service{repo: repo, subscriptionRepo: subscriptionRepo}
}

func (s *service) Summary(ctx context.Context, expiringDays, recentLimit, statsDays int) (*Summary, error) {
	if expiringDays <= 0 {
		expiringDays = defaultExpiringDays
	}
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
	}
	if recentLimit > maxRecentLimit {
		recentLimit = maxRecentLimit
	}
	if statsDays <= 0 {
		statsDays = defaultStatsDays
	}
	if statsDays > maxStatsDays {
		statsDays = maxStatsDays
	}

	// Stored statuses must be current before counting and listing them.
	if _, err := s.subscriptionRepo.ExpireOverdue(ctx); err != nil {
		return nil, err
	}

	m, err := s.repo.Metrics(ctx)
	if err != nil {
		return nil, err
	}
	metrics.SetMembersInGym(m.CurrentInGym)

	pm, err := s.repo.PaymentMetrics(ctx)
	if err != nil {
		return nil, err
	}

	expiring, err := s.repo.ExpiringSubscriptions(ctx, expiringDays)
	if err != nil {
		return nil, err
	}
	if expiring == nil {
		expiring = []ExpiringSubscription{}
	}

	checkIns, err := s.repo.RecentCheckIns(ctx, recentLimit, expiringDays)
	if err != nil {
		return nil, err
	}
	if checkIns == nil {
		checkIns = []RecentCheckIn{}
	}

	payments, err := s.repo.RecentPayments(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []RecentPayment{}
	}

	since := dates.Today().AddDate(0, 0, -(statsDays - 1))
	weekly, err := s.repo.DailyActivity(ctx, since)
	if err != nil {
		return nil, err
	}
	if weekly == nil {
		weekly = []DailyActivity{}
	}

	plans, err := s.repo.PlanMetrics(ctx, topPlansLimit)
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []PlanSubscriptionCount{}
	}

	return &Summary{
		Metrics:        *m,
		PaymentMetrics: *pm,
		Expiring:       expiring,
		RecentCheckIns: checkIns,
		RecentPayments: payments,
		WeeklyStats:    weekly,
		PlanMetrics:    plans,
	}, nil
}
