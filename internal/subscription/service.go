package subscription

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/myos14/gymAdmin/internal/dates"
	"github.com/myos14/gymAdmin/internal/logger"
	"github.com/myos14/gymAdmin/internal/member"
	"github.com/myos14/gymAdmin/internal/metrics"
	"github.com/myos14/gymAdmin/internal/plan"
)

var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrPlanNotFound        = errors.New("plan not found")
	ErrPlanInactive        = errors.New("plan is not active")
	ErrInvalidStartDate    = errors.New("invalid start date")
	ErrStartDateInPast     = errors.New("start date cannot be in the past")
	ErrPaidAmountRequired  = errors.New("amount paid must be positive when marked as paid")
	ErrPermanentRenewal    = errors.New("permanent subscriptions cannot be renewed")
	ErrInvalidStatusChange = errors.New("status can only be changed to cancelled")
)

type Service interface {
	Create(ctx context.Context, req CreateSubscriptionRequest) (*Subscription, error)
	Renew(ctx context.Context, id int, req RenewSubscriptionRequest) (*Subscription, error)
	Cancel(ctx context.Context, id int) (*Subscription, error)
	GetByID(ctx context.Context, id int) (*Subscription, error)
	GetActiveByMember(ctx context.Context, memberID int) (*Subscription, error)
	List(ctx context.Context, filter ListFilter) ([]SubscriptionWithDetails, error)
	Update(ctx context.Context, id int, req UpdateSubscriptionRequest) (*Subscription, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo       Repository
	memberRepo member.Repository
	planRepo   plan.Repository
}

func NewService(repo Repository, memberRepo member.Repository, planRepo plan.Repository) Service {
	return &service{
		repo:       repo,
		memberRepo: memberRepo,
		planRepo:   planRepo,
	}
}

func (s *service) Create(ctx context.Context, req CreateSubscriptionRequest) (*Subscription, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrInvalidStartDate
	}
	startDate = dates.Normalize(startDate)

	// Rejecting past start dates also prevents creating a subscription that
	// would be expired from its first moment.
	if startDate.Before(dates.Today()) {
		return nil, ErrStartDateInPast
	}

	if _, err := s.memberRepo.GetByID(ctx, req.MemberID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	p, err := s.planRepo.GetByID(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrPlanInactive
	}

	paymentStatus, paymentMethod := paymentDefaults(req.PaymentStatus, req.PaymentMethod)
	if paymentStatus == PaymentPaid && req.AmountPaid <= 0 {
		return nil, ErrPaidAmountRequired
	}

	sub := &Subscription{
		MemberID:      req.MemberID,
		PlanID:        p.ID,
		PlanPrice:     p.Price, // snapshot: later plan price changes never alter this period
		StartDate:     startDate,
		EndDate:       dates.ProjectEndDate(startDate, p.DurationDays),
		PaymentStatus: paymentStatus,
		PaymentMethod: paymentMethod,
		AmountPaid:    req.AmountPaid,
		Notes:         optionalNotes(req.Notes),
	}

	created, err := s.repo.Create(ctx, sub)
	if err != nil {
		return nil, err
	}

	logger.Infof("Subscription created: member=%d plan=%s", created.MemberID, p.Name)
	metrics.RecordSubscription(p.Name)

	return s.decorate(created), nil
}

// Renew supersedes the current period with a fresh row. The new period
// starts the day after the current end date when that is still in the
// future, otherwise today. Early renewals never lose days and late
// renewals never backfill gaps.
func (s *service) Renew(ctx context.Context, id int, req RenewSubscriptionRequest) (*Subscription, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status == StatusActive && current.EndDate == nil {
		return nil, ErrPermanentRenewal
	}

	p, err := s.planRepo.GetByID(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrPlanInactive
	}

	paymentStatus, paymentMethod := paymentDefaults(req.PaymentStatus, req.PaymentMethod)
	if paymentStatus == PaymentPaid && req.AmountPaid <= 0 {
		return nil, ErrPaidAmountRequired
	}

	startDate := dates.NextRenewalStart(current.EndDate, dates.Today())

	replacement := &Subscription{
		MemberID:      current.MemberID,
		PlanID:        p.ID,
		PlanPrice:     p.Price,
		StartDate:     startDate,
		EndDate:       dates.ProjectEndDate(startDate, p.DurationDays),
		PaymentStatus: paymentStatus,
		PaymentMethod: paymentMethod,
		AmountPaid:    req.AmountPaid,
		Notes:         optionalNotes(req.Notes),
	}

	created, err := s.repo.Renew(ctx, current.ID, replacement)
	if err != nil {
		return nil, err
	}

	logger.Infof("Subscription renewed: member=%d old=%d new=%d", created.MemberID, current.ID, created.ID)
	metrics.RecordRenewal()

	return s.decorate(created), nil
}

func (s *service) Cancel(ctx context.Context, id int) (*Subscription, error) {
	sub, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Infof("Subscription cancelled: id=%d member=%d", sub.ID, sub.MemberID)
	metrics.RecordCancellation()

	return s.decorate(sub), nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Subscription, error) {
	s.sweepExpired(ctx)

	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.decorate(sub), nil
}

func (s *service) GetActiveByMember(ctx context.Context, memberID int) (*Subscription, error) {
	s.sweepExpired(ctx)

	sub, err := s.repo.GetActiveByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return s.decorate(sub), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]SubscriptionWithDetails, error) {
	s.sweepExpired(ctx)

	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	subs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []SubscriptionWithDetails{}
	}

	for i := range subs {
		s.decorate(&subs[i].Subscription)
	}

	return subs, nil
}

func (s *service) Update(ctx context.Context, id int, req UpdateSubscriptionRequest) (*Subscription, error) {
	// The only status transition a client may request is the cancel action.
	// Expiry is derived from end dates and never set by hand.
	if req.Status != nil {
		if *req.Status != string(StatusCancelled) {
			return nil, ErrInvalidStatusChange
		}
		if req.PaymentStatus == nil && req.AmountPaid == nil && req.Notes == nil {
			return s.Cancel(ctx, id)
		}
		if _, err := s.Cancel(ctx, id); err != nil {
			return nil, err
		}
		req.Status = nil
	}

	if req.PaymentStatus != nil && *req.PaymentStatus == string(PaymentPaid) {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		amount := current.AmountPaid
		if req.AmountPaid != nil {
			amount = *req.AmountPaid
		}
		if amount <= 0 {
			return nil, ErrPaidAmountRequired
		}
	}

	sub, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return s.decorate(sub), nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// sweepExpired keeps stored status in step with the calendar. Failures only
// log: reads still return correct data because active lookups also filter by
// end date.
func (s *service) sweepExpired(ctx context.Context) {
	if n, err := s.repo.ExpireOverdue(ctx); err != nil {
		logger.Errorf("Failed to sweep expired subscriptions: %v", err)
	} else if n > 0 {
		logger.Infof("Marked %d subscriptions expired", n)
	}
}

func (s *service) decorate(sub *Subscription) *Subscription {
	if days, ok := dates.DaysRemaining(sub.EndDate, dates.Today()); ok {
		sub.DaysRemaining = &days
	}
	return sub
}

func paymentDefaults(status, method string) (PaymentStatus, PaymentMethod) {
	ps := PaymentStatus(status)
	if ps == "" {
		ps = PaymentPending
	}
	pm := PaymentMethod(method)
	if pm == "" {
		pm = MethodCash
	}
	return ps, pm
}

func optionalNotes(notes string) *string {
	if notes == "" {
		return nil
	}
	return &notes
}
