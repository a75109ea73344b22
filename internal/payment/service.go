package payment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/myos14/gymAdmin/internal/dates"
	"github.com/myos14/gymAdmin/internal/email"
	"github.com/myos14/gymAdmin/internal/logger"
	"github.com/myos14/gymAdmin/internal/member"
	"github.com/myos14/gymAdmin/internal/metrics"
	"github.com/myos14/gymAdmin/internal/subscription"
)

var (
	ErrMemberNotFound       = errors.New("member not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrSubscriptionMismatch = errors.New("subscription does not belong to the member")
	ErrInvalidPaymentDate   = errors.New("invalid payment date")
)

type Service interface {
	Create(ctx context.Context, req CreatePaymentRequest) (*Payment, error)
	GetByID(ctx context.Context, id int) (*PaymentWithDetails, error)
	List(ctx context.Context, filter ListFilter) ([]PaymentWithDetails, error)
}

type service struct {
	repo             Repository
	memberRepo       member.Repository
	subscriptionRepo subscription.Repository
	emailService     *email.Service
}

func NewService(repo Repository, memberRepo member.Repository, subscriptionRepo subscription.Repository, emailService *email.Service) Service {
	return &service{
		repo:             repo,
		memberRepo:       memberRepo,
		subscriptionRepo: subscriptionRepo,
		emailService:     emailService,
	}
}

func (s *service) Create(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	m, err := s.memberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	sub, err := s.subscriptionRepo.GetByID(ctx, req.SubscriptionID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	if sub.MemberID != req.MemberID {
		return nil, ErrSubscriptionMismatch
	}

	paymentDate := dates.Today()
	if req.PaymentDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			return nil, ErrInvalidPaymentDate
		}
		paymentDate = dates.Normalize(parsed)
	}

	method := req.PaymentMethod
	if method == "" {
		method = string(subscription.MethodCash)
	}

	p := &Payment{
		MemberID:       req.MemberID,
		SubscriptionID: req.SubscriptionID,
		Amount:         req.Amount,
		PaymentMethod:  method,
		PaymentDate:    paymentDate,
		Notes:          optionalNotes(req.Notes),
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	logger.Infof("Payment recorded: member=%d subscription=%d amount=%.2f", created.MemberID, created.SubscriptionID, created.Amount)
	metrics.RecordPayment(created.PaymentMethod)

	if s.emailService != nil && m.Email != nil {
		if detail, err := s.repo.GetByID(ctx, created.ID); err == nil {
			s.emailService.SendPaymentReceipt(ctx, *m.Email, m.FirstName, detail.PlanName, created.Amount, created.PaymentDate)
		}
	}

	return created, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*PaymentWithDetails, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]PaymentWithDetails, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	payments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []PaymentWithDetails{}
	}

	return payments, nil
}

func optionalNotes(notes string) *string {
	if notes == "" {
		return nil
	}
	return &notes
}
