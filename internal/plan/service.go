package plan

import (
	"context"
	"database/sql"
	"errors"

	"github.com/myos14/gymAdmin/internal/dates"
)

var (
	ErrNameExists      = errors.New("plan name already exists")
	ErrInvalidDuration = errors.New("duration must be 0 (permanent) or between 1 and 3650 days")
)

type Service interface {
	Create(ctx context.Context, req CreatePlanRequest) (*Plan, error)
	GetByID(ctx context.Context, id int) (*Plan, error)
	List(ctx context.Context, activeOnly bool, skip, limit int) ([]Plan, error)
	Update(ctx context.Context, id int, req UpdatePlanRequest) (*Plan, error)
	Deactivate(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// validDuration accepts fixed durations of 1..3650 days plus both permanent
// encodings (0 and the legacy >36500 sentinel).
func validDuration(days int) bool {
	if dates.IsPermanent(days) {
		return true
	}
	return days >= 1 && days <= dates.MaxFixedDurationDays
}

func (s *service) Create(ctx context.Context, req CreatePlanRequest) (*Plan, error) {
	if !validDuration(req.DurationDays) {
		return nil, ErrInvalidDuration
	}

	exists, err := s.repo.NameExists(ctx, req.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrNameExists
	}

	var description *string
	if req.Description != "" {
		description = &req.Description
	}

	return s.repo.Create(ctx, req.Name, req.Price, req.DurationDays, description)
}

func (s *service) GetByID(ctx context.Context, id int) (*Plan, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *service) List(ctx context.Context, activeOnly bool, skip, limit int) ([]Plan, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	plans, err := s.repo.List(ctx, activeOnly, skip, limit)
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []Plan{}
	}
	return plans, nil
}

func (s *service) Update(ctx context.Context, id int, req UpdatePlanRequest) (*Plan, error) {
	if req.DurationDays != nil && !validDuration(*req.DurationDays) {
		return nil, ErrInvalidDuration
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != current.Name {
		exists, err := s.repo.NameExists(ctx, *req.Name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrNameExists
		}
	}

	return s.repo.Update(ctx, id, req)
}

func (s *service) Deactivate(ctx context.Context, id int) error {
	return s.repo.Deactivate(ctx, id)
}
