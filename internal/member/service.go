package member

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/myos14/gymAdmin/internal/dates"
	"github.com/myos14/gymAdmin/internal/email"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidDateOfBirth = errors.New("invalid date of birth")
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

type Service interface {
	Create(ctx context.Context, req CreateMemberRequest) (*Member, error)
	GetByID(ctx context.Context, id int) (*Member, error)
	Update(ctx context.Context, id int, req UpdateMemberRequest) (*Member, error)
	List(ctx context.Context, filter ListFilter) (*ListResponse, error)
	ToggleActive(ctx context.Context, id int) (*Member, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo         Repository
	emailService *email.Service
}

func NewService(repo Repository, emailService *email.Service) Service {
	return &service{repo: repo, emailService: emailService}
}

func (s *service) Create(ctx context.Context, req CreateMemberRequest) (*Member, error) {
	phone, err := NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}

	emergencyPhone, err := NormalizePhone(req.EmergencyPhone)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		exists, err := s.repo.EmailExists(ctx, req.Email, 0)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailExists
		}
	}

	var dob *time.Time
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateOfBirth
		}
		parsed = dates.Normalize(parsed)
		dob = &parsed
	}

	m := &Member{
		FirstName:        TitleCase(req.FirstName),
		LastNamePaternal: TitleCase(req.LastNamePaternal),
		LastNameMaternal: optional(TitleCase(req.LastNameMaternal)),
		Email:            optional(req.Email),
		Phone:            optional(phone),
		DateOfBirth:      dob,
		EmergencyContact: optional(TitleCase(req.EmergencyContact)),
		EmergencyPhone:   optional(emergencyPhone),
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, err
	}

	if s.emailService != nil && created.Email != nil {
		s.emailService.SendWelcome(ctx, *created.Email, created.FirstName)
	}

	return created, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *service) Update(ctx context.Context, id int, req UpdateMemberRequest) (*Member, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	fields := UpdateFields{
		LastNameMaternal: req.LastNameMaternal,
		EmergencyContact: req.EmergencyContact,
		IsActive:         req.IsActive,
	}

	if req.FirstName != nil {
		fields.FirstName = optional(TitleCase(*req.FirstName))
	}
	if req.LastNamePaternal != nil {
		fields.LastNamePaternal = optional(TitleCase(*req.LastNamePaternal))
	}
	if req.LastNameMaternal != nil {
		fields.LastNameMaternal = optional(TitleCase(*req.LastNameMaternal))
	}
	if req.EmergencyContact != nil {
		fields.EmergencyContact = optional(TitleCase(*req.EmergencyContact))
	}

	if req.Email != nil && *req.Email != "" {
		exists, err := s.repo.EmailExists(ctx, *req.Email, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailExists
		}
		fields.Email = req.Email
	}

	if req.Phone != nil {
		phone, err := NormalizePhone(*req.Phone)
		if err != nil {
			return nil, err
		}
		fields.Phone = &phone
	}
	if req.EmergencyPhone != nil {
		phone, err := NormalizePhone(*req.EmergencyPhone)
		if err != nil {
			return nil, err
		}
		fields.EmergencyPhone = &phone
	}

	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateOfBirth
		}
		parsed = dates.Normalize(parsed)
		fields.DateOfBirth = &parsed
	}

	return s.repo.Update(ctx, id, fields)
}

func (s *service) List(ctx context.Context, filter ListFilter) (*ListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	members, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []Member{}
	}

	return &ListResponse{Members: members, Total: total}, nil
}

func (s *service) ToggleActive(ctx context.Context, id int) (*Member, error) {
	m, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
