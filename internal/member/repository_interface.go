package member

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, m *Member) (*Member, error)
	GetByID(ctx context.Context, id int) (*Member, error)
	Update(ctx context.Context, id int, req UpdateFields) (*Member, error)
	List(ctx context.Context, filter ListFilter) ([]Member, int, error)
	ToggleActive(ctx context.Context, id int) (*Member, error)
	Delete(ctx context.Context, id int) error
	EmailExists(ctx context.Context, email string, excludeID int) (bool, error)
}

// UpdateFields carries the normalized partial update applied by the service.
// Nil fields are left untouched.
type UpdateFields struct {
	FirstName        *string
	LastNamePaternal *string
	LastNameMaternal *string
	Email            *string
	Phone            *string
	DateOfBirth      *time.Time
	EmergencyContact *string
	EmergencyPhone   *string
	IsActive         *bool
}
