package plan

import "context"

type Repository interface {
	Create(ctx context.Context, name string, price float64, durationDays int, description *string) (*Plan, error)
	GetByID(ctx context.Context, id int) (*Plan, error)
	List(ctx context.Context, activeOnly bool, skip, limit int) ([]Plan, error)
	Update(ctx context.Context, id int, req UpdatePlanRequest) (*Plan, error)
	Deactivate(ctx context.Context, id int) error
	NameExists(ctx context.Context, name string, excludeID int) (bool, error)
}
