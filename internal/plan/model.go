package plan

import (
	"time"

	"github.com/myos14/gymAdmin/internal/dates"
)

type Plan struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Price        float64   `db:"price" json:"price"`
	DurationDays int       `db:"duration_days" json:"duration_days"`
	Description  *string   `db:"description" json:"description,omitempty"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// IsPermanent reports whether the plan never expires (duration sentinel 0 or
// the legacy >36500 encoding).
func (p *Plan) IsPermanent() bool {
	return dates.IsPermanent(p.DurationDays)
}

type CreatePlanRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=50"`
	Price        float64 `json:"price" binding:"gte=0,lte=100000"`
	DurationDays int     `json:"duration_days" binding:"gte=0"`
	Description  string  `json:"description"`
}

type UpdatePlanRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=1,max=50"`
	Price        *float64 `json:"price" binding:"omitempty,gte=0,lte=100000"`
	DurationDays *int     `json:"duration_days" binding:"omitempty,gte=0"`
	Description  *string  `json:"description"`
	IsActive     *bool    `json:"is_active"`
}
