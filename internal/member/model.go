package member

import "time"

type Member struct {
	ID               int        `db:"id" json:"id"`
	FirstName        string     `db:"first_name" json:"first_name"`
	LastNamePaternal string     `db:"last_name_paternal" json:"last_name_paternal"`
	LastNameMaternal *string    `db:"last_name_maternal" json:"last_name_maternal,omitempty"`
	Email            *string    `db:"email" json:"email,omitempty"`
	Phone            *string    `db:"phone" json:"phone,omitempty"`
	DateOfBirth      *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	EmergencyContact *string    `db:"emergency_contact" json:"emergency_contact,omitempty"`
	EmergencyPhone   *string    `db:"emergency_phone" json:"emergency_phone,omitempty"`
	RegistrationDate time.Time  `db:"registration_date" json:"registration_date"`
	IsActive         bool       `db:"is_active" json:"is_active"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// FullName joins the name fields the way they are shown on attendance and
// dashboard listings.
func (m *Member) FullName() string {
	name := m.FirstName + " " + m.LastNamePaternal
	if m.LastNameMaternal != nil && *m.LastNameMaternal != "" {
		name += " " + *m.LastNameMaternal
	}
	return name
}

type CreateMemberRequest struct {
	FirstName        string  `json:"first_name" binding:"required,max=50"`
	LastNamePaternal string  `json:"last_name_paternal" binding:"required,max=50"`
	LastNameMaternal string  `json:"last_name_maternal" binding:"max=50"`
	Email            string  `json:"email" binding:"omitempty,email"`
	Phone            string  `json:"phone"`
	DateOfBirth      *string `json:"date_of_birth"`
	EmergencyContact string  `json:"emergency_contact"`
	EmergencyPhone   string  `json:"emergency_phone"`
}

type UpdateMemberRequest struct {
	FirstName        *string `json:"first_name" binding:"omitempty,max=50"`
	LastNamePaternal *string `json:"last_name_paternal" binding:"omitempty,max=50"`
	LastNameMaternal *string `json:"last_name_maternal" binding:"omitempty,max=50"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Phone            *string `json:"phone"`
	DateOfBirth      *string `json:"date_of_birth"`
	EmergencyContact *string `json:"emergency_contact"`
	EmergencyPhone   *string `json:"emergency_phone"`
	IsActive         *bool   `json:"is_active"`
}

// ListFilter mirrors the query parameters of GET /members.
type ListFilter struct {
	Search     string
	ActiveOnly *bool
	Skip       int
	Limit      int
}

// ListResponse is the paginated envelope the members page consumes.
type ListResponse struct {
	Members []Member `json:"members"`
	Total   int      `json:"total"`
}
