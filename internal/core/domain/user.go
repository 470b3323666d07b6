package domain

import (
	"time"

	"github.com/google/uuid"
)

// swagger:model domain.User
type User struct {
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name" validate:"required,max=100"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role" validate:"required,oneof=user admin"`
	Age          int       `json:"age" validate:"required,min=1,max=150"`
	Gender       string    `json:"gender" validate:"required,max=20"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == Admin
}

// UserPatch carries the fields an admin edit may change.
type UserPatch struct {
	Name   *string
	Age    *int
	Gender *string
	Role   *UserRole
}

func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
}

// DashboardStats backs the admin overview.
type DashboardStats struct {
	TotalUsers     int `json:"total_users"`
	TotalBikes     int `json:"total_bikes"`
	TotalBookings  int `json:"total_bookings"`
	ActiveBookings int `json:"active_bookings"`
}
