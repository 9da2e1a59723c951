package entities

import "gearguard/pkg/types"

type User struct {
	ID          uint64 `json:"id" db:"id"`
	FullName    string `json:"full_name" db:"full_name"`
	Email       string `json:"email" db:"email"`
	PhoneNumber string `json:"phone_number" db:"phone_number"`

	Password string `json:"-" db:"password"`

	Role       string `json:"role" db:"role"`
	Department string `json:"department" db:"department"`
	IsActive   bool   `json:"is_active" db:"is_active"`

	types.BaseEntity
}
