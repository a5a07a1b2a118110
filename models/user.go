package models

import "github.com/Christosun/flotech-report-system/nullable"

const (
	RoleAdmin    = "admin"
	RoleEngineer = "engineer"
)

type User struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Role         string        `json:"role"`
	CreatedAt    nullable.Time `json:"created_at"`
}

func (u *User) TargetFields() []any {
	return []any{&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt}
}

func (u *User) GetID() int64 {
	return u.ID
}
