package domain

import "time"

type UserRole string

const (
	RoleMember UserRole = "member"
	RoleAdmin  UserRole = "admin"
)

// User exists only so the caller layer can authenticate and supply a
// requester id; the reservation engine itself never reads session state.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role" gorm:"type:varchar(16)"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }
