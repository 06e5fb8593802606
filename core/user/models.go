package user

import (
	"time"

	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/openschool/backend/core"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleParent  = "parent"
)

var AllRoles = []string{RoleAdmin, RoleTeacher, RoleStudent, RoleParent}

func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	Role         string    `json:"role"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"active"`
	YearLevel    null.Int  `json:"year_level,omitempty"`
	PasswordHash string    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pwd))
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// DisplayNameOf resolves id to a display name, falling back to the raw id when
// the reference dangles.
func DisplayNameOf(users []User, id string) string {
	for _, u := range users {
		if u.ID == id {
			return u.DisplayName
		}
	}
	return id
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username    string   `json:"username" validate:"required,min=3,alphanum"`
	DisplayName string   `json:"display_name" validate:"required"`
	Role        string   `json:"role" validate:"required,oneof=admin teacher student parent"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Password    string   `json:"password" validate:"required"`
	YearLevel   null.Int `json:"year_level"`
}

func (nu *NewUser) Validate(svc *Service) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.DisplayName = core.CleanString(nu.DisplayName)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Username)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	DisplayName string   `json:"display_name"`
	Email       string   `json:"email" validate:"omitempty,email"`
	IsActive    *bool    `json:"active"`
	YearLevel   null.Int `json:"year_level"`
	Password    string   `json:"password"`
}
