package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/openschool/backend/core"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrUsernameExists = errors.New("a user with this username already exists")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CheckUniqueness(username string) error {
	if _, err := svc.repo.GetByUsername(context.Background(), username); err == nil {
		return core.NewValidationError(ErrUsernameExists, core.FieldError{Field: "username", Error: ErrUsernameExists.Error()})
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	usr := User{
		ID:          "u-" + uuid.New().String(),
		Username:    nu.Username,
		DisplayName: nu.DisplayName,
		Role:        nu.Role,
		Email:       nu.Email,
		IsActive:    true,
		YearLevel:   nu.YearLevel,
		CreatedAt:   time.Now().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.Create(ctx, usr)
}

func (svc *Service) All(ctx context.Context) ([]User, error) {
	return svc.repo.All(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetByID(ctx, id)
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (User, error) {
	return svc.repo.GetByUsername(ctx, core.CleanString(uname, true /* lower */))
}

func (svc *Service) Update(ctx context.Context, id string, uu UpdateUser) (User, error) {
	usr, err := svc.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if name := core.CleanString(uu.DisplayName); name != "" {
		usr.DisplayName = name
	}
	if email := core.CleanString(uu.Email, true /* lower */); email != "" {
		usr.Email = email
	}
	if uu.IsActive != nil {
		usr.IsActive = *uu.IsActive
	}
	if uu.YearLevel.Valid {
		usr.YearLevel = uu.YearLevel
	}
	if uu.Password != "" {
		if err := usr.SetPassword(uu.Password); err != nil {
			return User{}, err
		}
	}
	return svc.repo.Update(ctx, usr)
}
