package user

import (
	"context"

	"github.com/openschool/backend/core"
)

type (
	Repository interface {
		All(ctx context.Context) ([]User, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByUsername(ctx context.Context, username string) (User, error)
		Create(ctx context.Context, usr User) (User, error)
		Update(ctx context.Context, usr User) (User, error)
	}

	// storeRepository reads the full users array from the record store on every
	// call and writes the full replacement set back on mutation. No cached copy
	// survives between calls.
	storeRepository struct {
		store core.Store
	}
)

func NewRepository(store core.Store) Repository {
	return &storeRepository{store: store}
}

func (repo *storeRepository) All(ctx context.Context) ([]User, error) {
	var users []User
	if err := repo.store.Load(ctx, core.EntityUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *storeRepository) GetByID(ctx context.Context, id string) (User, error) {
	users, err := repo.All(ctx)
	if err != nil {
		return User{}, err
	}
	for _, usr := range users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return User{}, ErrNotFound
}

func (repo *storeRepository) GetByUsername(ctx context.Context, username string) (User, error) {
	users, err := repo.All(ctx)
	if err != nil {
		return User{}, err
	}
	for _, usr := range users {
		if usr.Username == username {
			return usr, nil
		}
	}
	return User{}, ErrNotFound
}

func (repo *storeRepository) Create(ctx context.Context, usr User) (User, error) {
	users, err := repo.All(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.Username == usr.Username {
			return User{}, ErrUsernameExists
		}
	}
	users = append(users, usr)
	if err := repo.store.Save(ctx, core.EntityUsers, users); err != nil {
		return User{}, err
	}
	return usr, nil
}

func (repo *storeRepository) Update(ctx context.Context, usr User) (User, error) {
	users, err := repo.All(ctx)
	if err != nil {
		return User{}, err
	}
	for i, u := range users {
		if u.ID == usr.ID {
			users[i] = usr
			if err := repo.store.Save(ctx, core.EntityUsers, users); err != nil {
				return User{}, err
			}
			return usr, nil
		}
	}
	return User{}, ErrNotFound
}
