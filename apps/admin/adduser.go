package main

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/openschool/backend/core"
	"github.com/openschool/backend/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, email, name, role, pwd string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)
	if name == "" {
		name = uname
	}

	usr, err := cli.usrSvc.GetByUsername(ctx, uname)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		_, err = cli.usrSvc.Create(ctx, user.NewUser{
			Username:    uname,
			DisplayName: name,
			Role:        role,
			Email:       email,
			Password:    pwd,
		})
		return err
	}

	active := true
	_, err = cli.usrSvc.Update(ctx, usr.ID, user.UpdateUser{
		DisplayName: name,
		Email:       email,
		IsActive:    &active,
		YearLevel:   null.Int{},
		Password:    pwd,
	})
	return err
}
