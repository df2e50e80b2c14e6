package main

import (
	"context"
	"time"

	"github.com/bgugger/atelier/core"
	"github.com/bgugger/atelier/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(name, email, pwd string, isAdmin bool) error {
	ctx := context.Background()
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Email:     email,
			CreatedAt: time.Now().UTC(),
		}
	}
	usr.Name = name
	usr.IsAdmin = isAdmin
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if usr.ID == 0 {
		_, err = cli.usrRepo.CreateUser(ctx, usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(ctx, usr)
	}
	return err
}
