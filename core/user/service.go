package user

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/bgugger/atelier/core"
)

var (
	// errors
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("a user with this email already exists")
)

type (
	Repository interface {
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id int) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	email := core.CleanString(nu.Email, true /* lower */)
	if _, err := svc.repo.GetUserByEmail(ctx, email); err == nil {
		return User{}, core.NewValidationError(
			ErrEmailExists,
			core.FieldError{Field: "email", Error: ErrEmailExists.Error()},
		)
	} else if err != ErrNotFound {
		return User{}, err
	}

	usr := User{
		Name:      core.CleanString(nu.Name),
		Email:     email,
		IsAdmin:   nu.IsAdmin,
		CreatedAt: time.Now().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) GetByID(ctx context.Context, id int) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *Service) SetLastLogin(ctx context.Context, usr User) (User, error) {
	usr.LastLogin = null.TimeFrom(time.Now().UTC())
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) ResetPassword(ctx context.Context, email, pwd string) (User, error) {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if err = usr.SetPassword(pwd); err != nil {
		return User{}, err
	}
	return svc.repo.UpdateUser(ctx, usr)
}
