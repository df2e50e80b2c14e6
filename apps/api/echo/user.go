package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func (s *server) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(s.deps.Validate); err != nil {
		return err
	}

	claims, err := s.authenticate(ctx, data.Email, data.Password)
	if err != nil {
		return err
	}
	token, err := GenerateToken(s.deps.Conf, claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (s *server) tokenRefresh(ctx echo.Context) error {
	token, err := s.refreshToken(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}
