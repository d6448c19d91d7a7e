package handler

import (
	"errors"
	"net/http"

	"cafepos/internal/domain/model"
	"cafepos/internal/middleware"
	"cafepos/internal/usecase"
	auth "cafepos/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// SuccessResponse は { message: string } の形。
type SuccessResponse struct {
	Message string `json:"message"`
}

func errorJSON(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message, Fields: he.Fields})
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorJSON("invalid credentials"))
	case errors.Is(err, auth.ErrUserInactive):
		return c.JSON(http.StatusForbidden, errorJSON("user is inactive"))
	case errors.Is(err, auth.ErrUsernameAlreadyExists):
		return c.JSON(http.StatusConflict, errorJSON("username already exists"))
	case errors.Is(err, auth.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, errorJSON("user not found"))
	}

	//500
	return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
}

// AuthJWTが入れた値からActorを作る
func actorFromContext(c echo.Context) (usecase.Actor, bool) {
	userID, _ := c.Get(middleware.CtxUserIDKey).(string)
	role, _ := c.Get(middleware.CtxUserRoleKey).(string)
	sid, _ := c.Get(middleware.CtxSessionIDKey).(string)
	if userID == "" {
		return usecase.Actor{}, false
	}
	return usecase.Actor{UserID: userID, Role: model.Role(role), SessionID: sid}, true
}

func bindError(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
}
