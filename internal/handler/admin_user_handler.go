package handler

import (
	"net/http"

	"cafepos/internal/config"
	"cafepos/internal/domain/model"
	"cafepos/internal/middleware"
	"cafepos/internal/repository"
	auth "cafepos/internal/usecase/auth_usecase"
	"cafepos/internal/validator"

	"github.com/labstack/echo/v4"
)

type registerUserRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

type AdminUserHandler struct {
	registerUC *auth.RegisterUserUsecase
	logoutUC   *auth.LogoutUsecase
}

func NewAdminUserHandler(registerUC *auth.RegisterUserUsecase, logoutUC *auth.LogoutUsecase) *AdminUserHandler {
	return &AdminUserHandler{registerUC: registerUC, logoutUC: logoutUC}
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group(
		"/admin/users",
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(userRepo),
		middleware.RequireCapability(model.CapManageUsers),
	)

	admin.POST("", h.register)
	admin.POST("/:id/force-logout", h.forceLogout)
}

// POST /admin/users
func (h *AdminUserHandler) register(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	out, err := h.registerUC.Execute(c.Request().Context(), actor, auth.RegisterUserInput{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Role:        req.Role,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// POST /admin/users/:id/force-logout
func (h *AdminUserHandler) forceLogout(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	id := c.Param("id")
	if !validator.IsUUID(id) {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid user_id"))
	}

	res, err := h.logoutUC.ForceLogout(c.Request().Context(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
