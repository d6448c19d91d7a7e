package handler

import (
	"net/http"

	"cafepos/internal/config"
	"cafepos/internal/middleware"
	"cafepos/internal/repository"
	auth "cafepos/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// /auth/login のリクエストボディ。
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthHandler struct {
	loginUC  *auth.LoginUsecase
	logoutUC *auth.LogoutUsecase
	meUC     *auth.MeUsecase
}

// DIコンストラクタ
func NewAuthHandler(loginUC *auth.LoginUsecase, logoutUC *auth.LogoutUsecase, meUC *auth.MeUsecase) *AuthHandler {
	return &AuthHandler{loginUC: loginUC, logoutUC: logoutUC, meUC: meUC}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.POST("/auth/login", h.login)

	g := e.Group("/auth")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.POST("/logout", h.logout)
	g.GET("/me", h.me)
}

// POST /auth/login
func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /auth/logout
func (h *AuthHandler) logout(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.logoutUC.Execute(c.Request().Context(), actor); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "logged out"})
}

// GET /auth/me
func (h *AuthHandler) me(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	user, err := h.meUC.Execute(c.Request().Context(), actor.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
