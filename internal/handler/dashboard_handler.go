package handler

import (
	"net/http"

	"cafepos/internal/config"
	"cafepos/internal/domain/model"
	"cafepos/internal/middleware"
	"cafepos/internal/repository"
	"cafepos/internal/usecase"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	uc *usecase.DashboardUsecase
}

func NewDashboardHandler(uc *usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group(
		"/admin/dashboard",
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(userRepo),
		middleware.RequireCapability(model.CapViewDashboard),
	)

	g.GET("/daily-sales", h.dailySales)
}

// GET /admin/dashboard/daily-sales?date=YYYY-MM-DD（省略で今日）
func (h *DashboardHandler) dailySales(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.DailySales(c.Request().Context(), actor, c.QueryParam("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
