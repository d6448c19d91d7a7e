package server

import (
	"net/http"

	"cafepos/internal/config"
	"cafepos/internal/handler"
	"cafepos/internal/repository"

	"github.com/labstack/echo/v4"
)

// Handlers はmainで組み立てたハンドラ一式
type Handlers struct {
	Auth         *handler.AuthHandler
	AdminUser    *handler.AdminUserHandler
	Catalog      *handler.CatalogHandler
	AdminCatalog *handler.AdminCatalogHandler
	Order        *handler.OrderHandler
	Transaction  *handler.TransactionHandler
	Dashboard    *handler.DashboardHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.SuccessResponse{Message: "ok"})
	})

	h.Auth.RegisterRoutes(e, cfg, userRepo)
	h.AdminUser.RegisterRoutes(e, cfg, userRepo)
	h.Catalog.RegisterRoutes(e, cfg, userRepo)
	h.AdminCatalog.RegisterRoutes(e, cfg, userRepo)
	h.Order.RegisterRoutes(e, cfg, userRepo)
	h.Transaction.RegisterRoutes(e, cfg, userRepo)
	h.Dashboard.RegisterRoutes(e, cfg, userRepo)
}
