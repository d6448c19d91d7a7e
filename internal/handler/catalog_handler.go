package handler

import (
	"net/http"

	"cafepos/internal/config"
	"cafepos/internal/middleware"
	"cafepos/internal/repository"
	"cafepos/internal/usecase"

	"github.com/labstack/echo/v4"
)

// レジ画面のカテゴリ・メニュー
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	// 空prefixのGroupは全パスにcatch-allが付くのでルートごとに付ける
	mw := []echo.MiddlewareFunc{
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(userRepo),
	}

	e.GET("/categories", h.listCategories, mw...)
	e.GET("/menu-items", h.listMenuItems, mw...)
	e.GET("/menu-items/category/:categoryId", h.listMenuItemsByCategory, mw...)
}

func (h *CatalogHandler) listCategories(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) listMenuItems(c echo.Context) error {
	out, err := h.uc.ListMenuItems(c.Request().Context(), c.QueryParam("category_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) listMenuItemsByCategory(c echo.Context) error {
	out, err := h.uc.ListMenuItems(c.Request().Context(), c.Param("categoryId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
