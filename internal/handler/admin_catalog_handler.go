package handler

import (
	"net/http"
	"strconv"

	"cafepos/internal/config"
	"cafepos/internal/domain/model"
	"cafepos/internal/middleware"
	"cafepos/internal/repository"
	"cafepos/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsActive    *bool  `json:"is_active"`
}

// priceは "25000" や "18500.50" の文字列
type MenuItemRequest struct {
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
	IsAvailable *bool  `json:"is_available"`
}

// /admin/categories と /admin/menu-items と /admin/audit-logs をまとめる
type AdminCatalogHandler struct {
	uc    *usecase.CatalogUsecase
	audit *usecase.AuditUsecase
}

// DI
func NewAdminCatalogHandler(uc *usecase.CatalogUsecase, audit *usecase.AuditUsecase) *AdminCatalogHandler {
	return &AdminCatalogHandler{uc: uc, audit: audit}
}

func (h *AdminCatalogHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group("/admin")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.TokenVersionGuard(userRepo))
	admin.Use(middleware.RequireCapability(model.CapManageCatalog))

	admin.GET("/categories", h.listCategories)
	admin.POST("/categories", h.createCategory)
	admin.PUT("/categories/:id", h.updateCategory)
	admin.DELETE("/categories/:id", h.deleteCategory)

	admin.GET("/menu-items", h.listMenuItems)
	admin.POST("/menu-items", h.createMenuItem)
	admin.PUT("/menu-items/:id", h.updateMenuItem)
	admin.DELETE("/menu-items/:id", h.deleteMenuItem)

	admin.GET("/audit-logs", h.listAuditLogs)
}

func (h *AdminCatalogHandler) listCategories(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.AdminListCategories(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCatalogHandler) createCategory(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	out, err := h.uc.CreateCategory(c.Request().Context(), actor, toCategoryInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminCatalogHandler) updateCategory(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	out, err := h.uc.UpdateCategory(c.Request().Context(), actor, c.Param("id"), toCategoryInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCatalogHandler) deleteCategory(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), actor, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *AdminCatalogHandler) listMenuItems(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.AdminListMenuItems(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCatalogHandler) createMenuItem(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req MenuItemRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	out, err := h.uc.CreateMenuItem(c.Request().Context(), actor, toMenuItemInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminCatalogHandler) updateMenuItem(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req MenuItemRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	out, err := h.uc.UpdateMenuItem(c.Request().Context(), actor, c.Param("id"), toMenuItemInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCatalogHandler) deleteMenuItem(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.uc.DeleteMenuItem(c.Request().Context(), actor, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

// GET /admin/audit-logs?actor_user_id=&action=&resource_type=&resource_id=&from=&to=&limit=&offset=
func (h *AdminCatalogHandler) listAuditLogs(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid limit"))
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid offset"))
	}

	out, err := h.audit.List(c.Request().Context(), actor, usecase.ListAuditLogsInput{
		ActorUserID:  c.QueryParam("actor_user_id"),
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resource_type"),
		ResourceID:   c.QueryParam("resource_id"),
		From:         c.QueryParam("from"),
		To:           c.QueryParam("to"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func toCategoryInput(req CategoryRequest) usecase.CategoryInput {
	return usecase.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    req.IsActive,
	}
}

func toMenuItemInput(req MenuItemRequest) usecase.MenuItemInput {
	return usecase.MenuItemInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsAvailable: req.IsAvailable,
	}
}

// 空なら0
func queryInt(c echo.Context, name string) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
