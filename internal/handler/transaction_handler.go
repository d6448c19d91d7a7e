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

// 保存済み取引の参照
type TransactionHandler struct {
	uc *usecase.TransactionUsecase
}

func NewTransactionHandler(uc *usecase.TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

func (h *TransactionHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/transactions")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.RequireCapability(model.CapCheckout))

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.GET("/:id/receipt", h.receipt)
}

// GET /transactions?limit=&from=&to=
func (h *TransactionHandler) list(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorJSON("invalid limit"))
		}
		limit = n
	}

	out, err := h.uc.List(c.Request().Context(), actor, usecase.ListTransactionsInput{
		Limit: limit,
		From:  c.QueryParam("from"),
		To:    c.QueryParam("to"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TransactionHandler) detail(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// レシートはtext/plain
func (h *TransactionHandler) receipt(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Receipt(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.String(http.StatusOK, out)
}
