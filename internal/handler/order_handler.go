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

type addItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
}

// deltaは +1 / -1 など
type updateQuantityRequest struct {
	Delta int64 `json:"delta"`
}

type orderTypeRequest struct {
	OrderType string `json:"order_type"`
}

type tableNumberRequest struct {
	TableNumber int `json:"table_number"`
}

// paid_amountは10進文字列
type checkoutRequest struct {
	PaidAmount string `json:"paid_amount"`
}

// レジ端末のカートと会計
type OrderHandler struct {
	orders   *usecase.OrderUsecase
	checkout *usecase.CheckoutUsecase
}

func NewOrderHandler(orders *usecase.OrderUsecase, checkout *usecase.CheckoutUsecase) *OrderHandler {
	return &OrderHandler{orders: orders, checkout: checkout}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/order")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.RequireCapability(model.CapCheckout))

	g.GET("", h.get)
	g.DELETE("", h.clear)
	g.POST("/items", h.addItem)
	g.PATCH("/items/:lineId", h.updateQuantity)
	g.DELETE("/items/:lineId", h.removeItem)
	g.PUT("/type", h.setOrderType)
	g.PUT("/table", h.setTableNumber)
	g.GET("/payment-presets", h.paymentPresets)

	e.POST("/checkout", h.doCheckout,
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(userRepo),
		middleware.RequireCapability(model.CapCheckout),
	)
}

func (h *OrderHandler) get(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.orders.GetOrder(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) clear(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.orders.Clear(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) addItem(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	out, err := h.orders.AddItem(c.Request().Context(), actor, req.MenuItemID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) updateQuantity(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	out, err := h.orders.UpdateQuantity(c.Request().Context(), actor, c.Param("lineId"), req.Delta)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) removeItem(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.orders.RemoveItem(c.Request().Context(), actor, c.Param("lineId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) setOrderType(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req orderTypeRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	out, err := h.orders.SetOrderType(c.Request().Context(), actor, req.OrderType)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) setTableNumber(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req tableNumberRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	out, err := h.orders.SetTableNumber(c.Request().Context(), actor, req.TableNumber)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) paymentPresets(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.orders.PaymentPresets(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /checkout
func (h *OrderHandler) doCheckout(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	out, err := h.checkout.Checkout(c.Request().Context(), actor, usecase.CheckoutInput{PaidAmount: req.PaidAmount})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
