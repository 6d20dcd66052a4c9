package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"bookstore/internal/events"
	"bookstore/internal/logging"
	"bookstore/internal/metrics"
	"bookstore/internal/middleware"
	"bookstore/internal/service/checkout"
)

type OrderHTTP struct {
	Svc      *checkout.Service
	Producer *events.Producer
	Metrics  *metrics.Metrics
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place_order")

	userID, err := middleware.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	isbns := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		isbns = append(isbns, item.ISBN)
	}

	conf, err := h.Svc.PlaceOrder(ctx, userID, req.Address, isbns)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrValidation):
			h.observe("rejected")
			return echo.NewHTTPError(http.StatusBadRequest, "address and items required")
		case errors.Is(err, checkout.ErrItemUnavailable), errors.Is(err, checkout.ErrInsufficientStock):
			h.observe("rejected")
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			h.observe("failed")
			l.Error("place_order_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}
	h.observe("placed")

	h.publish(c, map[string]any{
		"type":     "order_placed",
		"user_id":  userID,
		"order_id": conf.OrderID,
		"items":    len(conf.Items),
	}, userID)

	return c.JSON(http.StatusOK, PlaceOrderResponse{
		Message: "order placed successfully",
		OrderID: conf.OrderID,
		Items:   len(conf.Items),
	})
}

func (h *OrderHTTP) observe(outcome string) {
	if h.Metrics != nil {
		h.Metrics.Checkouts.WithLabelValues(outcome).Inc()
	}
}

func (h *OrderHTTP) publish(c echo.Context, event map[string]any, userID uint) {
	if !h.Producer.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicOrderEvents, itoa(userID), event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event publish failed", "error", err)
	}
}
