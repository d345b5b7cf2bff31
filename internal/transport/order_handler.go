package transport

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"promotube-be/internal/auth"
	"promotube-be/internal/logger"
	"promotube-be/internal/metrics"
	"promotube-be/internal/order"
	"promotube-be/internal/packages"
	"promotube-be/internal/payment"
)

type OrderHandler struct {
	orders  order.Service
	gateway payment.Gateway
}

func NewOrderHandler(orders order.Service, gateway payment.Gateway) *OrderHandler {
	return &OrderHandler{orders: orders, gateway: gateway}
}

type checkoutRequest struct {
	PackageID uint   `json:"package_id"`
	VideoURL  string `json:"video_url"`
}

type checkoutResponse struct {
	Order *order.Order `json:"order"`
	KeyID string       `json:"key_id"`
}

// Checkout creates an order for the authenticated user and returns the
// provider order plus the public key the frontend needs for checkout.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req checkoutRequest
	if err := decodeBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.orders.Checkout(r.Context(), userID, req.PackageID, req.VideoURL)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidVideoURL),
			errors.Is(err, payment.ErrInvalidAmount):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, packages.ErrPackageNotFound),
			errors.Is(err, packages.ErrPackageInactive):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, payment.ErrNotConfigured):
			WriteJSONError(w, http.StatusServiceUnavailable, err.Error())
		default:
			var provErr *payment.ProviderError
			if errors.As(err, &provErr) {
				WriteJSONError(w, http.StatusBadGateway, provErr.Message)
				return
			}
			logger.FromCtx(r.Context()).Error("checkout failed", zap.Error(err))
			WriteJSONError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	metrics.OrdersCreated.Inc()
	WriteJSON(w, http.StatusCreated, checkoutResponse{Order: o, KeyID: h.gateway.KeyID()})
}

// List returns the authenticated user's orders; admins get everything.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var (
		orders []*order.Order
		err    error
	)
	if auth.GetUserRoleFromContext(r.Context()) == auth.RoleAdmin {
		orders, err = h.orders.ListAll(r.Context())
	} else {
		orders, err = h.orders.ListForUser(r.Context(), userID)
	}
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to list orders", zap.Error(err))
		WriteJSONError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	WriteJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	orderID, err := orderIDFromRequest(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.orders.GetForUser(r.Context(), orderID, userID, auth.GetUserRoleFromContext(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, order.ErrUnauthorized):
			WriteJSONError(w, http.StatusForbidden, err.Error())
		default:
			logger.FromCtx(r.Context()).Error("failed to fetch order", zap.Error(err))
			WriteJSONError(w, http.StatusInternalServerError, "failed to fetch order")
		}
		return
	}
	WriteJSON(w, http.StatusOK, o)
}

func orderIDFromRequest(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
