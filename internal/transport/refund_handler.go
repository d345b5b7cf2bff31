package transport

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"promotube-be/internal/logger"
	"promotube-be/internal/metrics"
	"promotube-be/internal/order"
	"promotube-be/internal/payment"
)

// RefundHandler serves the admin refund endpoints. Route protection is
// middleware's job; the handlers assume an admin context.
type RefundHandler struct {
	orders order.Service
}

func NewRefundHandler(orders order.Service) *RefundHandler {
	return &RefundHandler{orders: orders}
}

type refundRequest struct {
	OrderID uint              `json:"order_id"`
	Amount  *float64          `json:"amount,omitempty"`
	Notes   map[string]string `json:"notes,omitempty"`
}

// Create issues a refund. A missing amount refunds the full capture.
func (h *RefundHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
	if err := decodeBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount != nil && *req.Amount <= 0 {
		WriteJSONError(w, http.StatusBadRequest, payment.ErrInvalidAmount.Error())
		return
	}

	refund, err := h.orders.Refund(r.Context(), req.OrderID, req.Amount, req.Notes)
	if err != nil {
		metrics.RefundsFailed.Inc()
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, order.ErrOrderNotPaid),
			errors.Is(err, payment.ErrMissingPaymentID):
			WriteJSONError(w, http.StatusConflict, err.Error())
		case errors.Is(err, payment.ErrNotConfigured):
			WriteJSONError(w, http.StatusServiceUnavailable, err.Error())
		default:
			var provErr *payment.ProviderError
			if errors.As(err, &provErr) {
				WriteJSONError(w, http.StatusBadGateway, provErr.Message)
				return
			}
			logger.FromCtx(r.Context()).Error("refund failed", zap.Error(err))
			WriteJSONError(w, http.StatusInternalServerError, "refund failed")
		}
		return
	}

	metrics.RefundsCreated.Inc()
	WriteJSON(w, http.StatusCreated, refund)
}

// Status reports the provider-side state of an order's refund.
func (h *RefundHandler) Status(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFromRequest(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	refund, err := h.orders.RefundStatus(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound), errors.Is(err, order.ErrNoRefund):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		default:
			var provErr *payment.ProviderError
			if errors.As(err, &provErr) {
				WriteJSONError(w, http.StatusBadGateway, provErr.Message)
				return
			}
			logger.FromCtx(r.Context()).Error("refund lookup failed", zap.Error(err))
			WriteJSONError(w, http.StatusInternalServerError, "refund lookup failed")
		}
		return
	}
	WriteJSON(w, http.StatusOK, refund)
}
