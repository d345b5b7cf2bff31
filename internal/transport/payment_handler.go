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

type PaymentHandler struct {
	orders  order.Service
	gateway payment.Gateway
}

func NewPaymentHandler(orders order.Service, gateway payment.Gateway) *PaymentHandler {
	return &PaymentHandler{orders: orders, gateway: gateway}
}

// Verify confirms a checkout callback. The three fields are exactly what
// the provider's checkout script hands back to the frontend.
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req payment.VerificationRequest
	if err := decodeBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.orders.ConfirmPayment(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrMissingParameters):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, order.ErrSignatureMismatch):
			metrics.SignaturesInvalid.Inc()
			WriteJSONError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, order.ErrOrderNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, payment.ErrNotConfigured):
			WriteJSONError(w, http.StatusServiceUnavailable, err.Error())
		default:
			logger.FromCtx(r.Context()).Error("payment verification failed", zap.Error(err))
			WriteJSONError(w, http.StatusInternalServerError, "payment verification failed")
		}
		return
	}

	metrics.SignaturesValid.Inc()
	WriteJSON(w, http.StatusOK, o)
}

// Key exposes the public key id the frontend embeds in the checkout widget.
func (h *PaymentHandler) Key(w http.ResponseWriter, r *http.Request) {
	keyID := h.gateway.KeyID()
	if keyID == "" {
		WriteJSONError(w, http.StatusServiceUnavailable, payment.ErrNotConfigured.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"key_id": keyID})
}
