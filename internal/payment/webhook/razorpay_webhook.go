package webhook

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"promotube-be/internal/logger"
	"promotube-be/internal/metrics"
	"promotube-be/internal/order"
	"promotube-be/internal/payment"
)

const (
	signatureHeader = "X-Razorpay-Signature"
	eventIDHeader   = "X-Razorpay-Event-Id"

	provider = "RAZORPAY"
)

// Event is the envelope Razorpay posts. Payment entities ride along on
// refund events too, which is how refunds are tied back to an order.
type Event struct {
	Entity  string `json:"entity"`
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity PaymentEntity `json:"entity"`
		} `json:"payment"`
		Refund struct {
			Entity RefundEntity `json:"entity"`
		} `json:"refund"`
	} `json:"payload"`
	CreatedAt int64 `json:"created_at"`
}

type PaymentEntity struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	ErrorCode string `json:"error_code"`
}

type RefundEntity struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

type Handler struct {
	orderSvc order.Service
	gateway  payment.Gateway
	payRepo  payment.Repository
}

func NewWebhookHandler(orderSvc order.Service, gateway payment.Gateway, payRepo payment.Repository) *Handler {
	return &Handler{
		orderSvc: orderSvc,
		gateway:  gateway,
		payRepo:  payRepo,
	}
}

// PaymentWebhookHandler is the route handler for provider callbacks.
// The signature covers the exact raw body, so it is verified before any
// parsing. Every authentic delivery is persisted; redeliveries of an
// event id already processed are acknowledged without reprocessing,
// while redeliveries of one that failed run the transition again.
func (h *Handler) PaymentWebhookHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !h.gateway.VerifyWebhookSignature(body, r.Header.Get(signatureHeader)) {
		metrics.WebhooksInvalid.Inc()
		log.Warn("webhook signature rejected")
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	eventID := r.Header.Get(eventIDHeader)
	if eventID == "" {
		// Older deliveries omit the header; the body hash still dedupes.
		sum := sha256.Sum256(body)
		eventID = hex.EncodeToString(sum[:])
	}

	pay := event.Payload.Payment.Entity
	webhookID, duplicate, err := h.payRepo.SavePaymentWebhook(
		r.Context(), provider, eventID, event.Event, pay.OrderID, body, true)
	if err != nil {
		log.Error("failed to persist webhook", zap.String("event_id", eventID), zap.Error(err))
		http.Error(w, "failed to persist webhook", http.StatusInternalServerError)
		return
	}
	if duplicate {
		metrics.WebhooksDuplicate.Inc()
		log.Info("duplicate webhook acknowledged", zap.String("event_id", eventID))
		w.WriteHeader(http.StatusOK)
		return
	}

	log.Info("webhook received",
		zap.String("event", event.Event),
		zap.String("event_id", eventID),
		zap.String("provider_order_id", pay.OrderID))

	switch event.Event {
	case "payment.captured":
		err = h.orderSvc.MarkAsPaid(r.Context(), pay.OrderID, pay.ID)
		if err == nil {
			metrics.OrdersPaid.Inc()
		}
	case "payment.failed":
		err = h.orderSvc.MarkAsFailed(r.Context(), pay.OrderID, pay.ID)
		if err == nil {
			metrics.OrdersFailed.Inc()
		}
	case "refund.processed":
		err = h.orderSvc.MarkAsRefunded(r.Context(), pay.OrderID, event.Payload.Refund.Entity.ID)
	default:
		// Acknowledge events we do not act on so the provider stops retrying.
		if markErr := h.payRepo.MarkWebhookProcessed(r.Context(), webhookID); markErr != nil {
			log.Error("failed to mark webhook processed", zap.Int64("webhook_id", webhookID), zap.Error(markErr))
		}
		w.WriteHeader(http.StatusOK)
		return
	}

	if err != nil {
		metrics.WebhooksFailed.Inc()
		log.Error("failed to process webhook",
			zap.String("event", event.Event),
			zap.String("event_id", eventID),
			zap.Error(err))
		if markErr := h.payRepo.MarkWebhookFailed(r.Context(), webhookID, err.Error()); markErr != nil {
			log.Error("failed to record webhook failure", zap.Int64("webhook_id", webhookID), zap.Error(markErr))
		}
		http.Error(w, "failed to process webhook", http.StatusBadRequest)
		return
	}

	metrics.WebhooksProcessed.Inc()
	if markErr := h.payRepo.MarkWebhookProcessed(r.Context(), webhookID); markErr != nil {
		log.Error("failed to mark webhook processed", zap.Int64("webhook_id", webhookID), zap.Error(markErr))
	}
	w.WriteHeader(http.StatusOK)
}
