package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"promotube-be/internal/logger"

	"go.uber.org/zap"
)

const (
	razorpayBaseURL = "https://api.razorpay.com"
	defaultCurrency = "INR"
)

type razorpayGateway struct {
	keyID         string
	keySecret     string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client
}

// ----------------- Constructor -----------------

func NewRazorpayGateway(keyID, keySecret, webhookSecret string) Gateway {
	if keyID == "" || keySecret == "" {
		logger.L().Warn("Razorpay key pair is empty, payment operations will fail fast")
	}
	if webhookSecret == "" {
		logger.L().Warn("Razorpay webhook secret is empty, webhook verification disabled")
	}

	return &razorpayGateway{
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		baseURL:       razorpayBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (g *razorpayGateway) configured() bool {
	return g.keyID != "" && g.keySecret != ""
}

func (g *razorpayGateway) KeyID() string {
	return g.keyID
}

// call performs one authenticated round trip and returns the response body.
// Non-2xx responses become a ProviderError carrying the provider's message.
func (g *razorpayGateway) call(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(g.keyID, g.keySecret)
	if payload != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read razorpay response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &ProviderError{
			Status:  resp.StatusCode,
			Message: providerMessage(bodyBytes),
		}
	}

	return bodyBytes, nil
}

// providerMessage extracts error.description from the provider's error
// envelope, falling back to the raw body.
func providerMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Description string `json:"description"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Description != "" {
		return envelope.Error.Description
	}
	return string(body)
}

// ----------------- CreateOrder -----------------

func (g *razorpayGateway) CreateOrder(
	ctx context.Context,
	amount float64,
	currency string,
	receipt string,
	notes map[string]string,
) (*Order, error) {

	if !g.configured() {
		return nil, ErrNotConfigured
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if currency == "" {
		currency = defaultCurrency
	}

	// Integer minor units avoid floating-point drift in currency math.
	amountMinor := int64(math.Round(amount * 100))

	log := logger.L().With(
		zap.String("receipt", receipt),
		zap.Int64("amount_minor", amountMinor),
		zap.String("currency", currency),
	)

	body := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	if len(notes) > 0 {
		body["notes"] = notes
	}

	log.Info("Creating Razorpay order")

	respBody, err := g.call(ctx, http.MethodPost, "/v1/orders", body)
	if err != nil {
		log.Error("Razorpay order creation failed", zap.Error(err))
		return nil, err
	}

	var order Order
	if err := json.Unmarshal(respBody, &order); err != nil {
		log.Error("Failed decoding Razorpay order", zap.Error(err))
		return nil, err
	}

	log.Info("Razorpay order created",
		zap.String("order_id", order.ID),
		zap.String("status", order.Status),
	)

	return &order, nil
}

// ----------------- FetchOrder -----------------

func (g *razorpayGateway) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	if !g.configured() {
		return nil, ErrNotConfigured
	}
	if orderID == "" {
		return nil, ErrMissingParameters
	}

	respBody, err := g.call(ctx, http.MethodGet, "/v1/orders/"+orderID, nil)
	if err != nil {
		logger.L().Error("Razorpay order fetch failed", zap.String("order_id", orderID), zap.Error(err))
		return nil, err
	}

	var order Order
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ----------------- FetchPayment -----------------

func (g *razorpayGateway) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	if !g.configured() {
		return nil, ErrNotConfigured
	}
	if paymentID == "" {
		return nil, ErrMissingPaymentID
	}

	respBody, err := g.call(ctx, http.MethodGet, "/v1/payments/"+paymentID, nil)
	if err != nil {
		logger.L().Error("Razorpay payment fetch failed", zap.String("payment_id", paymentID), zap.Error(err))
		return nil, err
	}

	var p Payment
	if err := json.Unmarshal(respBody, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ----------------- CreateRefund -----------------

func (g *razorpayGateway) CreateRefund(ctx context.Context, req RefundRequest) (*Refund, error) {
	if !g.configured() {
		return nil, ErrNotConfigured
	}
	if req.PaymentID == "" {
		return nil, ErrMissingPaymentID
	}

	log := logger.L().With(zap.String("payment_id", req.PaymentID))

	body := map[string]interface{}{}
	if req.Amount != nil {
		// Omitting the amount requests a full refund at the provider.
		body["amount"] = int64(math.Round(*req.Amount * 100))
		log = log.With(zap.Int64("amount_minor", body["amount"].(int64)))
	}
	if req.Speed != "" {
		body["speed"] = req.Speed
	}
	if len(req.Notes) > 0 {
		body["notes"] = req.Notes
	}

	log.Info("Creating Razorpay refund")

	respBody, err := g.call(ctx, http.MethodPost, "/v1/payments/"+req.PaymentID+"/refund", body)
	if err != nil {
		log.Error("Razorpay refund failed", zap.Error(err))
		return nil, err
	}

	var refund Refund
	if err := json.Unmarshal(respBody, &refund); err != nil {
		log.Error("Failed decoding Razorpay refund", zap.Error(err))
		return nil, err
	}

	log.Info("Razorpay refund created",
		zap.String("refund_id", refund.ID),
		zap.String("status", refund.Status),
	)

	return &refund, nil
}

// ----------------- FetchRefund -----------------

func (g *razorpayGateway) FetchRefund(ctx context.Context, paymentID, refundID string) (*Refund, error) {
	if !g.configured() {
		return nil, ErrNotConfigured
	}
	if paymentID == "" {
		return nil, ErrMissingPaymentID
	}
	if refundID == "" {
		return nil, ErrMissingParameters
	}

	path := fmt.Sprintf("/v1/payments/%s/refunds/%s", paymentID, refundID)
	respBody, err := g.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		logger.L().Error("Razorpay refund fetch failed",
			zap.String("payment_id", paymentID),
			zap.String("refund_id", refundID),
			zap.Error(err),
		)
		return nil, err
	}

	var refund Refund
	if err := json.Unmarshal(respBody, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}
