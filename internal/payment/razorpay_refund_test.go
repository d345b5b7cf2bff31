package payment

import (
	"context"
	"testing"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRazorpayGateway_CreateRefund(t *testing.T) {
	t.Run("FullRefund_OmitsAmount", func(t *testing.T) {
		defer gock.Off()

		gw := newTestGateway()
		gock.InterceptClient(gw.httpClient)
		defer gock.RestoreClient(gw.httpClient)

		gock.New("https://api.razorpay.com").
			Post("/v1/payments/pay_FgR9UMzgmKDJRi/refund").
			JSON(map[string]interface{}{}). // full refund sends no amount field

			Reply(200).
			JSON(map[string]interface{}{
				"id":         "rfnd_FgRAHdNOM4ZVbO",
				"entity":     "refund",
				"amount":     100000,
				"currency":   "INR",
				"payment_id": "pay_FgR9UMzgmKDJRi",
				"status":     "processed",
			})

		refund, err := gw.CreateRefund(context.Background(), RefundRequest{
			PaymentID: "pay_FgR9UMzgmKDJRi",
		})
		require.NoError(t, err)
		assert.Equal(t, "rfnd_FgRAHdNOM4ZVbO", refund.ID)
		assert.Equal(t, int64(100000), refund.Amount)
		assert.Equal(t, "processed", refund.Status)
	})

	t.Run("PartialRefund_MinorUnits", func(t *testing.T) {
		defer gock.Off()

		gw := newTestGateway()
		gock.InterceptClient(gw.httpClient)
		defer gock.RestoreClient(gw.httpClient)

		gock.New("https://api.razorpay.com").
			Post("/v1/payments/pay_FgR9UMzgmKDJRi/refund").
			JSON(map[string]interface{}{"amount": 30000, "speed": "normal"}).
			Reply(200).
			JSON(map[string]interface{}{
				"id":         "rfnd_partial",
				"amount":     30000,
				"payment_id": "pay_FgR9UMzgmKDJRi",
				"status":     "processed",
			})

		amount := 300.0
		refund, err := gw.CreateRefund(context.Background(), RefundRequest{
			PaymentID: "pay_FgR9UMzgmKDJRi",
			Amount:    &amount,
			Speed:     RefundSpeedNormal,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(30000), refund.Amount)
	})

	t.Run("AlreadyRefunded_SurfacesProviderError", func(t *testing.T) {
		defer gock.Off()

		gw := newTestGateway()
		gock.InterceptClient(gw.httpClient)
		defer gock.RestoreClient(gw.httpClient)

		gock.New("https://api.razorpay.com").
			Post("/v1/payments/pay_FgR9UMzgmKDJRi/refund").
			Reply(400).
			JSON(map[string]interface{}{
				"error": map[string]interface{}{
					"code":        "BAD_REQUEST_ERROR",
					"description": "The payment has been fully refunded already",
				},
			})

		_, err := gw.CreateRefund(context.Background(), RefundRequest{
			PaymentID: "pay_FgR9UMzgmKDJRi",
		})
		assert.Error(t, err)

		var provErr *ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Contains(t, provErr.Message, "fully refunded already")
	})

	t.Run("MissingPaymentID", func(t *testing.T) {
		gw := newTestGateway()
		_, err := gw.CreateRefund(context.Background(), RefundRequest{})
		assert.ErrorIs(t, err, ErrMissingPaymentID)
	})

	t.Run("NotConfigured", func(t *testing.T) {
		bare := NewRazorpayGateway("", "", "").(*razorpayGateway)
		_, err := bare.CreateRefund(context.Background(), RefundRequest{PaymentID: "pay_x"})
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestRazorpayGateway_FetchRefund(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		defer gock.Off()

		gw := newTestGateway()
		gock.InterceptClient(gw.httpClient)
		defer gock.RestoreClient(gw.httpClient)

		gock.New("https://api.razorpay.com").
			Get("/v1/payments/pay_FgR9UMzgmKDJRi/refunds/rfnd_FgRAHdNOM4ZVbO").
			Reply(200).
			JSON(map[string]interface{}{
				"id":         "rfnd_FgRAHdNOM4ZVbO",
				"amount":     30000,
				"payment_id": "pay_FgR9UMzgmKDJRi",
				"status":     "processed",
			})

		refund, err := gw.FetchRefund(context.Background(), "pay_FgR9UMzgmKDJRi", "rfnd_FgRAHdNOM4ZVbO")
		require.NoError(t, err)
		assert.Equal(t, "processed", refund.Status)
	})

	t.Run("MissingIDs", func(t *testing.T) {
		gw := newTestGateway()

		_, err := gw.FetchRefund(context.Background(), "", "rfnd_x")
		assert.ErrorIs(t, err, ErrMissingPaymentID)

		_, err = gw.FetchRefund(context.Background(), "pay_x", "")
		assert.ErrorIs(t, err, ErrMissingParameters)
	})
}
