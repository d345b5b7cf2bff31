package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"promotube-be/internal/auth"
	"promotube-be/internal/billing"
	"promotube-be/internal/logger"
	"promotube-be/internal/packages"
	"promotube-be/internal/payment"
	"promotube-be/internal/youtube"
)

type Service interface {
	Checkout(ctx context.Context, userID, packageID uint, videoURL string) (*Order, error)
	ConfirmPayment(ctx context.Context, req payment.VerificationRequest) (*Order, error)
	MarkAsPaid(ctx context.Context, providerOrderID, providerPaymentID string) error
	MarkAsFailed(ctx context.Context, providerOrderID, providerPaymentID string) error
	MarkAsRefunded(ctx context.Context, providerOrderID, refundID string) error
	Refund(ctx context.Context, orderID uint, amount *float64, notes map[string]string) (*payment.Refund, error)
	RefundStatus(ctx context.Context, orderID uint) (*payment.Refund, error)
	GetForUser(ctx context.Context, orderID, userID uint, role string) (*Order, error)
	ListForUser(ctx context.Context, userID uint) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
}

type service struct {
	repo     Repository
	payRepo  payment.Repository
	gateway  payment.Gateway
	packages packages.Service
}

func NewService(repo Repository, payRepo payment.Repository, gateway payment.Gateway, pkgs packages.Service) Service {
	return &service{repo: repo, payRepo: payRepo, gateway: gateway, packages: pkgs}
}

// Checkout prices the package with GST, creates the provider order and
// persists the local order in PENDING state.
func (s *service) Checkout(ctx context.Context, userID, packageID uint, videoURL string) (*Order, error) {
	log := logger.FromCtx(ctx)

	if !youtube.ValidateURL(videoURL) {
		return nil, ErrInvalidVideoURL
	}

	pkg, err := s.packages.Get(ctx, packageID)
	if err != nil {
		return nil, err
	}

	gst := billing.CalculateGST(pkg.Price, billing.DefaultGSTRate)
	receiptID := uuid.NewString()
	invoiceNo := billing.GenerateInvoiceNumber()

	providerOrder, err := s.gateway.CreateOrder(ctx, gst.TotalAmount, pkg.Currency, receiptID, map[string]string{
		"package":  pkg.Name,
		"video_id": youtube.ExtractVideoID(videoURL),
		"invoice":  invoiceNo,
	})
	if err != nil {
		log.Error("provider order creation failed", zap.Uint("package_id", packageID), zap.Error(err))
		return nil, err
	}

	o := &Order{
		UserID:          userID,
		PackageID:       packageID,
		VideoURL:        videoURL,
		VideoID:         youtube.ExtractVideoID(videoURL),
		BaseAmount:      gst.BaseAmount,
		GSTAmount:       gst.GSTAmount,
		TotalAmount:     gst.TotalAmount,
		Currency:        providerOrder.Currency,
		ReceiptID:       receiptID,
		InvoiceNo:       invoiceNo,
		ProviderOrderID: providerOrder.ID,
		Status:          StatusPending,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	if err := s.payRepo.SavePayment(ctx, &payment.Record{
		OrderID:         o.ID,
		ProviderOrderID: providerOrder.ID,
		AmountMinor:     providerOrder.Amount,
		Currency:        providerOrder.Currency,
		Status:          providerOrder.Status,
		InvoiceNo:       invoiceNo,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist payment record: %w", err)
	}

	log.Info("order created",
		zap.Uint("order_id", o.ID),
		zap.String("provider_order_id", providerOrder.ID),
		zap.Float64("total_amount", gst.TotalAmount))
	return o, nil
}

// ConfirmPayment verifies the checkout callback signature and marks the
// order paid. A mismatching signature is rejected without marking anything.
func (s *service) ConfirmPayment(ctx context.Context, req payment.VerificationRequest) (*Order, error) {
	ok, err := s.gateway.VerifyPaymentSignature(req)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.FromCtx(ctx).Warn("payment signature mismatch",
			zap.String("provider_order_id", req.OrderID))
		return nil, ErrSignatureMismatch
	}

	if err := s.MarkAsPaid(ctx, req.OrderID, req.PaymentID); err != nil {
		return nil, err
	}
	return s.repo.GetByProviderOrderID(ctx, req.OrderID)
}

func (s *service) MarkAsPaid(ctx context.Context, providerOrderID, providerPaymentID string) error {
	o, err := s.repo.GetByProviderOrderID(ctx, providerOrderID)
	if err != nil {
		return err
	}
	if o.Status == StatusPaid {
		return nil
	}

	if err := s.repo.UpdateStatusByProviderOrderID(ctx, providerOrderID, StatusPaid, providerPaymentID); err != nil {
		return err
	}
	if err := s.payRepo.UpdateStatusByProviderOrderID(ctx, providerOrderID, "captured", providerPaymentID); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("order paid",
		zap.Uint("order_id", o.ID),
		zap.String("provider_order_id", providerOrderID))
	return nil
}

func (s *service) MarkAsFailed(ctx context.Context, providerOrderID, providerPaymentID string) error {
	o, err := s.repo.GetByProviderOrderID(ctx, providerOrderID)
	if err != nil {
		return err
	}
	// A failed attempt after a successful capture must not undo the capture.
	if o.Status == StatusPaid || o.Status == StatusRefunded {
		return nil
	}

	if err := s.repo.UpdateStatusByProviderOrderID(ctx, providerOrderID, StatusFailed, providerPaymentID); err != nil {
		return err
	}
	if err := s.payRepo.UpdateStatusByProviderOrderID(ctx, providerOrderID, "failed", providerPaymentID); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("order payment failed",
		zap.Uint("order_id", o.ID),
		zap.String("provider_order_id", providerOrderID))
	return nil
}

func (s *service) MarkAsRefunded(ctx context.Context, providerOrderID, refundID string) error {
	o, err := s.repo.GetByProviderOrderID(ctx, providerOrderID)
	if err != nil {
		return err
	}
	if o.Status == StatusRefunded {
		return nil
	}

	if err := s.repo.MarkRefunded(ctx, o.ID, refundID); err != nil {
		return err
	}
	if err := s.payRepo.UpdateStatusByProviderOrderID(ctx, providerOrderID, "refunded", o.ProviderPaymentID); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("order refunded",
		zap.Uint("order_id", o.ID),
		zap.String("refund_id", refundID))
	return nil
}

// Refund issues a provider refund for a captured payment. A nil amount
// refunds the full captured amount and flips the order to REFUNDED;
// a partial amount leaves the order PAID.
func (s *service) Refund(ctx context.Context, orderID uint, amount *float64, notes map[string]string) (*payment.Refund, error) {
	log := logger.FromCtx(ctx)

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusPaid || o.ProviderPaymentID == "" {
		return nil, ErrOrderNotPaid
	}

	refund, err := s.gateway.CreateRefund(ctx, payment.RefundRequest{
		PaymentID: o.ProviderPaymentID,
		Amount:    amount,
		Speed:     payment.RefundSpeedNormal,
		Notes:     notes,
	})
	if err != nil {
		var provErr *payment.ProviderError
		if errors.As(err, &provErr) {
			log.Warn("provider rejected refund",
				zap.Uint("order_id", orderID),
				zap.Int("status", provErr.Status),
				zap.String("message", provErr.Message))
		}
		return nil, err
	}

	if amount == nil {
		if err := s.repo.MarkRefunded(ctx, o.ID, refund.ID); err != nil {
			return nil, err
		}
		if err := s.payRepo.UpdateStatusByProviderOrderID(ctx, o.ProviderOrderID, "refunded", o.ProviderPaymentID); err != nil {
			return nil, err
		}
	}

	log.Info("refund created",
		zap.Uint("order_id", orderID),
		zap.String("refund_id", refund.ID),
		zap.Bool("full", amount == nil))
	return refund, nil
}

func (s *service) RefundStatus(ctx context.Context, orderID uint) (*payment.Refund, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.ProviderPaymentID == "" || o.RefundID == "" {
		return nil, ErrNoRefund
	}
	return s.gateway.FetchRefund(ctx, o.ProviderPaymentID, o.RefundID)
}

func (s *service) GetForUser(ctx context.Context, orderID, userID uint, role string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID && role != auth.RoleAdmin {
		return nil, ErrUnauthorized
	}
	return o, nil
}

func (s *service) ListForUser(ctx context.Context, userID uint) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context) ([]*Order, error) {
	return s.repo.ListAll(ctx)
}
