package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/rabbitmq"
	"storefront/pkg/toss"

	"github.com/google/uuid"
)

// PaymentGateway is the outbound interface to the payment provider's
// synchronous confirm operation.
type PaymentGateway interface {
	Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (*toss.Receipt, error)
}

// EventPublisher publishes a message body to a named queue.
type EventPublisher interface {
	Publish(queue string, body []byte) error
}

// PaymentSettledEvent is published after a confirmed payment commits locally.
type PaymentSettledEvent struct {
	EventID    string    `json:"event_id"`
	OrderID    uint      `json:"order_id"`
	UserID     uint      `json:"user_id"`
	PaymentKey string    `json:"payment_key"`
	Amount     int64     `json:"amount"`
	Method     string    `json:"method"`
	ApprovedAt time.Time `json:"approved_at"`
}

// ReconciliationEvent records a payment the provider confirmed but the local
// store failed to commit. These are settled externally and unrecorded
// locally; someone has to resolve them by hand.
type ReconciliationEvent struct {
	EventID    string    `json:"event_id"`
	OrderID    uint      `json:"order_id"`
	UserID     uint      `json:"user_id"`
	PaymentKey string    `json:"payment_key"`
	Amount     int64     `json:"amount"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PaymentService confirms payments with the provider and commits the
// settlement locally: the payment record, the PENDING -> PAID transition, and
// the cart pruning all land in one transaction or not at all.
type PaymentService struct {
	orderRepo   repositories.OrderRepository
	paymentRepo repositories.PaymentRepository
	txManager   repositories.TransactionManager
	gateway     PaymentGateway
	publisher   EventPublisher // may be nil when no broker is configured
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	orderRepo repositories.OrderRepository,
	paymentRepo repositories.PaymentRepository,
	txManager repositories.TransactionManager,
	gateway PaymentGateway,
	publisher EventPublisher,
) *PaymentService {
	return &PaymentService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		gateway:     gateway,
		publisher:   publisher,
	}
}

// Confirm settles the payment for an order.
//
// Guards run before the provider is contacted: the order must exist, belong
// to the caller, be PENDING, and the amount must equal the order's total.
// The payment key doubles as an idempotency key: if a payment with this key
// is already recorded for this order, the prior acknowledgment is returned
// without touching the provider again. Only a replay under a DIFFERENT key,
// or the same key bound to another order, is a Conflict; an exact replay is
// treated as a retry of an already-settled confirm, not a double payment.
//
// The provider call itself is the one irreversible step. After it succeeds,
// the local commit runs in a single transaction whose PENDING guard is the
// conditional update in MarkPaid, so a concurrent confirm that got there
// first turns this call into a clean Conflict. If the local commit fails,
// the receipt goes to the reconciliation queue and the error is returned;
// nothing is retried or masked.
func (s *PaymentService) Confirm(ctx context.Context, userID uint, req ConfirmPaymentRequest) (*ConfirmAck, error) {
	if existing, err := s.paymentRepo.GetByKey(req.PaymentKey); err == nil {
		if existing.OrderID != req.OrderID {
			return nil, apperrors.NewConflict("payment key already used for another order")
		}
		return &ConfirmAck{Message: "order already completed", OrderID: existing.OrderID}, nil
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NewForbidden("no permission to pay for order %d", req.OrderID)
	}
	if order.TotalPrice != req.Amount {
		return nil, apperrors.NewInvalidInput("payment amount does not match the order total")
	}
	if order.Status != models.StatusPending {
		return nil, apperrors.NewConflict("order %d has already been processed", req.OrderID)
	}

	receipt, err := s.gateway.Confirm(ctx, req.PaymentKey, strconv.FormatUint(uint64(order.ID), 10), req.Amount)
	if err != nil {
		switch gwErr := err.(type) {
		case *toss.RejectedError:
			return nil, apperrors.NewUpstreamRejected("payment confirmation failed: %s", gwErr.Message)
		case *toss.UnavailableError:
			return nil, apperrors.NewGatewayUnavailable("payment confirmation failed", gwErr)
		default:
			return nil, fmt.Errorf("payment confirmation failed: %w", err)
		}
	}

	txErr := s.txManager.WithinTransaction(func(tx *repositories.TxRepositories) error {
		payment := &models.Payment{
			OrderID:    order.ID,
			PaymentKey: receipt.PaymentKey,
			Method:     receipt.Method,
			Amount:     receipt.TotalAmount,
			Status:     "PAID",
			ApprovedAt: receipt.ApprovedAt,
		}
		if err := tx.Payments.Create(payment); err != nil {
			return err
		}

		paid, err := tx.Orders.MarkPaid(order.ID)
		if err != nil {
			return err
		}
		if !paid {
			return apperrors.NewConflict("order %d has already been processed", order.ID)
		}

		// Prune only the purchased products from the cart; anything else
		// the user has queued up stays.
		cart, err := tx.Carts.GetByUser(userID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return nil
			}
			return err
		}
		productIDs := make([]uint, 0, len(order.Items))
		for _, item := range order.Items {
			productIDs = append(productIDs, item.ProductID)
		}
		return tx.Carts.DeleteItemsByProduct(cart.ID, productIDs)
	})
	if txErr != nil {
		// The provider already settled this payment; the local store does
		// not reflect it. Hand the receipt to the reconciliation queue
		// before surfacing the failure.
		s.publishReconciliation(order, receipt, txErr)
		return nil, txErr
	}

	s.publishSettled(order, receipt)

	return &ConfirmAck{Message: "order completed", OrderID: order.ID}, nil
}

func (s *PaymentService) publishSettled(order *models.Order, receipt *toss.Receipt) {
	if s.publisher == nil {
		return
	}
	event := PaymentSettledEvent{
		EventID:    uuid.New().String(),
		OrderID:    order.ID,
		UserID:     order.UserID,
		PaymentKey: receipt.PaymentKey,
		Amount:     receipt.TotalAmount,
		Method:     receipt.Method,
		ApprovedAt: receipt.ApprovedAt,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal settlement event for order %d: %v", order.ID, err)
		return
	}
	if err := s.publisher.Publish(rabbitmq.QueuePaymentEvents, body); err != nil {
		log.Printf("Warning: failed to publish settlement event for order %d: %v", order.ID, err)
	}
}

func (s *PaymentService) publishReconciliation(order *models.Order, receipt *toss.Receipt, cause error) {
	log.Printf("Reconciliation needed: order %d settled externally (payment key %s) but local commit failed: %v",
		order.ID, receipt.PaymentKey, cause)
	if s.publisher == nil {
		return
	}
	event := ReconciliationEvent{
		EventID:    uuid.New().String(),
		OrderID:    order.ID,
		UserID:     order.UserID,
		PaymentKey: receipt.PaymentKey,
		Amount:     receipt.TotalAmount,
		Reason:     cause.Error(),
		OccurredAt: time.Now(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal reconciliation event for order %d: %v", order.ID, err)
		return
	}
	if err := s.publisher.Publish(rabbitmq.QueueReconciliation, body); err != nil {
		log.Printf("Failed to publish reconciliation event for order %d: %v", order.ID, err)
	}
}
