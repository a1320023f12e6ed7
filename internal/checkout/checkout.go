// Package checkout orchestrates order placement: form validation, payment
// eligibility, order construction and submission to the backend.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dnminh/vshop/internal/app/model"
	"github.com/dnminh/vshop/internal/session"
	"github.com/dnminh/vshop/pkg/logger"
)

var (
	// ErrCODIneligible rejects cash on delivery outside the covered cities
	ErrCODIneligible = errors.New("cash on delivery is not available in this city")

	// ErrEmptyCart rejects checkout with nothing to purchase
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNotLoggedIn rejects checkout without an authenticated session
	ErrNotLoggedIn = errors.New("checkout requires a logged in user")

	// ErrOrderFailed is the single generic failure for any remote error
	// during submission; no order is considered placed unless the final
	// write succeeds.
	ErrOrderFailed = errors.New("failed to place order")
)

type Service interface {
	// PlaceOrder validates the form and submits an order built from the
	// session's cart, or from the buy-now product when one is given.
	PlaceOrder(ctx context.Context, sess *session.Session, form Form, buyNow *model.Product) (*model.Order, error)
}

type checkoutService struct {
	users session.UserWriter
	now   func() time.Time
}

func NewService(users session.UserWriter) Service {
	return &checkoutService{users: users, now: time.Now}
}

func (s *checkoutService) PlaceOrder(ctx context.Context, sess *session.Session, form Form, buyNow *model.Product) (*model.Order, error) {
	user := sess.User()
	if user == nil {
		return nil, ErrNotLoggedIn
	}

	// Validation happens before any network call.
	if err := Validate(form); err != nil {
		logger.Warn("Checkout validation failed", map[string]interface{}{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		return nil, err
	}

	var items []model.CartItem
	if buyNow != nil {
		// Buy-now bypasses the cart entirely; the cart keeps its contents.
		items = []model.CartItem{{Product: *buyNow, Quantity: 1}}
	} else {
		items = sess.Cart().Snapshot().Items
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}

	now := s.now()
	order := model.Order{
		ID:              fmt.Sprintf("OD%d", now.UnixMilli()),
		UserID:          user.ID,
		Items:           items,
		Total:           total,
		Status:          model.OrderStatusInTransit,
		OrderDate:       now,
		ShippingAddress: form.ShippingAddress,
		PaymentMethod:   form.PaymentMethod,
	}

	logger.Info("Placing order", map[string]interface{}{
		"user_id":        user.ID,
		"order_id":       order.ID,
		"total":          order.Total,
		"item_count":     len(order.Items),
		"payment_method": order.PaymentMethod,
		"buy_now":        buyNow != nil,
	})

	// Append to the user's order list and write the record back in one
	// shot. Either the whole order lands or nothing does.
	record := *user
	record.Orders = append(record.Orders, order)
	if _, err := s.users.UpdateUser(ctx, &record); err != nil {
		logger.Error("Order submission failed", err, map[string]interface{}{
			"user_id":  user.ID,
			"order_id": order.ID,
		})
		return nil, fmt.Errorf("%w: %v", ErrOrderFailed, err)
	}
	user.Orders = record.Orders

	if buyNow == nil {
		sess.Cart().Clear()
	}

	logger.Info("Order placed", map[string]interface{}{
		"user_id":  user.ID,
		"order_id": order.ID,
	})
	return &order, nil
}
