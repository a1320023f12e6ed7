// Package admin implements the back-office operations: product catalog
// management and order status transitions. Every operation checks the acting
// user's role; the storefront never calls these.
package admin

import (
	"context"
	"errors"
	"time"

	"github.com/dnminh/vshop/internal/app/model"
	"github.com/dnminh/vshop/internal/session"
	"github.com/dnminh/vshop/pkg/logger"
)

var (
	ErrAdminOnly          = errors.New("operation requires the admin role")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// Catalog is the slice of the resource client the back-office needs for
// product management.
type Catalog interface {
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type Service interface {
	CreateProduct(ctx context.Context, actor *model.User, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, actor *model.User, product *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, actor *model.User, id uint) error
	UpdateOrderStatus(ctx context.Context, actor, owner *model.User, orderID string, status model.OrderStatus) error
}

type adminService struct {
	catalog Catalog
	users   session.UserWriter
	now     func() time.Time
}

func NewService(catalog Catalog, users session.UserWriter) Service {
	return &adminService{catalog: catalog, users: users, now: time.Now}
}

func (s *adminService) CreateProduct(ctx context.Context, actor *model.User, product *model.Product) (*model.Product, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	created, err := s.catalog.CreateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return nil, err
	}
	logger.Info("Product created", map[string]interface{}{
		"product_id": created.ID,
		"actor_id":   actor.ID,
	})
	return created, nil
}

func (s *adminService) UpdateProduct(ctx context.Context, actor *model.User, product *model.Product) (*model.Product, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	updated, err := s.catalog.UpdateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return nil, err
	}
	return updated, nil
}

func (s *adminService) DeleteProduct(ctx context.Context, actor *model.User, id uint) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}
	if err := s.catalog.DeleteProduct(ctx, id); err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
		"actor_id":   actor.ID,
	})
	return nil
}

var validStatuses = map[model.OrderStatus]bool{
	model.OrderStatusPending:   true,
	model.OrderStatusInTransit: true,
	model.OrderStatusDelivered: true,
	model.OrderStatusCancelled: true,
}

// UpdateOrderStatus mutates one order's status inside the owner's record.
// Item and price snapshots stay frozen; a delivered transition stamps the
// delivery timestamp.
func (s *adminService) UpdateOrderStatus(ctx context.Context, actor, owner *model.User, orderID string, status model.OrderStatus) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}
	if !validStatuses[status] {
		return ErrInvalidOrderStatus
	}

	order := owner.Orders.Find(orderID)
	if order == nil {
		return ErrOrderNotFound
	}

	order.Status = status
	if status == model.OrderStatusDelivered && order.DeliveryDate == nil {
		delivered := s.now()
		order.DeliveryDate = &delivered
	}

	if _, err := s.users.UpdateUser(ctx, owner); err != nil {
		logger.Error("Failed to write order status", err, map[string]interface{}{
			"order_id": orderID,
			"owner_id": owner.ID,
		})
		return err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
		"actor_id": actor.ID,
	})
	return nil
}
