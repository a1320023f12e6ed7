// A scripted smoke flow for the client packages: registers a throwaway
// account, browses the catalog, fills a cart and places a COD order against
// a running API (the fixture server by default).
package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dnminh/vshop/config"
	"github.com/dnminh/vshop/internal/api"
	"github.com/dnminh/vshop/internal/app/model"
	"github.com/dnminh/vshop/internal/auth"
	"github.com/dnminh/vshop/internal/checkout"
	"github.com/dnminh/vshop/internal/localstore"
	"github.com/dnminh/vshop/internal/notify"
	"github.com/dnminh/vshop/internal/session"
	"github.com/dnminh/vshop/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	logger.Initialize(logger.Config{
		Level:       "debug",
		Format:      "console",
		EnableColor: true,
	})

	client, err := api.NewClient(cfg.Client)
	if err != nil {
		logger.Fatal("Failed to create resource client", err)
	}

	store, err := localstore.Open(&cfg.State, &cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to open local state store", err)
	}
	defer store.Close()

	sess := session.New(store, api.NewRemoteSyncer(client), client)
	notifications := notify.NewQueue()
	authService := auth.NewService(client)
	checkoutService := checkout.NewService(client)

	ctx := context.Background()
	email := fmt.Sprintf("smoke-%d@vshop.local", time.Now().Unix())

	_, err = authService.Register(ctx, auth.RegisterInput{
		Name:     "Smoke Tester",
		Email:    email,
		Username: fmt.Sprintf("smoke%d", time.Now().Unix()),
		Phone:    "0912345678",
		Password: "smoke-test",
	})
	if err != nil {
		logger.Fatal("Registration failed", err)
	}

	user, err := authService.Login(ctx, email, "smoke-test")
	if err != nil {
		logger.Fatal("Login failed", err)
	}
	sess.Login(ctx, user)

	products, err := client.ListProducts(ctx)
	if err != nil {
		logger.Fatal("Failed to list products", err)
	}
	if len(products) == 0 {
		logger.Fatal("Catalog is empty, seed the fixture API first", nil)
	}
	logger.Info("Catalog loaded", map[string]interface{}{
		"count": len(products),
	})

	sess.Cart().Add(products[0])
	sess.Cart().Add(products[0])
	if len(products) > 1 {
		sess.Cart().Add(products[1])
	}
	sess.Wishlist().Add(products[0])

	logger.Info("Cart filled", map[string]interface{}{
		"items": len(sess.Cart().Snapshot().Items),
		"total": sess.Cart().Total(),
	})

	order, err := checkoutService.PlaceOrder(ctx, sess, checkout.Form{
		ShippingAddress: model.ShippingAddress{
			FirstName: "Smoke",
			LastName:  "Tester",
			Email:     email,
			Phone:     "0912345678",
			Address:   "1 Lê Lợi",
			City:      "Hồ Chí Minh",
		},
		PaymentMethod: model.PaymentCOD,
	}, nil)
	if err != nil {
		var vErr *checkout.ValidationError
		if errors.As(err, &vErr) {
			logger.Fatal("Checkout form rejected", err, map[string]interface{}{
				"fields": vErr.Fields,
			})
		}
		logger.Fatal("Checkout failed", err)
	}

	notifications.Show("Order placed: "+order.ID, notify.SeveritySuccess)
	logger.Info("Smoke flow finished", map[string]interface{}{
		"order_id":    order.ID,
		"order_total": order.Total,
		"cart_items":  len(sess.Cart().Snapshot().Items),
	})

	sess.Logout(ctx)
}
