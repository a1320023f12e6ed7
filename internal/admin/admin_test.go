package admin

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dnminh/vshop/internal/app/model"
)

type fakeCatalog struct {
	created []model.Product
	updated []model.Product
	deleted []uint
	err     error
}

func (f *fakeCatalog) CreateProduct(_ context.Context, p *model.Product) (*model.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *p
	created.ID = uint(len(f.created) + 1)
	f.created = append(f.created, created)
	return &created, nil
}

func (f *fakeCatalog) UpdateProduct(_ context.Context, p *model.Product) (*model.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = append(f.updated, *p)
	copied := *p
	return &copied, nil
}

func (f *fakeCatalog) DeleteProduct(_ context.Context, id uint) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeUserWriter struct {
	updates []model.User
	err     error
}

func (f *fakeUserWriter) UpdateUser(_ context.Context, user *model.User) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u := *user
	f.updates = append(f.updates, u)
	return &u, nil
}

func setupAdminTest(t *testing.T) (Service, *fakeCatalog, *fakeUserWriter) {
	t.Helper()
	catalog := &fakeCatalog{}
	users := &fakeUserWriter{}
	svc := NewService(catalog, users)
	svc.(*adminService).now = func() time.Time {
		return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	}
	return svc, catalog, users
}

func adminUser() *model.User {
	return &model.User{ID: 1, Name: "Admin", Role: model.RoleAdmin}
}

func regularUser() *model.User {
	return &model.User{ID: 2, Name: "Minh", Role: model.RoleUser}
}

func TestCreateProduct(t *testing.T) {
	svc, catalog, _ := setupAdminTest(t)

	created, err := svc.CreateProduct(context.Background(), adminUser(), &model.Product{Name: "Gold ring", Price: 100000})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Len(t, catalog.created, 1)
}

func TestCreateProduct_NonAdmin(t *testing.T) {
	svc, catalog, _ := setupAdminTest(t)

	_, err := svc.CreateProduct(context.Background(), regularUser(), &model.Product{Name: "Gold ring"})

	assert.ErrorIs(t, err, ErrAdminOnly)
	assert.Empty(t, catalog.created)
}

func TestUpdateProduct_NonAdmin(t *testing.T) {
	svc, catalog, _ := setupAdminTest(t)

	_, err := svc.UpdateProduct(context.Background(), regularUser(), &model.Product{ID: 1})

	assert.ErrorIs(t, err, ErrAdminOnly)
	assert.Empty(t, catalog.updated)
}

func TestDeleteProduct(t *testing.T) {
	svc, catalog, _ := setupAdminTest(t)

	require.NoError(t, svc.DeleteProduct(context.Background(), adminUser(), 5))
	assert.Equal(t, []uint{5}, catalog.deleted)

	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), regularUser(), 5), ErrAdminOnly)
}

func ownerWithOrder(status model.OrderStatus) *model.User {
	return &model.User{
		ID:   2,
		Name: "Minh",
		Orders: model.OrderList{{
			ID:        "OD1741953600000",
			UserID:    2,
			Status:    status,
			Total:     250000,
			OrderDate: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		}},
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, _, users := setupAdminTest(t)
	owner := ownerWithOrder(model.OrderStatusInTransit)

	err := svc.UpdateOrderStatus(context.Background(), adminUser(), owner, "OD1741953600000", model.OrderStatusDelivered)

	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, owner.Orders[0].Status)
	require.NotNil(t, owner.Orders[0].DeliveryDate)
	assert.Equal(t, 2025, owner.Orders[0].DeliveryDate.Year())
	require.Len(t, users.updates, 1)
}

func TestUpdateOrderStatus_DeliveryDateStampedOnce(t *testing.T) {
	svc, _, _ := setupAdminTest(t)
	owner := ownerWithOrder(model.OrderStatusInTransit)
	earlier := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	owner.Orders[0].DeliveryDate = &earlier

	err := svc.UpdateOrderStatus(context.Background(), adminUser(), owner, "OD1741953600000", model.OrderStatusDelivered)

	require.NoError(t, err)
	assert.Equal(t, earlier, *owner.Orders[0].DeliveryDate)
}

func TestUpdateOrderStatus_NonAdmin(t *testing.T) {
	svc, _, users := setupAdminTest(t)
	owner := ownerWithOrder(model.OrderStatusInTransit)

	err := svc.UpdateOrderStatus(context.Background(), regularUser(), owner, "OD1741953600000", model.OrderStatusDelivered)

	assert.ErrorIs(t, err, ErrAdminOnly)
	assert.Empty(t, users.updates)
	assert.Equal(t, model.OrderStatusInTransit, owner.Orders[0].Status)
}

func TestUpdateOrderStatus_InvalidStatus(t *testing.T) {
	svc, _, _ := setupAdminTest(t)
	owner := ownerWithOrder(model.OrderStatusInTransit)

	err := svc.UpdateOrderStatus(context.Background(), adminUser(), owner, "OD1741953600000", model.OrderStatus("returned"))

	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestUpdateOrderStatus_OrderNotFound(t *testing.T) {
	svc, _, _ := setupAdminTest(t)
	owner := ownerWithOrder(model.OrderStatusInTransit)

	err := svc.UpdateOrderStatus(context.Background(), adminUser(), owner, "ODmissing", model.OrderStatusCancelled)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestWriteOrdersReport(t *testing.T) {
	delivered := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)
	users := []model.User{
		{
			Name:  "Minh",
			Email: "minh@example.com",
			Orders: model.OrderList{{
				ID:     "OD1",
				Items:  []model.CartItem{{Product: model.Product{ID: 1}, Quantity: 2}},
				Total:  200000,
				Status: model.OrderStatusDelivered,
				ShippingAddress: model.ShippingAddress{
					City: "Hồ Chí Minh",
				},
				PaymentMethod: model.PaymentCOD,
				OrderDate:     time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
				DeliveryDate:  &delivered,
			}},
		},
		{
			Name:  "Lan",
			Email: "lan@example.com",
			Orders: model.OrderList{{
				ID:            "OD2",
				Items:         []model.CartItem{{Product: model.Product{ID: 2}, Quantity: 1}},
				Total:         50000,
				Status:        model.OrderStatusInTransit,
				PaymentMethod: model.PaymentOnline,
				OrderDate:     time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC),
			}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOrdersReport(users, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Order ID", rows[0][0])
	assert.Equal(t, "OD1", rows[1][0])
	assert.Equal(t, "Minh", rows[1][1])
	assert.Equal(t, "Hồ Chí Minh", rows[1][3])
	assert.Equal(t, "2", rows[1][4])
	assert.Equal(t, "delivered", rows[1][7])
	assert.Equal(t, "OD2", rows[2][0])
	assert.Equal(t, "in_transit", rows[2][7])
}

func TestWriteOrdersReport_NoOrders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersReport([]model.User{{Name: "Minh"}}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
