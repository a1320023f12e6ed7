package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnminh/vshop/internal/app/model"
	"github.com/dnminh/vshop/internal/localstore"
)

type fakeSyncer struct {
	cartCalls     []model.Cart
	wishlistCalls []model.Wishlist
	err           error
}

func (f *fakeSyncer) SyncCart(_ context.Context, _ uint, c model.Cart) error {
	f.cartCalls = append(f.cartCalls, c)
	return f.err
}

func (f *fakeSyncer) SyncWishlist(_ context.Context, _ uint, w model.Wishlist) error {
	f.wishlistCalls = append(f.wishlistCalls, w)
	return f.err
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

func setupSessionTest(t *testing.T) (*Session, *fakeSyncer, *fakeUserWriter, localstore.Store) {
	t.Helper()
	store := localstore.NewMemoryStore()
	syncer := &fakeSyncer{}
	users := &fakeUserWriter{}
	sess := New(store, syncer, users)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return sess, syncer, users, store
}

func testUser() *model.User {
	return &model.User{
		ID:       1,
		Name:     "Minh",
		Email:    "minh@example.com",
		Username: "minh",
		Role:     model.RoleUser,
		Cart: model.Cart{
			Items: []model.CartItem{
				{Product: model.Product{ID: 1, Price: 100000}, Quantity: 2},
			},
			Total: 200000,
		},
		Wishlist: model.Wishlist{Items: []model.Product{{ID: 5}}},
	}
}

func TestSession_Login_ReplacesLedgers(t *testing.T) {
	sess, _, _, _ := setupSessionTest(t)
	ctx := context.Background()

	// An anonymous cart exists before login.
	sess.Cart().Add(model.Product{ID: 99, Price: 1000})

	sess.Login(ctx, testUser())

	// The stored cart wins outright, no merge.
	snapshot := sess.Cart().Snapshot()
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, uint(1), snapshot.Items[0].ID)
	assert.Equal(t, float64(200000), snapshot.Total)
	assert.True(t, sess.Wishlist().Snapshot().Contains(5))
}

func TestSession_Login_PersistsUser(t *testing.T) {
	sess, _, _, store := setupSessionTest(t)
	ctx := context.Background()

	sess.Login(ctx, testUser())

	var stored model.User
	require.NoError(t, store.Get(ctx, localstore.KeyUser, &stored))
	assert.Equal(t, uint(1), stored.ID)
}

func TestSession_CartMutationSyncsWhenLoggedIn(t *testing.T) {
	sess, syncer, _, _ := setupSessionTest(t)
	sess.Login(context.Background(), testUser())
	syncer.cartCalls = nil

	sess.Cart().Add(model.Product{ID: 2, Price: 50000})

	require.Len(t, syncer.cartCalls, 1)
	assert.Equal(t, float64(250000), syncer.cartCalls[0].Total)
	// The user record carries the new cart too.
	assert.Equal(t, float64(250000), sess.User().Cart.Total)
}

func TestSession_CartMutationAnonymousSkipsSync(t *testing.T) {
	sess, syncer, _, store := setupSessionTest(t)
	ctx := context.Background()

	sess.Cart().Add(model.Product{ID: 2, Price: 50000})

	assert.Empty(t, syncer.cartCalls)
	// Local persistence still happens.
	var c model.Cart
	require.NoError(t, store.Get(ctx, localstore.KeyCart, &c))
	assert.Len(t, c.Items, 1)
}

func TestSession_SyncFailureKeepsLocalState(t *testing.T) {
	sess, syncer, _, _ := setupSessionTest(t)
	sess.Login(context.Background(), testUser())
	syncer.err = errors.New("backend down")

	sess.Cart().Add(model.Product{ID: 2, Price: 50000})

	// Local state moves forward; the failed push is logged and dropped.
	assert.Equal(t, float64(250000), sess.Cart().Total())
}

func TestSession_Logout(t *testing.T) {
	sess, syncer, _, store := setupSessionTest(t)
	ctx := context.Background()
	sess.Login(ctx, testUser())
	syncer.cartCalls = nil
	syncer.wishlistCalls = nil

	sess.Logout(ctx)

	assert.Nil(t, sess.User())
	assert.Empty(t, sess.Cart().Snapshot().Items)
	assert.Empty(t, sess.Wishlist().Snapshot().Items)

	// The remote cart is reset to empty; the remote wishlist is left alone.
	require.Len(t, syncer.cartCalls, 1)
	assert.Empty(t, syncer.cartCalls[0].Items)
	assert.Empty(t, syncer.wishlistCalls)

	// All persisted keys are gone.
	for _, key := range []string{localstore.KeyUser, localstore.KeyCart, localstore.KeyWishlist} {
		var raw map[string]interface{}
		assert.ErrorIs(t, store.Get(ctx, key, &raw), localstore.ErrNotFound)
	}
}

func TestSession_Logout_SyncFailureStillLogsOut(t *testing.T) {
	sess, syncer, _, _ := setupSessionTest(t)
	ctx := context.Background()
	sess.Login(ctx, testUser())
	syncer.err = errors.New("backend down")

	sess.Logout(ctx)

	assert.Nil(t, sess.User())
	assert.Empty(t, sess.Cart().Snapshot().Items)
}

func TestSession_Logout_AnonymousIsNoop(t *testing.T) {
	sess, syncer, _, _ := setupSessionTest(t)

	sess.Logout(context.Background())

	assert.Nil(t, sess.User())
	assert.Empty(t, syncer.cartCalls)
}

func TestSession_Restore(t *testing.T) {
	store := localstore.NewMemoryStore()
	ctx := context.Background()
	first := New(store, &fakeSyncer{}, &fakeUserWriter{})
	first.Login(ctx, testUser())

	// A fresh session over the same store picks the state back up.
	second := New(store, &fakeSyncer{}, &fakeUserWriter{})
	second.Restore(ctx)

	require.NotNil(t, second.User())
	assert.Equal(t, uint(1), second.User().ID)
	assert.Equal(t, float64(200000), second.Cart().Total())
	assert.True(t, second.Wishlist().Snapshot().Contains(5))
}

func TestSession_Restore_EmptyStoreIsAnonymous(t *testing.T) {
	sess, _, _, _ := setupSessionTest(t)

	sess.Restore(context.Background())

	assert.Nil(t, sess.User())
	assert.Empty(t, sess.Cart().Snapshot().Items)
}

func TestSession_IsAdmin(t *testing.T) {
	sess, _, _, _ := setupSessionTest(t)
	assert.False(t, sess.IsAdmin())

	admin := testUser()
	admin.Role = model.RoleAdmin
	sess.Login(context.Background(), admin)

	assert.True(t, sess.IsAdmin())
}

func TestSession_UpdateProfile(t *testing.T) {
	sess, _, users, _ := setupSessionTest(t)
	sess.Login(context.Background(), testUser())

	name := "Minh Dao"
	err := sess.UpdateProfile(context.Background(), ProfileUpdate{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Minh Dao", sess.User().Name)
	require.NotEmpty(t, users.updates)
	assert.Equal(t, "Minh Dao", users.updates[len(users.updates)-1].Name)
}

func TestSession_UpdateProfile_UsernameOnlyOnce(t *testing.T) {
	sess, _, _, _ := setupSessionTest(t)
	sess.Login(context.Background(), testUser())
	ctx := context.Background()

	first := "minh2"
	require.NoError(t, sess.UpdateProfile(ctx, ProfileUpdate{Username: &first}))
	assert.Equal(t, "minh2", sess.User().Username)
	assert.True(t, sess.User().HasChangedUsername)

	second := "minh3"
	err := sess.UpdateProfile(ctx, ProfileUpdate{Username: &second})

	assert.ErrorIs(t, err, ErrUsernameAlreadyChanged)
	assert.Equal(t, "minh2", sess.User().Username)
}

func TestSession_UpdateProfile_SameUsernameIsNotAChange(t *testing.T) {
	sess, _, _, _ := setupSessionTest(t)
	sess.Login(context.Background(), testUser())

	same := "minh"
	require.NoError(t, sess.UpdateProfile(context.Background(), ProfileUpdate{Username: &same}))

	assert.False(t, sess.User().HasChangedUsername)
}

func TestSession_UpdateProfile_NoActiveUser(t *testing.T) {
	sess, _, _, _ := setupSessionTest(t)

	name := "x"
	err := sess.UpdateProfile(context.Background(), ProfileUpdate{Name: &name})

	assert.ErrorIs(t, err, ErrNoActiveUser)
}

func TestSession_AddAddress_FirstBecomesDefault(t *testing.T) {
	sess, _, _, _ := setupSessionTest(t)
	sess.Login(context.Background(), testUser())

	err := sess.AddAddress(context.Background(), model.Address{
		FullName:     "Minh",
		Phone:        "0901234567",
		Detail:       "12 Nguyen Hue",
		ProvinceName: "Hồ Chí Minh",
		Type:         model.AddressTypeHome,
	})

	require.NoError(t, err)
	require.Len(t, sess.User().Addresses, 1)
	assert.True(t, sess.User().Addresses[0].IsDefault)
	assert.NotEmpty(t, sess.User().Addresses[0].ID)
}

func TestSession_AddAddress_DefaultIsExclusive(t *testing.T) {
	sess, _, _, _ := setupSessionTest(t)
	sess.Login(context.Background(), testUser())
	ctx := context.Background()

	require.NoError(t, sess.AddAddress(ctx, model.Address{Detail: "first"}))
	require.NoError(t, sess.AddAddress(ctx, model.Address{Detail: "second", IsDefault: true}))

	addresses := sess.User().Addresses
	require.Len(t, addresses, 2)
	assert.False(t, addresses[0].IsDefault)
	assert.True(t, addresses[1].IsDefault)
}

func TestSession_SetDefaultAddress(t *testing.T) {
	sess, _, _, _ := setupSessionTest(t)
	sess.Login(context.Background(), testUser())
	ctx := context.Background()

	require.NoError(t, sess.AddAddress(ctx, model.Address{Detail: "first"}))
	require.NoError(t, sess.AddAddress(ctx, model.Address{Detail: "second"}))

	target := sess.User().Addresses[1].ID
	require.NoError(t, sess.SetDefaultAddress(ctx, target))

	def := sess.User().DefaultAddress()
	require.NotNil(t, def)
	assert.Equal(t, "second", def.Detail)
}

func TestSession_DeleteAddress(t *testing.T) {
	sess, _, _, _ := setupSessionTest(t)
	sess.Login(context.Background(), testUser())
	ctx := context.Background()

	require.NoError(t, sess.AddAddress(ctx, model.Address{Detail: "first"}))
	id := sess.User().Addresses[0].ID

	require.NoError(t, sess.DeleteAddress(ctx, id))
	assert.Empty(t, sess.User().Addresses)

	assert.ErrorIs(t, sess.DeleteAddress(ctx, id), ErrAddressNotFound)
}

func TestSession_UpdateAddress_NotFound(t *testing.T) {
	sess, _, _, _ := setupSessionTest(t)
	sess.Login(context.Background(), testUser())

	err := sess.UpdateAddress(context.Background(), model.Address{ID: "missing"})

	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestSession_WriteUserFailureSurfaces(t *testing.T) {
	sess, _, users, _ := setupSessionTest(t)
	sess.Login(context.Background(), testUser())
	users.err = errors.New("backend down")

	name := "Minh Dao"
	err := sess.UpdateProfile(context.Background(), ProfileUpdate{Name: &name})

	assert.Error(t, err)
}
