package api

import (
	"context"

	"github.com/dnminh/vshop/internal/app/model"
)

// RemoteSyncer pushes ledger snapshots into the stored user record through
// partial updates. It satisfies session.Syncer.
type RemoteSyncer struct {
	client *Client
}

func NewRemoteSyncer(client *Client) *RemoteSyncer {
	return &RemoteSyncer{client: client}
}

func (s *RemoteSyncer) SyncCart(ctx context.Context, userID uint, c model.Cart) error {
	_, err := s.client.PatchUser(ctx, userID, map[string]interface{}{"cart": c})
	return err
}

func (s *RemoteSyncer) SyncWishlist(ctx context.Context, userID uint, w model.Wishlist) error {
	_, err := s.client.PatchUser(ctx, userID, map[string]interface{}{"wishlist": w})
	return err
}
