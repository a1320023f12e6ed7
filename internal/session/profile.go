package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/dnminh/vshop/internal/app/model"
	"github.com/dnminh/vshop/internal/localstore"
	"github.com/dnminh/vshop/pkg/logger"
)

// ProfileUpdate carries the editable profile fields. Nil pointers leave the
// current value alone.
type ProfileUpdate struct {
	Name     *string
	Phone    *string
	Username *string
}

// UpdateProfile applies a profile edit and writes the record back. A
// username may be changed exactly once per account; further attempts are
// rejected with ErrUsernameAlreadyChanged before any remote call.
func (s *Session) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	if s.user == nil {
		return ErrNoActiveUser
	}

	if update.Username != nil && *update.Username != s.user.Username {
		if s.user.HasChangedUsername {
			return ErrUsernameAlreadyChanged
		}
		s.user.Username = *update.Username
		s.user.HasChangedUsername = true
	}
	if update.Name != nil {
		s.user.Name = *update.Name
	}
	if update.Phone != nil {
		s.user.Phone = *update.Phone
	}

	return s.writeUser(ctx)
}

// AddAddress appends an address to the user's address book. The first
// address becomes the default automatically; an explicit default clears the
// flag everywhere else.
func (s *Session) AddAddress(ctx context.Context, addr model.Address) error {
	if s.user == nil {
		return ErrNoActiveUser
	}

	addr.ID = uuid.New().String()
	addr.UserID = s.user.ID
	if len(s.user.Addresses) == 0 {
		addr.IsDefault = true
	}
	s.user.Addresses = append(s.user.Addresses, addr)
	if addr.IsDefault {
		s.user.Addresses.SetDefault(addr.ID)
	}

	return s.writeUser(ctx)
}

// UpdateAddress replaces an address in place, preserving the single-default
// invariant when the edit marks it default.
func (s *Session) UpdateAddress(ctx context.Context, addr model.Address) error {
	if s.user == nil {
		return ErrNoActiveUser
	}

	found := false
	for i := range s.user.Addresses {
		if s.user.Addresses[i].ID == addr.ID {
			addr.UserID = s.user.ID
			s.user.Addresses[i] = addr
			found = true
			break
		}
	}
	if !found {
		return ErrAddressNotFound
	}
	if addr.IsDefault {
		s.user.Addresses.SetDefault(addr.ID)
	}

	return s.writeUser(ctx)
}

// DeleteAddress removes an address from the address book
func (s *Session) DeleteAddress(ctx context.Context, addressID string) error {
	if s.user == nil {
		return ErrNoActiveUser
	}

	kept := make(model.AddressList, 0, len(s.user.Addresses))
	found := false
	for _, a := range s.user.Addresses {
		if a.ID == addressID {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return ErrAddressNotFound
	}
	s.user.Addresses = kept

	return s.writeUser(ctx)
}

// SetDefaultAddress makes the given address the single default
func (s *Session) SetDefaultAddress(ctx context.Context, addressID string) error {
	if s.user == nil {
		return ErrNoActiveUser
	}
	if s.user.Addresses.Find(addressID) == nil {
		return ErrAddressNotFound
	}
	s.user.Addresses.SetDefault(addressID)

	return s.writeUser(ctx)
}

func (s *Session) writeUser(ctx context.Context) error {
	if err := s.store.Set(ctx, localstore.KeyUser, s.user); err != nil {
		logger.Error("Failed to persist user record", err, map[string]interface{}{
			"user_id": s.user.ID,
		})
	}

	updated, err := s.users.UpdateUser(ctx, s.user)
	if err != nil {
		logger.Error("Failed to write user record to backend", err, map[string]interface{}{
			"user_id": s.user.ID,
		})
		return err
	}
	s.user = updated
	return nil
}
