package inventory

import "context"

// Admin exposes the administrative inventory operations: building the
// coach layout and clearing every booking. Both delegate to the store
// and are safe to call repeatedly.
type Admin struct {
	store Store
}

// NewAdmin constructs an Admin. The store must be non-nil.
func NewAdmin(store Store) *Admin {
	if store == nil {
		panic("nil store passed to NewAdmin")
	}
	return &Admin{store: store}
}

// InitializeLayout wipes the inventory and regenerates the full coach
// layout with every seat unbooked. Intended for one-time setup; each
// call rebuilds from scratch.
func (a *Admin) InitializeLayout(ctx context.Context) error {
	return a.store.Initialize(ctx)
}

// ResetAllBookings releases every booked seat. Idempotent.
func (a *Admin) ResetAllBookings(ctx context.Context) error {
	return a.store.ReleaseAll(ctx)
}
