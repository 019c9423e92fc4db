package events

import "context"

// Repository is the persistence boundary for the event catalog and the
// registration ledger.
type Repository interface {
	List(ctx context.Context, params ListParams) (ListResult, error)
	GetByPublicID(ctx context.Context, publicID string) (*Event, error)

	// CreateRegistration commits a registration for the event identified
	// by publicID. The duplicate check, the capacity check, and the
	// insert must execute as one isolated transaction so a full event can
	// never be oversold by concurrent requests. Returns ErrNotFound,
	// ErrAlreadyRegistered, or ErrEventFull on the corresponding
	// contract violations.
	CreateRegistration(ctx context.Context, userID, publicID string) (*Registration, error)

	ListRegistrationsForUser(ctx context.Context, userID string) ([]Registration, error)
}
