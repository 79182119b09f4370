package core

import "context"

// Repository defines the contract for persisting an address book.
// The whole book is the unit of persistence; there are no per-record writes.
type Repository interface {
	// Load restores the persisted book. A store that holds no data yet
	// returns an empty book and no error. Data that exists but cannot be
	// decoded is reported as a *FormatError.
	Load(ctx context.Context) (*AddressBook, error)

	// Save replaces the persisted state with book. Readers never observe a
	// partially written state.
	Save(ctx context.Context, book *AddressBook) error

	// Initialize ensures the underlying storage is ready (e.g. create directories, git init).
	Initialize(ctx context.Context) error
}

// Watchable is implemented by repositories that can report external changes.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

type contextKey string

// ChangeReasonKey is the context key for passing a change reason (commit message) to Save.
const ChangeReasonKey contextKey = "change_reason"
