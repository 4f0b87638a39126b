// Package store persists the hook repository checkout index.
//
// The [Store] interface abstracts the backend. BoltDB is the default;
// building with the "sqlite" tag swaps in a SQLite backend with the same
// behavior.
package store

import (
	"errors"

	"github.com/hooksmith/hooksmith/internal/model"
)

// ErrNotFound is returned when no checkout matches a url and rev pair.
var ErrNotFound = errors.New("checkout not found")

// Store defines the checkout index operations used by the app.
type Store interface {
	Ping() error
	Close() error

	// SaveCheckout inserts or replaces the record for (URL, Rev).
	SaveCheckout(c *model.Checkout) error

	// GetCheckout returns the record for (url, rev), or ErrNotFound.
	GetCheckout(url, rev string) (*model.Checkout, error)

	// TouchCheckout bumps LastUsedAt for (url, rev).
	TouchCheckout(url, rev string) error

	// ListCheckouts returns every record, ordered by URL then Rev.
	ListCheckouts() ([]model.Checkout, error)

	// DeleteCheckout removes the record for (url, rev).
	DeleteCheckout(url, rev string) error
}

// Open opens the checkout index at path, creating it when missing. The
// backend is selected at build time.
func Open(path string) (Store, error) {
	return open(path)
}
