package model

import "time"

// Checkout records one cloned hook repository at a pinned revision.
type Checkout struct {
	// UID is a unique identifier (UUID) for the checkout.
	UID string `json:"uid"`

	// URL is the canonical repository URL (see the giturl package).
	URL string `json:"url"`

	// Rev is the pinned revision the checkout is at.
	Rev string `json:"rev"`

	// Path is the checkout directory under the cache root.
	Path string `json:"path"`

	// CreatedAt is when the repository was cloned.
	CreatedAt time.Time `json:"created_at"`

	// LastUsedAt is updated on every run that resolves hooks from the
	// checkout; gc uses it to drop stale entries.
	LastUsedAt time.Time `json:"last_used_at"`
}
