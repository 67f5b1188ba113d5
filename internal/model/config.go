package model

// StoreSettings is the storage configuration resolved once at store
// construction time.
type StoreSettings struct {
	// Kind selects the store implementation (e.g. "memory").
	Kind string
	// DefaultUserID is the user namespace used for requests without one.
	DefaultUserID string
}
