package cache

import "image"

// Null is a no-op store that never keeps anything.
// Useful for testing or when caching should be disabled.
type Null struct{}

// NewNull creates a null store.
func NewNull() Store {
	return &Null{}
}

// Get always returns a cache miss.
func (n *Null) Get(key string) (*image.NRGBA, bool) {
	return nil, false
}

// Put does nothing.
func (n *Null) Put(key string, img *image.NRGBA) {}

// Clear does nothing.
func (n *Null) Clear() {}

// Len always returns zero.
func (n *Null) Len() int { return 0 }

// Ensure Null implements Store.
var _ Store = (*Null)(nil)
