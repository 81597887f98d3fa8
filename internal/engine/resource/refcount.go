// Package resource provides reference counting for GPU objects shared
// between meshes, materials and models.
package resource

// RefCount tracks owners of a shared object. A new object starts with one
// owner. It is not safe for concurrent use; the renderer is single-threaded.
type RefCount struct {
	refs int
}

// NewRefCount returns a counter held by one owner.
func NewRefCount() RefCount {
	return RefCount{refs: 1}
}

// Retain adds an owner.
func (r *RefCount) Retain() {
	r.refs++
}

// Release drops an owner and reports whether it was the last one, in which
// case the caller frees the object. Releasing a dead counter reports false.
func (r *RefCount) Release() bool {
	if r.refs <= 0 {
		return false
	}
	r.refs--
	return r.refs == 0
}

// Refs returns the current number of owners.
func (r *RefCount) Refs() int {
	return r.refs
}

// Alive reports whether any owner remains.
func (r *RefCount) Alive() bool {
	return r.refs > 0
}
