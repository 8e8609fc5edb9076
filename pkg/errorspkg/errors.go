// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
var ErrInternal = errors.New("internal")

// ErrStaleView indicates that a composite view finished after a newer render
// of the same view had already started, so its result must be discarded.
var ErrStaleView = errors.New("stale view generation")
