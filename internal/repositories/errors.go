package repositories

import "errors"

// ErrCorruptPersistedState marks a stored collection that could not be decoded.
// Loading recovers from it by reseeding; it is reported, never returned.
var ErrCorruptPersistedState = errors.New("corrupt persisted state")
