package bloom

import "errors"

// ErrInvalidConfiguration is returned by New when the capacity, hash count or
// false positive rate cannot size a filter. No filter is returned with it.
var ErrInvalidConfiguration = errors.New("invalid bloom filter configuration")
