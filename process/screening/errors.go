package screening

import "errors"

// ErrInsufficientInput means triage found no memorial screenshot for some group
// or no autograph screenshot at all.
var ErrInsufficientInput = errors.New("insufficient screenshots")
