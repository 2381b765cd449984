package ocr

import "errors"

// ErrUnreadable is returned when the recognized text is not a non-negative integer.
var ErrUnreadable = errors.New("count unreadable")
