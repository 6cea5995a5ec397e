package reconcile

import "errors"

var ErrInvalidRange = errors.New("start must not be after end")
