package holding

import "errors"

var ErrNotFound = errors.New("holding not found")
