package categories

import "errors"

// ErrInvalidCategory indicates a value outside the closed category set.
var ErrInvalidCategory = errors.New("invalid document category")
