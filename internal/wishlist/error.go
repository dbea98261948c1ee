package wishlist

import "errors"

var ErrEmptyProductID = errors.New("product id is required")
