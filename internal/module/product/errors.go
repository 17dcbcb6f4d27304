package product

import "errors"

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrDuplicateModelNumber = errors.New("model number already exists")
	ErrInvalidPrice         = errors.New("price must be positive")
)
