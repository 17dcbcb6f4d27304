package notification

import "errors"

// Module errors.
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidRecipient     = errors.New("invalid recipient class")
)
