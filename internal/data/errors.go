package data

import "errors"

// Shared sentinel errors for data-layer repositories. Services translate
// these into the application error taxonomy.
var (
	// User repository sentinels.
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")

	// Ticket repository sentinels.
	ErrTicketNotFound = errors.New("ticket not found")

	// Asset repository sentinels.
	ErrAssetNotFound      = errors.New("asset not found")
	ErrAssetTagExists     = errors.New("asset tag already exists")
	ErrSerialNumberExists = errors.New("serial number already exists")
)
