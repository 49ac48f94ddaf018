package models

import "errors"

// Common validation errors for models.
var (
	// ErrNameRequired indicates a required name field is empty.
	ErrNameRequired = errors.New("name is required")

	// ErrStreamURLRequired indicates a required stream URL field is empty.
	ErrStreamURLRequired = errors.New("stream url is required")

	// ErrHostRequired indicates a required host field is empty.
	ErrHostRequired = errors.New("host is required")

	// ErrPathRequired indicates a required file path field is empty.
	ErrPathRequired = errors.New("path is required")

	// ErrInvalidSourceType indicates an unknown source type.
	ErrInvalidSourceType = errors.New("invalid source type: must be 'static', 'text' or 'xtream'")

	// ErrCredentialsRequired indicates missing Xtream credentials.
	ErrCredentialsRequired = errors.New("username and password are required for xtream sources")
)
