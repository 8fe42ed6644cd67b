package patients

import "errors"

var (
	// ErrMissingIdentity is returned when neither a name nor a phone is supplied
	ErrMissingIdentity = errors.New("either name or phone is required")
)
