package policy

import "errors"

// Policy domain errors
var (
	ErrUnknownSection  = errors.New("unknown policy section")
	ErrInvalidDocument = errors.New("policy document must be a JSON object")
)
