package contract

import "errors"

var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("lead not found")
	ErrAgentInvoke = errors.New("agent invoke failed")
)
