package domain

import "errors"

var (
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrEmptyPatientID  = errors.New("patient id is required")
	ErrSessionNotFound = errors.New("session not found")
	ErrSuperseded      = errors.New("load superseded by a newer request")
)
