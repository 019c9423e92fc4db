package events

import "errors"

var (
	ErrNotFound          = errors.New("event not found")
	ErrAlreadyRegistered = errors.New("already registered")
	ErrEventFull         = errors.New("event is full")
)
