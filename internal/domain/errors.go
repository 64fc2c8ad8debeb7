package domain

import "errors"

var (
	ErrInviteNotFound = errors.New("invite not found")
	ErrInviteResolved = errors.New("invite already resolved")
	ErrEmptyReceivers = errors.New("no receivers")
)
