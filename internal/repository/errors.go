package repository

import "errors"

var (
	// ErrSessionNotFound indicates the session does not exist or expired
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionLimitReached indicates the store is full
	ErrSessionLimitReached = errors.New("session limit reached")

	// ErrRepositoryClosed indicates the repository was closed
	ErrRepositoryClosed = errors.New("repository closed")
)
