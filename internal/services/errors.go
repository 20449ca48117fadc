package services

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP statuses at the handler boundary.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrStoreNotFound  = errors.New("store not found")
	ErrRatingNotFound = errors.New("rating not found")

	// ErrDuplicateEmail covers both user and store email collisions; the
	// underlying unique constraints are the source of truth.
	ErrDuplicateEmail = errors.New("email already in use")

	ErrInvalidCredentials = errors.New("invalid email or password")
)

// PermissionError signals a role or ownership mismatch (HTTP 403).
type PermissionError struct {
	UserID   uint
	Resource string
	Action   string
	Reason   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %d cannot %s %s: %s", e.UserID, e.Action, e.Resource, e.Reason)
}

func NewPermissionError(userID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{UserID: userID, Resource: resource, Action: action, Reason: reason}
}
