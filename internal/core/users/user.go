package users

import (
	"context"
	"errors"
	"time"
)

// User is the locally indexed view of an identity supplied by the external
// identity provider. The provider verifies identities; this system only
// consults the anonymous classification and embeds the handle in feed items.
type User struct {
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	ID          string    `json:"id" db:"id"`
	Handle      string    `json:"handle" db:"handle"`
	IsAnonymous bool      `json:"isAnonymous" db:"is_anonymous"`
}

// ErrUserNotFound indicates the identity has no local record
var ErrUserNotFound = errors.New("user not found")

// Repository defines the data access interface for users
type Repository interface {
	// GetByID retrieves a user by their verified identity
	GetByID(ctx context.Context, id string) (*User, error)
}
