package repository

import (
	"context"
	"errors"

	"github.com/JonnyWalker81/problemjson/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the lookup
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateID is returned when a record with the same ID exists
	ErrDuplicateID = errors.New("record with this ID already exists")
	// ErrDuplicateEmail is returned when a person with the same email exists
	ErrDuplicateEmail = errors.New("person with this email already exists")
)

// PersonRepository defines the interface for person data access
type PersonRepository interface {
	Create(ctx context.Context, person *models.Person) (*models.Person, error)
	GetByID(ctx context.Context, id string) (*models.Person, error)
	GetByEmail(ctx context.Context, email string) (*models.Person, error)
}

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// Get retrieves an existing idempotency record, or nil if there is none
	Get(ctx context.Context, key, route string) (*models.IdempotencyKey, error)

	// Store saves a new idempotency record
	Store(ctx context.Context, record *models.IdempotencyKey) error
}
