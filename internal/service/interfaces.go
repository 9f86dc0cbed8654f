package service

import (
	"context"

	"github.com/JonnyWalker81/problemjson/internal/models"
)

// PersonService defines the interface for person business logic
type PersonService interface {
	CreatePerson(ctx context.Context, req *models.CreatePersonRequest) (*models.Person, error)
	GetPerson(ctx context.Context, personID string) (*models.Person, error)
}
