package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JonnyWalker81/problemjson/internal/logger"
	"github.com/JonnyWalker81/problemjson/internal/models"
	"github.com/JonnyWalker81/problemjson/internal/repository"
	"github.com/google/uuid"
)

var (
	// ErrPersonNotFound indicates no person has the requested ID
	ErrPersonNotFound = errors.New("person not found")
	// ErrPersonExists indicates a person with the same ID exists
	ErrPersonExists = errors.New("person already exists")
	// ErrEmailTaken indicates another person is registered with the email
	ErrEmailTaken = errors.New("email already registered")
)

type personService struct {
	personRepo repository.PersonRepository
	now        func() time.Time
}

// NewPersonService creates a new person service
func NewPersonService(personRepo repository.PersonRepository) PersonService {
	return &personService{
		personRepo: personRepo,
		now:        time.Now,
	}
}

func (s *personService) CreatePerson(ctx context.Context, req *models.CreatePersonRequest) (*models.Person, error) {
	person := &models.Person{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
		Role:  req.Role,
		Tags:  req.Tags,
	}
	if person.Role == "" {
		person.Role = models.RoleMember
	}
	if person.Tags == nil {
		person.Tags = []string{}
	}
	if req.Address != nil {
		person.Address = &models.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			Country: strings.ToUpper(req.Address.Country),
		}
	}

	// Use client-provided ID if present (for offline-first/UUIDv7 support)
	var id uuid.UUID
	if req.ID != nil && *req.ID != "" {
		parsed, err := parsePersonID(*req.ID, s.now())
		if err != nil {
			return nil, err
		}
		id = parsed
	} else {
		generated, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate person id: %w", err)
		}
		id = generated
	}
	person.ID = id.String()
	person.CreatedAt = idTime(id)

	existing, err := s.personRepo.GetByEmail(ctx, person.Email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s belongs to person %s", ErrEmailTaken, person.Email, existing.ID)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	created, err := s.personRepo.Create(ctx, person)
	switch {
	case errors.Is(err, repository.ErrDuplicateID):
		return nil, fmt.Errorf("%w: id %s is taken", ErrPersonExists, person.ID)
	case errors.Is(err, repository.ErrDuplicateEmail):
		// registered concurrently since the lookup above
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, person.Email)
	case err != nil:
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	logger.FromContext(ctx).Info("person created",
		logger.String("person_id", created.ID),
		logger.String("role", created.Role),
	)

	return created, nil
}

func (s *personService) GetPerson(ctx context.Context, personID string) (*models.Person, error) {
	if _, err := parsePersonID(personID, s.now()); err != nil {
		return nil, err
	}

	person, err := s.personRepo.GetByID(ctx, personID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPersonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	return person, nil
}
