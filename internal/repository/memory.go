package repository

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/JonnyWalker81/problemjson/internal/models"
)

type memoryPersonRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.Person
	byEmail map[string]string // lowercased email -> id
}

// NewMemoryPersonRepository creates a person repository held in memory
func NewMemoryPersonRepository() PersonRepository {
	return &memoryPersonRepository{
		byID:    make(map[string]*models.Person),
		byEmail: make(map[string]string),
	}
}

func (r *memoryPersonRepository) Create(ctx context.Context, person *models.Person) (*models.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[person.ID]; exists {
		return nil, ErrDuplicateID
	}
	email := strings.ToLower(person.Email)
	if _, exists := r.byEmail[email]; exists {
		return nil, ErrDuplicateEmail
	}

	stored := clonePerson(person)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.byID[stored.ID] = stored
	r.byEmail[email] = stored.ID

	return clonePerson(stored), nil
}

func (r *memoryPersonRepository) GetByID(ctx context.Context, id string) (*models.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	person, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clonePerson(person), nil
}

func (r *memoryPersonRepository) GetByEmail(ctx context.Context, email string) (*models.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return clonePerson(r.byID[id]), nil
}

// clonePerson copies p so callers never share the stored value
func clonePerson(p *models.Person) *models.Person {
	c := *p
	c.Tags = slices.Clone(p.Tags)
	if p.Address != nil {
		addr := *p.Address
		c.Address = &addr
	}
	return &c
}

type idempotencyEntry struct {
	record  models.IdempotencyKey
	expires time.Time
}

type memoryIdempotencyRepository struct {
	mu      sync.Mutex
	ttl     time.Duration
	records map[string]idempotencyEntry
	now     func() time.Time
}

// NewMemoryIdempotencyRepository creates an idempotency repository held in
// memory. Records expire after ttl.
func NewMemoryIdempotencyRepository(ttl time.Duration) IdempotencyRepository {
	return &memoryIdempotencyRepository{
		ttl:     ttl,
		records: make(map[string]idempotencyEntry),
		now:     time.Now,
	}
}

func idempotencyID(key, route string) string {
	return route + "\x00" + key
}

func (r *memoryIdempotencyRepository) Get(ctx context.Context, key, route string) (*models.IdempotencyKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := idempotencyID(key, route)
	entry, ok := r.records[id]
	if !ok {
		return nil, nil // Not found - this is not an error
	}
	if r.now().After(entry.expires) {
		delete(r.records, id)
		return nil, nil
	}

	record := entry.record
	record.ResponseBody = slices.Clone(entry.record.ResponseBody)
	return &record, nil
}

func (r *memoryIdempotencyRepository) Store(ctx context.Context, record *models.IdempotencyKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stored := *record
	stored.ResponseBody = slices.Clone(record.ResponseBody)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	r.records[idempotencyID(record.Key, record.Route)] = idempotencyEntry{
		record:  stored,
		expires: now.Add(r.ttl),
	}
	return nil
}
