package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidID is wrapped by every *InvalidIDError
var ErrInvalidID = errors.New("invalid person id")

// maxClockSkew bounds how far a client-generated id may run ahead of the
// server clock
const maxClockSkew = time.Minute

// InvalidIDError reports a person id the service will not store or look up.
// Reason reads as a predicate of the id ("must be a version 7 UUID") so
// handlers can attach it to whichever location carried the id.
type InvalidIDError struct {
	ID     string
	Reason string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("person id %q %s", e.ID, e.Reason)
}

func (e *InvalidIDError) Unwrap() error { return ErrInvalidID }

// parsePersonID accepts UUIDv7 strings whose timestamp is at most
// maxClockSkew ahead of now
func parsePersonID(id string, now time.Time) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, &InvalidIDError{ID: id, Reason: "must be a valid UUID"}
	}
	if parsed.Version() != 7 {
		return uuid.Nil, &InvalidIDError{ID: id, Reason: "must be a version 7 UUID"}
	}
	if idTime(parsed).After(now.Add(maxClockSkew)) {
		return uuid.Nil, &InvalidIDError{ID: id, Reason: "must not be more than a minute in the future"}
	}
	return parsed, nil
}

// idTime returns the Unix millisecond timestamp a UUIDv7 carries
func idTime(id uuid.UUID) time.Time {
	sec, nsec := id.Time().UnixTime()
	return time.Unix(sec, nsec).UTC()
}
