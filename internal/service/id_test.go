package service

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// v7At builds a UUIDv7 carrying the given time, with zeroed random bits
func v7At(ts time.Time) string {
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[:8], uint64(ts.UnixMilli())<<16|0x7000)
	id[8] = 0x80
	return id.String()
}

func TestParsePersonID(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		id         string
		wantReason string
	}{
		{name: "generated v7", id: uuid.Must(uuid.NewV7()).String()},
		{name: "past v7", id: v7At(now.Add(-24 * time.Hour))},
		{name: "within clock skew", id: v7At(now.Add(30 * time.Second))},
		{name: "not a uuid", id: "42", wantReason: "must be a valid UUID"},
		{name: "empty", id: "", wantReason: "must be a valid UUID"},
		{name: "v4", id: uuid.New().String(), wantReason: "must be a version 7 UUID"},
		{name: "nil uuid", id: uuid.Nil.String(), wantReason: "must be a version 7 UUID"},
		{name: "too far ahead", id: v7At(now.Add(2 * time.Minute)), wantReason: "must not be more than a minute in the future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// generated ids carry the real clock
			clock := now
			if tt.name == "generated v7" {
				clock = time.Now()
			}

			_, err := parsePersonID(tt.id, clock)
			if tt.wantReason == "" {
				if err != nil {
					t.Fatalf("parsePersonID(%q) = %v, want nil", tt.id, err)
				}
				return
			}

			var idErr *InvalidIDError
			if !errors.As(err, &idErr) {
				t.Fatalf("parsePersonID(%q) = %v, want *InvalidIDError", tt.id, err)
			}
			if idErr.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", idErr.Reason, tt.wantReason)
			}
			if idErr.ID != tt.id {
				t.Errorf("ID = %q, want %q", idErr.ID, tt.id)
			}
			if !errors.Is(err, ErrInvalidID) {
				t.Errorf("error %v does not wrap ErrInvalidID", err)
			}
		})
	}
}

func TestIDTime(t *testing.T) {
	ts := time.Date(2025, 11, 5, 8, 30, 15, 250_000_000, time.UTC)
	parsed := uuid.MustParse(v7At(ts))

	if got := idTime(parsed); !got.Equal(ts) {
		t.Errorf("idTime() = %v, want %v", got, ts)
	}
	if got := idTime(parsed).Location(); got != time.UTC {
		t.Errorf("idTime() location = %v, want UTC", got)
	}
}

func TestInvalidIDErrorMessage(t *testing.T) {
	err := &InvalidIDError{ID: "abc", Reason: "must be a valid UUID"}
	if got, want := err.Error(), `person id "abc" must be a valid UUID`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
