package models

import "time"

// Person is the demo resource served under /api/v1/people
type Person struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Tags      []string  `json:"tags"`
	Address   *Address  `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Address is an optional postal address of a person
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Roles accepted for a person. An empty role means RoleMember.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleViewer = "viewer"
)

// CreatePersonRequest is the body of POST /api/v1/people
type CreatePersonRequest struct {
	ID      *string               `json:"id,omitempty"` // Client-generated UUIDv7 for offline-first clients
	Name    string                `json:"name" binding:"required,min=2,max=100"`
	Email   string                `json:"email" binding:"required,email"`
	Role    string                `json:"role" binding:"omitempty,oneof=admin member viewer"`
	Tags    []string              `json:"tags" binding:"max=10,dive,required,alphanum"`
	Address *CreateAddressRequest `json:"address"`
}

// CreateAddressRequest is the optional address of CreatePersonRequest
type CreateAddressRequest struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	Country string `json:"country" binding:"required,len=2,alpha"` // ISO 3166-1 alpha-2
}

// IdempotencyKey is a cached response to a create request, replayed when the
// same Idempotency-Key is sent again for the same route
type IdempotencyKey struct {
	Key          string    `json:"key"`
	Route        string    `json:"route"`
	ContentType  string    `json:"content_type"`
	ResponseBody []byte    `json:"response_body"`
	StatusCode   int       `json:"status_code"`
	CreatedAt    time.Time `json:"created_at"`
}
