// Package apierror provides RFC 9457 Problem Details error responses for
// HTTP servers: a generic envelope with flattened extension members, a
// validation error extension whose entries point at the request body or a
// request header, and an encoder that falls back to a static
// internal-server-error document when a problem cannot be serialized.
//
// See https://www.rfc-editor.org/rfc/rfc9457.html
package apierror
