// Package common contains shared constants and sentinel errors used across
// Credo components.
package common

// AuthorizationHeaderName carries the bearer token on inbound requests.
const AuthorizationHeaderName = "Authorization"

// AuthTokenHeaderName is the compatibility header the server echoes freshly
// issued tokens on, and which clients may use instead of Authorization.
const AuthTokenHeaderName = "X-Auth-Token"

// BearerPrefix is the scheme prefix for the Authorization header.
const BearerPrefix = "Bearer "
