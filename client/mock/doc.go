// Package mock provides an in-memory transcript service that facilitates testing
// of the client-side session handling.
//
// It issues RS256 signed access tokens with a configurable lifetime, verifies them on
// every protected call, rotates refresh tokens on demand and can revoke all issued
// access tokens to simulate a server side rejection.
package mock
