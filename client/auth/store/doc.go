// Package store keeps the client credential (access token, refresh token, user id
// and expiry) and persists it as a single JSON blob in a pluggable key-value backend.
//
// It ships with an in-memory backend for tests and short-lived processes, an afs
// backed one (local files or any afs supported storage) and a redis one, so that a
// session survives process restarts.
package store
