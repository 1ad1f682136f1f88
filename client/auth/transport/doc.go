// Package transport implements an http.RoundTripper that keeps requests authenticated.
//
// Before sending it makes sure the stored access token is fresh, renewing it when it
// is missing an expiry or close to it, and attaches it as a Bearer credential. When the
// server still answers `401 Unauthorized` the token is renewed once and the identical
// request is replayed once; the second response is returned as is.
//
// Requests marked with WithoutAuth bypass all of the above.
package transport
