// Package expiry decides whether the stored access token can still be used or has to be renewed.
//
// Expiry comes from the stored credential when the server supplied one, otherwise it is
// decoded from the `exp` claim of the access token. A token that cannot be decoded is
// treated as already expired.
package expiry
