// Package renewal exchanges the refresh token for a new access token.
//
// A rejected renewal ends the session: the credential store is cleared and
// ErrSessionExpired is returned, the user has to sign in again.
package renewal
