// Package transcript is a client for the transcript service.
//
// The client keeps a short-lived access token together with a refresh token,
// renews the access token before it expires and retries a request rejected with
// 401 once after renewal. Packages:
//
//   - client: session and transcript operations
//   - client/auth/store: credential persistence (memory, afs, redis)
//   - client/auth/expiry: access token expiry evaluation
//   - client/auth/renewal: refresh token exchange
//   - client/auth/transport: authenticating http.RoundTripper
//   - client/guard: route access decisions
//   - cli: command line interface (cmd/transcript)
package transcript
