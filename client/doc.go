// Package client provides the session-facing API of the transcript service.
//
// A Client signs users up and in, keeps their credential in a store.Store and sends
// every other call through the authenticating transport, which renews the access
// token when it is about to expire and retries a request rejected with 401 once.
//
// Example usage:
//
//	cli, err := client.New(ctx, "http://127.0.0.1:8000",
//		client.WithStore(store.New(store.NewFileBackend("~/.transcript"))))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if _, err = cli.Login(ctx, "ada@example.com", "secret"); err != nil {
//		log.Fatal(err)
//	}
//	transcripts, err := cli.ListTranscripts(ctx)
package client
