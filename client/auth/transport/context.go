package transport

import "context"

type (
	contextKey string
)

const (
	contextSkipAuthKey  contextKey = "skipAuth"
	contextRequestIDKey contextKey = "requestID"
)

// WithoutAuth marks requests made with the returned context as not requiring authentication
func WithoutAuth(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextSkipAuthKey, true)
}

// WithRequestID sets the request id used for all attempts of a logical call
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextRequestIDKey, id)
}

func isAuthRequired(ctx context.Context) bool {
	if v := ctx.Value(contextSkipAuthKey); v != nil {
		if skip, ok := v.(bool); ok {
			return !skip
		}
	}
	return true
}

func getRequestID(ctx context.Context) string {
	if v := ctx.Value(contextRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
