package types

import "context"

type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxPoloID    ContextKey = "ctx_polo_id"
	CtxUserID    ContextKey = "ctx_user_id"
)

// GetRequestID returns the request ID from the context, if any.
func GetRequestID(ctx context.Context) string {
	return getString(ctx, CtxRequestID)
}

// GetPoloID returns the polo (tenant) ID from the context, if any.
func GetPoloID(ctx context.Context) string {
	return getString(ctx, CtxPoloID)
}

// GetUserID returns the user ID from the context, if any.
func GetUserID(ctx context.Context) string {
	return getString(ctx, CtxUserID)
}

// WithRequestID returns a context carrying the given request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

// WithPoloID returns a context carrying the given polo ID.
func WithPoloID(ctx context.Context, poloID string) context.Context {
	return context.WithValue(ctx, CtxPoloID, poloID)
}

// WithUserID returns a context carrying the given user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

func getString(ctx context.Context, key ContextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
