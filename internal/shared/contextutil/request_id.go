package contextutil

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID menyalin request id ke standard context supaya layer
// service/worker yang tidak memegang *gin.Context tetap bisa membacanya.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey).(string)
	return rid
}

func GetKey() string {
	return string(requestIDKey)
}
