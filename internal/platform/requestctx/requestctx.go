// Package requestctx carries the per-request id through context so both
// middleware and handlers can stamp it on logs and response envelopes.
package requestctx

import "context"

type ctxKey int

const keyRequestID ctxKey = iota

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}
