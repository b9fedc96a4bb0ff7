package provider

import (
	"context"
	"time"
)

// requestTimeout bounds the time a provider spends waiting on its service.
// Local work after the reply arrives, such as the backend's word replay, is
// not covered.
type requestTimeout struct {
	timeout time.Duration
}

func (r *requestTimeout) setRequestTimeout(d time.Duration) { r.timeout = d }

// bound derives a context limited to the request timeout. Zero means no limit.
func (r *requestTimeout) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

type timeoutSetter interface {
	setRequestTimeout(time.Duration)
}
