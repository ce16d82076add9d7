// Package metrics constructs the metrics the application will track.
package metrics

import (
	"context"
	"expvar"
	"runtime"
)

// metrics holds the single instance of expvar counters. expvar registration
// is process global, so this can only be constructed once.
var m *metrics

type metrics struct {
	goroutines *expvar.Int
	requests   *expvar.Int
	errors     *expvar.Int
	panics     *expvar.Int
}

func init() {
	m = &metrics{
		goroutines: expvar.NewInt("goroutines"),
		requests:   expvar.NewInt("requests"),
		errors:     expvar.NewInt("errors"),
		panics:     expvar.NewInt("panics"),
	}
}

type ctxKey int

const key ctxKey = 1

// Set puts the metrics instance on the context for the middleware chain.
func Set(ctx context.Context) context.Context {
	return context.WithValue(ctx, key, m)
}

func get(ctx context.Context) *metrics {
	v, ok := ctx.Value(key).(*metrics)
	if !ok {
		return m
	}
	return v
}

// AddRequests increments the request counter and returns the new count.
func AddRequests(ctx context.Context) int64 {
	v := get(ctx)
	v.requests.Add(1)
	return v.requests.Value()
}

// AddGoroutines samples the current goroutine count.
func AddGoroutines(ctx context.Context) int64 {
	v := get(ctx)
	g := int64(runtime.NumGoroutine())
	v.goroutines.Set(g)
	return g
}

// AddErrors increments the error counter and returns the new count.
func AddErrors(ctx context.Context) int64 {
	v := get(ctx)
	v.errors.Add(1)
	return v.errors.Value()
}

// AddPanics increments the panic counter and returns the new count.
func AddPanics(ctx context.Context) int64 {
	v := get(ctx)
	v.panics.Add(1)
	return v.panics.Value()
}
