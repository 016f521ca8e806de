package resilience

import "golang.org/x/sync/singleflight"

// SingleFlight deduplicates concurrent calls for the same key.
type SingleFlight struct {
	group singleflight.Group
}

// Do runs fn once per in-flight key. shared reports whether the result was handed to
// more than one caller.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	return g.group.Do(key, fn)
}

// DoChan is Do for callers that must stop waiting on their own context.
func (g *SingleFlight) DoChan(key string, fn func() (any, error)) <-chan singleflight.Result {
	return g.group.DoChan(key, fn)
}

// Forget drops an in-flight key so the next Do starts a fresh call.
func (g *SingleFlight) Forget(key string) {
	g.group.Forget(key)
}
