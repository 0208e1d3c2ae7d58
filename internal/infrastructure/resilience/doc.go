/*
Package resilience provides a circuit breaker for the text generation client.

# Overview

When the upstream model endpoint starts failing, the breaker opens and
calls fail fast with ErrCircuitOpen. The AI assistant turns that into its
fixed fallback reply, so the desktop never waits on a dead dependency.

# Usage

	breaker := resilience.New("ai", resilience.Settings{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
	})

	err := breaker.Do(ctx, func(ctx context.Context) error {
		return client.Call(ctx)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                             |
	                                        [failure]
	                                             v
	                                           Open
*/
package resilience
