// Package resilience provides fault tolerance patterns for calls leaving the process.
//
// The package supports:
//   - Circuit breakers around the identity/storage provider
//   - Retry logic with exponential backoff and jitter for idempotent calls
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.ProviderConfig("supabase-auth"))
//	user, err := retry.Do(ctx, retry.ProviderConfig(), func() (*entity.Identity, error) {
//	    return circuitbreaker.Run(cb, func() (*entity.Identity, error) {
//	        return fetchUser(ctx, token)
//	    })
//	})
package resilience
